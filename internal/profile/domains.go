package profile

// Domain keys as they appear in the persisted and collaborator JSON.
const (
	KeyLogicalReasoning    = "logicalReasoning"
	KeyExecutiveFunction   = "executiveFunction"
	KeyInnovationIndex     = "innovationIndex"
	KeyEmotionalRegulation = "emotionalRegulation"
	KeyStrategicThinking   = "strategicThinking"
	KeyDecisionConsistency = "decisionConsistency"
)

// DomainKeys lists the six domains in display order.
var DomainKeys = []string{
	KeyLogicalReasoning,
	KeyExecutiveFunction,
	KeyInnovationIndex,
	KeyEmotionalRegulation,
	KeyStrategicThinking,
	KeyDecisionConsistency,
}

var domainLabels = map[string]string{
	KeyLogicalReasoning:    "Logic",
	KeyExecutiveFunction:   "Executive",
	KeyInnovationIndex:     "Innovation",
	KeyEmotionalRegulation: "Emotion",
	KeyStrategicThinking:   "Strategy",
	KeyDecisionConsistency: "Consistency",
}

// Domain is one named score.
type Domain struct {
	Key   string
	Label string
	Value float64
}

// Domains returns the six scores in display order.
func (s DomainScores) Domains() []Domain {
	values := []float64{
		s.LogicalReasoning,
		s.ExecutiveFunction,
		s.InnovationIndex,
		s.EmotionalRegulation,
		s.StrategicThinking,
		s.DecisionConsistency,
	}
	out := make([]Domain, len(DomainKeys))
	for i, k := range DomainKeys {
		out[i] = Domain{Key: k, Label: domainLabels[k], Value: values[i]}
	}
	return out
}

// Label returns the short display label for a domain key.
func Label(key string) string {
	if l, ok := domainLabels[key]; ok {
		return l
	}
	return key
}
