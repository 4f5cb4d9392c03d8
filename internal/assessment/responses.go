package assessment

import "strings"

// Upsert records answer for questionID, replacing any prior answer in
// place. The returned slice never holds two entries for the same id.
func Upsert(responses []UserResponse, questionID, answer string) []UserResponse {
	for i, r := range responses {
		if r.QuestionID == questionID {
			out := append([]UserResponse(nil), responses...)
			out[i].Answer = answer
			return out
		}
	}
	out := make([]UserResponse, len(responses), len(responses)+1)
	copy(out, responses)
	return append(out, UserResponse{QuestionID: questionID, Answer: answer})
}

// Lookup returns the answer for questionID.
func Lookup(responses []UserResponse, questionID string) (string, bool) {
	for _, r := range responses {
		if r.QuestionID == questionID {
			return r.Answer, true
		}
	}
	return "", false
}

// Missing returns the ids of level questions with no non-blank answer,
// in question order.
func Missing(level *Level, responses []UserResponse) []string {
	var missing []string
	for _, q := range level.Questions {
		a, ok := Lookup(responses, q.ID)
		if !ok || strings.TrimSpace(a) == "" {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// Ordered returns the answered responses for level's questions in
// question order, dropping answers to ids the level does not contain.
func Ordered(level *Level, responses []UserResponse) []UserResponse {
	out := make([]UserResponse, 0, len(level.Questions))
	for _, q := range level.Questions {
		if a, ok := Lookup(responses, q.ID); ok {
			out = append(out, UserResponse{QuestionID: q.ID, Answer: a})
		}
	}
	return out
}
