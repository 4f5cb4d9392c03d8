package levelgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	// Zero leaves the provider default.
	Temperature float64

	// MaxQuestions caps the number of questions kept from a response.
	MaxQuestions int
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:    4096,
		Temperature:  0.8,
		MaxQuestions: 8,
	}
}
