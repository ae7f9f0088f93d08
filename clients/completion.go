package clients

// Completion provider identifiers accepted by the COMPLETION_PROVIDER
// configuration value.
const (
	CompletionProviderGemini    = "gemini"
	CompletionProviderAnthropic = "anthropic"
)
