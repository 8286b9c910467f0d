package perplexity

import "time"

const (
	// DefaultBaseURL is the Perplexity API endpoint.
	DefaultBaseURL = "https://api.perplexity.ai"

	// DefaultModel is the default chat model.
	DefaultModel = "sonar"

	// DefaultTimeout bounds one HTTP call.
	DefaultTimeout = 60 * time.Second
)
