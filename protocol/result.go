package protocol

import "time"

// ResultSubtypeSuccess is the only modeled result subtype. The family is
// closed: see UnmarshalEvent.
const ResultSubtypeSuccess = "success"

// SuccessResult is the payload of a successful result event.
type SuccessResult struct {
	IsError       bool                  `json:"is_error"`
	DurationMs    int64                 `json:"duration_ms"`
	DurationAPIMs int64                 `json:"duration_api_ms"`
	NumTurns      int                   `json:"num_turns"`
	Result        string                `json:"result"`
	TotalCostUSD  float64               `json:"total_cost_usd"`
	Usage         Usage                 `json:"usage"`
	ModelUsage    map[string]ModelUsage `json:"modelUsage"`
}

// Duration returns the total wall-clock time of the run.
func (r SuccessResult) Duration() time.Duration {
	return time.Duration(r.DurationMs) * time.Millisecond
}

// APIDuration returns the portion of the run spent in API calls.
func (r SuccessResult) APIDuration() time.Duration {
	return time.Duration(r.DurationAPIMs) * time.Millisecond
}

// Usage tracks aggregate token usage for the run.
type Usage struct {
	InputTokens              int `json:"input_tokens"`
	CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int `json:"cache_read_input_tokens"`
	OutputTokens             int `json:"output_tokens"`
}

// ModelUsage tracks per-model usage. Unlike everything else on the wire
// this object uses camelCase keys.
type ModelUsage struct {
	InputTokens              int     `json:"inputTokens"`
	OutputTokens             int     `json:"outputTokens"`
	CacheReadInputTokens     int     `json:"cacheReadInputTokens"`
	CacheCreationInputTokens int     `json:"cacheCreationInputTokens"`
	WebSearchRequests        int     `json:"webSearchRequests"`
	CostUSD                  float64 `json:"costUSD"`
	ContextWindow            int     `json:"contextWindow"`
	MaxOutputTokens          int     `json:"maxOutputTokens"`
}
