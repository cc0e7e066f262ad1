package billing

// BillingMode selects between token-volume and per-call charging.
type BillingMode string

const (
	BillingModeTokens BillingMode = "tokens"
	BillingModeTimes  BillingMode = "times"
)

// UsageEvent is the immutable record of one priced request. It is created
// when the request completes and never mutated afterwards; everything the
// charge computation needs rides on it, so the same event replayed through
// ComputeCharge always yields the same number.
type UsageEvent struct {
	RequestId string                  `json:"request_id"`
	ModelName string                  `json:"model_name"`
	Group     string                  `json:"group"`
	Counts    map[TokenCategory]int64 `json:"counts"`
	// InputTokens is the aggregate prompt-token override some upstreams
	// report. A positive value supersedes the granular cache write/read
	// figures to avoid double counting.
	InputTokens int64       `json:"input_tokens,omitempty"`
	Mode        BillingMode `json:"billing_mode"`
	// Metadata carries pricing inputs already resolved at charge time
	// (ratios, group discount, price type, a server-computed original
	// quota). Missing or malformed keys fall back to defaults, never fail.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Count returns the raw count for a category, zero when absent.
func (e *UsageEvent) Count(c TokenCategory) int64 {
	if e.Counts == nil {
		return 0
	}
	return e.Counts[c]
}

// ExtraBillingItem is a flat add-on charge unrelated to token volume,
// e.g. a per-image or per-tool-call fee.
type ExtraBillingItem struct {
	Key       string  `json:"key"`
	UnitPrice float64 `json:"unit_price"`
	CallCount int64   `json:"call_count"`
	Kind      string  `json:"kind,omitempty"`
}

// MetaFloat reads a float from an event metadata map with a default.
// JSON numbers decode as float64; anything else is treated as absent.
func MetaFloat(meta map[string]any, key string, def float64) float64 {
	if meta == nil {
		return def
	}
	v, ok := meta[key]
	if !ok {
		return def
	}
	f, ok := v.(float64)
	if !ok {
		return def
	}
	return f
}

// MetaString reads a string from an event metadata map with a default.
func MetaString(meta map[string]any, key string, def string) string {
	if meta == nil {
		return def
	}
	v, ok := meta[key]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}
