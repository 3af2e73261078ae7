package draw

import (
	"encoding/json"
)

// Result is the canonical form of the latest drawn result for a game.
// All fields are guaranteed non-empty by the normalizer.
type Result struct {
	Game    string // Display name, e.g. "Pick 3"
	Phase   string // Draw identifier, e.g. "250917"
	DateISO string // Calendar date of the draw in the target timezone, YYYY-MM-DD
	Numbers string // Drawn digits joined with "-", e.g. "1-9-5"
}

// historyPayload mirrors the upstream response shape:
// { data: { prizeHistory: [ ... ] } }
type historyPayload struct {
	Data struct {
		PrizeHistory []historyEntry `json:"prizeHistory"`
	} `json:"data"`
}

// historyEntry is one candidate draw record. The upstream API is loose about
// field types, so number-like and string-like fields are kept raw and coerced
// during normalization.
type historyEntry struct {
	AllOrderDrawn          bool            `json:"allOrderDrawn"`
	ExpectedPrizeTimestamp json.RawMessage `json:"expectedPrizeTimestamp"`
	ExpectedPrizeTime      string          `json:"expectedPrizeTime"`
	Phase                  json.RawMessage `json:"phase"`
	Nums                   json.RawMessage `json:"nums"`
}
