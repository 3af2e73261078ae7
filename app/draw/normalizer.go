package draw

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingHistory    = errors.New("missing prize history")
	ErrNoDrawnEntries    = errors.New("no drawn entries")
	ErrUnknownNumsFormat = errors.New("unknown nums format")
	ErrIncompleteResult  = errors.New("incomplete result")
)

// Draw time layouts the upstream has been observed to use.
var drawTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

type Normalizer struct {
	loc *time.Location
}

func NewNormalizer(loc *time.Location) *Normalizer {
	return &Normalizer{loc: loc}
}

// Run extracts the most recent drawn entry from a raw history payload and
// canonicalizes it. A payload that cannot produce a complete Result fails as a
// whole; partial records are never returned.
func (n *Normalizer) Run(game string, data []byte) (*Result, error) {
	if game == "" {
		return nil, fmt.Errorf("%w: game name is empty", ErrIncompleteResult)
	}

	var payload historyPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse payload: %w", err)
	}

	hist := payload.Data.PrizeHistory
	if len(hist) == 0 {
		return nil, ErrMissingHistory
	}

	latest := selectLatestDrawn(hist)
	if latest == nil {
		return nil, ErrNoDrawnEntries
	}

	numbers, err := parseNums(latest.Nums)
	if err != nil {
		return nil, err
	}

	dateISO, err := n.deriveDate(latest)
	if err != nil {
		return nil, err
	}

	phase := stringifyPhase(latest.Phase)
	if phase == "" {
		return nil, fmt.Errorf("%w: empty phase", ErrIncompleteResult)
	}

	result := &Result{
		Game:    game,
		Phase:   phase,
		DateISO: dateISO,
		Numbers: numbers,
	}

	if result.DateISO == "" || result.Numbers == "" {
		return nil, ErrIncompleteResult
	}

	return result, nil
}

// selectLatestDrawn picks the drawn entry with the greatest timestamp.
// Ties keep the first-encountered entry in payload order.
func selectLatestDrawn(hist []historyEntry) *historyEntry {
	var latest *historyEntry
	var latestTS int64

	for i := range hist {
		entry := &hist[i]
		if !entry.AllOrderDrawn {
			continue
		}
		ts := parseTimestamp(entry.ExpectedPrizeTimestamp)
		if latest == nil || ts > latestTS {
			latest = entry
			latestTS = ts
		}
	}

	return latest
}

// parseTimestamp coerces a number-like raw value (JSON number or numeric
// string) into epoch milliseconds. Unparseable values yield 0.
func parseTimestamp(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int64(f)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return v
		}
	}

	return 0
}

// stringifyPhase coerces a string-like raw value into a trimmed string.
func stringifyPhase(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		return num.String()
	}

	return ""
}

// parseNums canonicalizes the numbers payload into digits joined with "-".
// Accepted shapes: an ordered JSON array (elements joined verbatim), a
// delimited string of single-digit tokens ("1,9,5"), or a compact digit run
// ("195"). A delimited token longer than one digit is rejected rather than
// silently split.
func parseNums(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", ErrUnknownNumsFormat
	}

	var arr []interface{}
	if err := json.Unmarshal(raw, &arr); err == nil {
		if len(arr) == 0 {
			return "", fmt.Errorf("%w: empty nums array", ErrIncompleteResult)
		}
		parts := make([]string, 0, len(arr))
		for _, elem := range arr {
			part := stringifyNumsElement(elem)
			if part == "" {
				return "", ErrUnknownNumsFormat
			}
			parts = append(parts, part)
		}
		return strings.Join(parts, "-"), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return splitDigitString(s)
	}

	return "", ErrUnknownNumsFormat
}

func stringifyNumsElement(elem interface{}) string {
	switch v := elem.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func splitDigitString(s string) (string, error) {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r < '0' || r > '9'
	})

	if len(tokens) == 0 {
		return "", fmt.Errorf("%w: no digits in %q", ErrUnknownNumsFormat, s)
	}

	// A single run of digits is the compact form, one digit per position.
	if len(tokens) == 1 {
		digits := strings.Split(tokens[0], "")
		return strings.Join(digits, "-"), nil
	}

	for _, token := range tokens {
		if len(token) != 1 {
			return "", fmt.Errorf("%w: multi-digit component %q in %q", ErrUnknownNumsFormat, token, s)
		}
	}

	return strings.Join(tokens, "-"), nil
}

// deriveDate prefers the entry's epoch-millisecond timestamp and falls back to
// parsing the nominal draw time as a local date-time in the target timezone.
func (n *Normalizer) deriveDate(entry *historyEntry) (string, error) {
	if ts := parseTimestamp(entry.ExpectedPrizeTimestamp); ts > 0 {
		return time.UnixMilli(ts).In(n.loc).Format("2006-01-02"), nil
	}

	drawTime := strings.TrimSpace(entry.ExpectedPrizeTime)
	if drawTime == "" {
		return "", fmt.Errorf("%w: no usable draw time", ErrIncompleteResult)
	}

	for _, layout := range drawTimeLayouts {
		if t, err := time.ParseInLocation(layout, drawTime, n.loc); err == nil {
			return t.In(n.loc).Format("2006-01-02"), nil
		}
	}

	return "", fmt.Errorf("%w: unparseable draw time %q", ErrIncompleteResult, drawTime)
}
