// Package normalize coerces loosely-structured model output into the strict
// internal schema. Model responses drift in both shape (bare list, wrapped
// object, misnamed keys) and field types; this package absorbs that drift at
// the boundary so no loosely-typed value reaches business logic.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"BillFighter/internal/domain"
)

// ParseError reports a response that could not be shaped into the target
// list at all. Individual malformed elements inside an otherwise valid list
// never produce one; they are dropped silently.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Candidate payload keys per stage, probed in order.
var (
	lineItemKeys = []string{"line_items", "items"}
	analysisKeys = []string{"line_items", "items", "analysis"}
)

// LineItems shapes an extraction-stage response into line items.
func LineItems(raw string) ([]domain.LineItem, error) {
	elements, err := payloadList(raw, lineItemKeys)
	if err != nil {
		return nil, err
	}

	items := make([]domain.LineItem, 0, len(elements))
	for _, element := range elements {
		record, ok := element.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, lineItemFrom(record))
	}
	return items, nil
}

// AnalysisItems shapes an analysis-stage response into enriched items.
// Normalizing an already-normalized collection is a fixed point: the debate
// stage round-trips these records through prompts and relies on that.
func AnalysisItems(raw string) ([]domain.AnalysisItem, error) {
	elements, err := payloadList(raw, analysisKeys)
	if err != nil {
		return nil, err
	}

	items := make([]domain.AnalysisItem, 0, len(elements))
	for _, element := range elements {
		record, ok := element.(map[string]any)
		if !ok {
			continue
		}

		item := domain.AnalysisItem{
			LineItem:       lineItemFrom(record),
			ExpectedCost:   floatOr(record["expected_cost"], floatOr(record["price"], 0.0)),
			OverchargeFlag: boolOr(record["overcharge_flag"]),
			FlagLevel:      domain.FlagLevel(strings.ToLower(stringOr(record["flag_level"]))),
			Issue:          optionalText(record["issue"]),
		}
		if !item.FlagLevel.Valid() {
			item.FlagLevel = domain.FlagLow
		}
		items = append(items, item)
	}
	return items, nil
}

// Object parses a response expected to be a single JSON object, for stages
// whose payload is a keyed record rather than a list (negotiation materials,
// debate summary).
func Object(raw string) (map[string]any, error) {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
		return nil, &ParseError{Reason: "response is not a JSON object", Err: err}
	}
	return parsed, nil
}

// Text returns the trimmed string form of an object field, "" when absent.
func Text(record map[string]any, key string) string {
	return stringOr(record[key])
}

// payloadList applies the documented unwrap precedence: a bare list is the
// payload; in a map, the first matching candidate key wins, then a lone
// key's value, then the first list-valued entry in document order, then an
// empty list. Anything selected that is not a list is a ParseError.
func payloadList(raw string, candidates []string) ([]any, error) {
	cleaned := stripFences(raw)

	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, &ParseError{Reason: "response is not valid JSON", Err: err}
	}

	switch value := parsed.(type) {
	case []any:
		return value, nil
	case map[string]any:
		for _, key := range candidates {
			if inner, ok := value[key]; ok {
				return requireList(key, inner)
			}
		}
		if len(value) == 1 {
			for key, inner := range value {
				return requireList(key, inner)
			}
		}
		for _, key := range topLevelKeys(cleaned) {
			if list, ok := value[key].([]any); ok {
				return list, nil
			}
		}
		return []any{}, nil
	default:
		return nil, &ParseError{Reason: fmt.Sprintf("response is %T, expected a list or object", parsed)}
	}
}

func requireList(key string, value any) ([]any, error) {
	list, ok := value.([]any)
	if !ok {
		return nil, &ParseError{Reason: fmt.Sprintf("payload under %q is not a list", key)}
	}
	return list, nil
}

// topLevelKeys recovers the document order of an object's keys, which
// encoding/json maps discard. Needed so "first list value" is deterministic.
func topLevelKeys(raw string) []string {
	decoder := json.NewDecoder(strings.NewReader(raw))

	token, err := decoder.Token()
	if err != nil {
		return nil
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil
	}

	var keys []string
	depth := 0
	expectKey := true
	for {
		token, err := decoder.Token()
		if err != nil {
			return keys
		}
		switch t := token.(type) {
		case json.Delim:
			switch t {
			case '{', '[':
				depth++
			case '}', ']':
				if depth == 0 {
					return keys
				}
				depth--
			}
			expectKey = depth == 0
		case string:
			if depth == 0 && expectKey {
				keys = append(keys, t)
				expectKey = false
			} else if depth == 0 {
				expectKey = true
			}
		default:
			if depth == 0 {
				expectKey = true
			}
		}
	}
}

func lineItemFrom(record map[string]any) domain.LineItem {
	return domain.LineItem{
		Code:        stringOr(record["code"]),
		Description: stringOr(record["description"]),
		Quantity:    floatOr(record["quantity"], 1.0),
		Price:       floatOr(record["price"], 0.0),
		Notes:       optionalText(record["notes"]),
	}
}

func stringOr(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func floatOr(value any, fallback float64) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fallback
		}
		return parsed
	default:
		return fallback
	}
}

func boolOr(value any) bool {
	v, ok := value.(bool)
	return ok && v
}

// optionalText collapses absent, empty, and falsy values to nil.
func optionalText(value any) *string {
	switch v := value.(type) {
	case nil:
		return nil
	case bool:
		if !v {
			return nil
		}
	case float64:
		if v == 0 {
			return nil
		}
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
	}
	text := stringOr(value)
	return &text
}

// stripFences removes a Markdown code fence around the payload. JSON-mode
// responses should not carry one, but plain-mode calls and misbehaving
// models do.
func stripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
