// Package extract recovers a structured reply from the model's raw text.
// The model is asked to answer with a single JSON object but is not
// guaranteed to produce one cleanly, so extraction is organized as an
// ordered list of strategies tried in sequence: a direct JSON parse of
// the outermost brace span first, then per-field pattern matching. Every
// strategy reports "no match" instead of failing, and the final fallback
// always produces a usable result, so Extract never returns an error.
package extract

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/semiverso/prometheus-api/internal/domain"
)

// maxRawOutputLen bounds the raw-text fallback for the output field.
const maxRawOutputLen = 300

// Result is the best-effort structure recovered from a model reply.
// Sigillo is nil when the model produced none or produced something
// unparseable; completeness is the caller's concern.
type Result struct {
	Output      domain.Output
	Eco         []string
	FraseFinale string
	Sigillo     *domain.Seal
}

type strategy func(raw string) (Result, bool)

var strategies = []strategy{
	extractJSONObject,
	extractWithPatterns,
}

// Extract parses the model's raw text into a Result. It never fails:
// when no JSON object can be located, the output degrades to the trimmed
// raw text and the remaining fields to their zero values.
func Extract(raw string) Result {
	for _, s := range strategies {
		if result, ok := s(raw); ok {
			return result
		}
	}
	// The pattern strategy always matches; this is unreachable.
	return Result{Output: domain.TextOutput(truncate(strings.TrimSpace(raw)))}
}

// extractJSONObject slices the text between the first '{' and the last
// '}' and parses it as JSON, then normalizes each field.
func extractJSONObject(raw string) (Result, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return Result{}, false
	}

	var fields struct {
		Output      json.RawMessage `json:"output"`
		Eco         json.RawMessage `json:"eco"`
		FraseFinale json.RawMessage `json:"frase_finale"`
		Sigillo     json.RawMessage `json:"sigillo"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &fields); err != nil {
		return Result{}, false
	}

	return Result{
		Output:      normalizeOutput(fields.Output, raw),
		Eco:         normalizeEco(fields.Eco),
		FraseFinale: normalizeString(fields.FraseFinale),
		Sigillo:     normalizeSeal(fields.Sigillo),
	}, true
}

// normalizeOutput collapses the string-or-list union: an empty list
// becomes the empty string and a one-element list unwraps to its element.
// A reply with no output key at all falls back to the full raw text, so
// the user still sees whatever the model said.
func normalizeOutput(raw json.RawMessage, fullText string) domain.Output {
	if len(raw) == 0 {
		return domain.TextOutput(strings.TrimSpace(fullText))
	}
	var out domain.Output
	if err := out.UnmarshalJSON(raw); err != nil {
		// Scalar of another type: keep its textual form.
		return domain.TextOutput(strings.Trim(strings.TrimSpace(string(raw)), `"`))
	}
	return out.Collapse()
}

// normalizeEco coerces the eco field to a list: absent or falsy scalars
// become an empty list, truthy scalars wrap into a one-element list.
func normalizeEco(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if list == nil {
			return []string{}
		}
		return list
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return []string{}
		}
		return []string{s}
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if !b {
			return []string{}
		}
		return []string{"true"}
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n == 0 {
			return []string{}
		}
		return []string{strconv.FormatFloat(n, 'f', -1, 64)}
	}
	return []string{}
}

func normalizeString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// normalizeSeal accepts a seal either as a JSON object or as a string
// containing JSON. Anything unparseable is dropped rather than failing
// the extraction.
func normalizeSeal(raw json.RawMessage) *domain.Seal {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var seal domain.Seal
	if err := json.Unmarshal(raw, &seal); err == nil {
		return &seal
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if err := json.Unmarshal([]byte(s), &seal); err == nil {
			return &seal
		}
	}
	return nil
}

// Field patterns for the fallback strategy. Non-greedy spans bounded by
// the nearest closing bracket/brace mirror what the model actually emits
// around cosmetic formatting mistakes.
var (
	outputPattern = regexp.MustCompile(`(?s)"output":\s*(?:"([^"]*)"|\[(.*?)\])`)
	ecoPattern    = regexp.MustCompile(`(?s)"eco":\s*\[(.*?)\]`)
	frasePattern  = regexp.MustCompile(`(?s)"frase_finale":\s*"([^"]*)"`)
	sealPattern   = regexp.MustCompile(`(?s)"sigillo":\s*(\{.*?\})`)
)

// extractWithPatterns recovers each field independently with targeted
// patterns. It always matches; the output worst case is the trimmed raw
// text truncated to maxRawOutputLen characters.
func extractWithPatterns(raw string) (Result, bool) {
	result := Result{Eco: []string{}}

	if m := outputPattern.FindStringSubmatch(raw); m != nil {
		switch {
		case m[1] != "":
			result.Output = domain.TextOutput(m[1])
		case m[2] != "":
			var list []string
			if err := json.Unmarshal([]byte("["+m[2]+"]"), &list); err == nil {
				result.Output = domain.LinesOutput(list).Collapse()
			} else {
				result.Output = domain.TextOutput(strings.TrimSpace(m[2]))
			}
		}
	}
	if result.Output.IsEmpty() {
		result.Output = domain.TextOutput(truncate(strings.TrimSpace(raw)))
	}

	if m := ecoPattern.FindStringSubmatch(raw); m != nil {
		var list []string
		if err := json.Unmarshal([]byte("["+strings.TrimSpace(m[1])+"]"), &list); err == nil {
			result.Eco = list
		} else if inner := strings.Trim(strings.TrimSpace(m[1]), `"`); inner != "" {
			result.Eco = []string{inner}
		}
	}

	if m := frasePattern.FindStringSubmatch(raw); m != nil {
		result.FraseFinale = m[1]
	}

	if m := sealPattern.FindStringSubmatch(raw); m != nil {
		var seal domain.Seal
		if err := json.Unmarshal([]byte(m[1]), &seal); err == nil {
			result.Sigillo = &seal
		}
	}

	return result, true
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxRawOutputLen {
		return s
	}
	return string(runes[:maxRawOutputLen])
}
