package verdict

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/factlens/factlens/internal/model"
)

// ParseStatus tags how a model response was turned into a verdict
type ParseStatus int

const (
	// ParseOK means the response parsed strictly
	ParseOK ParseStatus = iota
	// ParseRecovered means a repair strategy salvaged the response
	ParseRecovered
	// ParseFailed means no strategy produced a usable verdict
	ParseFailed
)

// rawVerdict mirrors the model's JSON shape with its fixed untranslated keys
type rawVerdict struct {
	Case    string              `json:"الحالة"`
	Talk    string              `json:"talk"`
	Sources []model.CitedSource `json:"sources"`
}

// ParseResult is the outcome of running the repair ladder over a response
type ParseResult struct {
	Status  ParseStatus
	Verdict rawVerdict
}

// failed is the sentinel returned by strategies that cannot parse the input
var failed = ParseResult{Status: ParseFailed}

// strategy is one rung of the repair ladder: a pure function from response
// text to a parse outcome.
type strategy func(text string) ParseResult

// repairLadder lists the strategies in escalating order of aggressiveness
var repairLadder = []strategy{
	parseStrict,
	parseFenceStripped,
	parseBraceExtracted,
	parseStringClosed,
	parseFieldExtracted,
}

// Parse runs the repair ladder over a model response. The first strategy
// wins; anything past the first marks the result as recovered.
func Parse(text string) ParseResult {
	for i, s := range repairLadder {
		result := s(text)
		if result.Status == ParseFailed {
			continue
		}
		if i > 0 {
			result.Status = ParseRecovered
		}
		return result
	}
	return failed
}

// ExtractJSON decodes an arbitrary JSON object from a model response using
// the same escalation as Parse minus the per-field rung: strict, fence
// stripping, balanced-brace extraction, then string and bracket closing.
func ExtractJSON(text string, v any) ParseStatus {
	trimmed := strings.TrimSpace(text)
	if json.Unmarshal([]byte(trimmed), v) == nil {
		return ParseOK
	}

	if strings.HasPrefix(trimmed, "```") {
		defenced := strings.Trim(trimmed, "` \n")
		if len(defenced) >= 4 && strings.EqualFold(defenced[:4], "json") {
			defenced = strings.TrimSpace(defenced[4:])
		}
		if json.Unmarshal([]byte(defenced), v) == nil {
			return ParseRecovered
		}
	}

	if block, ok := firstBalancedObject(text); ok {
		if json.Unmarshal([]byte(block), v) == nil {
			return ParseRecovered
		}
	}

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ParseFailed
	}
	lines := strings.Split(text[start:], "\n")
	for i, line := range lines {
		if hasUnterminatedString(line) {
			lines[i] = line + `"`
		}
	}
	repaired := strings.TrimRight(strings.Join(lines, "\n"), " \n\t")
	repaired = strings.TrimSuffix(repaired, ",")
	repaired += closingSuffix(repaired)
	if json.Unmarshal([]byte(repaired), v) == nil {
		return ParseRecovered
	}

	return ParseFailed
}

// parseStrict attempts plain JSON decoding
func parseStrict(text string) ParseResult {
	var raw rawVerdict
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return failed
	}
	if raw.Case == "" && raw.Talk == "" {
		return failed
	}
	return ParseResult{Status: ParseOK, Verdict: raw}
}

// parseFenceStripped removes a Markdown code fence before strict parsing
func parseFenceStripped(text string) ParseResult {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return failed
	}
	trimmed = strings.Trim(trimmed, "` \n")
	if len(trimmed) >= 4 && strings.EqualFold(trimmed[:4], "json") {
		trimmed = strings.TrimSpace(trimmed[4:])
	}
	return parseStrict(trimmed)
}

// parseBraceExtracted takes the first balanced {...} block and parses it
func parseBraceExtracted(text string) ParseResult {
	block, ok := firstBalancedObject(text)
	if !ok {
		return failed
	}
	return parseStrict(block)
}

// parseStringClosed closes unterminated string literals line-by-line, then
// closes any brackets left open, and retries strict parsing. This recovers
// responses truncated mid-string or missing trailing braces.
func parseStringClosed(text string) ParseResult {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return failed
	}
	candidate := text[start:]

	lines := strings.Split(candidate, "\n")
	for i, line := range lines {
		if hasUnterminatedString(line) {
			lines[i] = line + `"`
		}
	}
	repaired := strings.Join(lines, "\n")

	// Drop a trailing comma left by truncation, then balance brackets
	repaired = strings.TrimRight(repaired, " \n\t")
	repaired = strings.TrimSuffix(repaired, ",")
	repaired += closingSuffix(repaired)

	return parseStrict(repaired)
}

var (
	caseFieldRe    = regexp.MustCompile(`"الحالة"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	talkFieldRe    = regexp.MustCompile(`"talk"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	sourcesFieldRe = regexp.MustCompile(`"sources"\s*:\s*(\[[\s\S]*?\])`)
)

// parseFieldExtracted regex-extracts the three known fields individually
func parseFieldExtracted(text string) ParseResult {
	raw := rawVerdict{}

	if m := caseFieldRe.FindStringSubmatch(text); m != nil {
		raw.Case = unescapeJSONString(m[1])
	}
	if m := talkFieldRe.FindStringSubmatch(text); m != nil {
		raw.Talk = unescapeJSONString(m[1])
	}
	if m := sourcesFieldRe.FindStringSubmatch(text); m != nil {
		var sources []model.CitedSource
		if err := json.Unmarshal([]byte(m[1]), &sources); err == nil {
			raw.Sources = sources
		}
	}

	if raw.Case == "" && raw.Talk == "" {
		return failed
	}
	return ParseResult{Status: ParseRecovered, Verdict: raw}
}

// firstBalancedObject scans for the first top-level {...} block, honoring
// string literals and escapes.
func firstBalancedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// hasUnterminatedString reports whether a line opens a string literal it
// never closes.
func hasUnterminatedString(line string) bool {
	inString := false
	escaped := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
		}
	}
	return inString
}

// closingSuffix returns the brackets needed to balance the candidate,
// innermost first.
func closingSuffix(text string) string {
	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	suffix := make([]byte, len(stack))
	for i := range stack {
		suffix[i] = stack[len(stack)-1-i]
	}
	return string(suffix)
}

// unescapeJSONString decodes a regex-captured JSON string body
func unescapeJSONString(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return s
	}
	return out
}
