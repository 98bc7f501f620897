package langflow

import (
	"regexp"
	"strings"
)

// The analysis provider does not keep a stable response schema; the message
// has been observed under several different nestings. Each matcher probes one
// known shape and the list below is tried in priority order, first match
// wins. The ordering is part of the contract.
type pathMatcher struct {
	name  string
	probe func(resp map[string]interface{}) (string, bool)
}

var matchers = []pathMatcher{
	{
		name: "outputs[0].outputs[0].message.message",
		probe: func(resp map[string]interface{}) (string, bool) {
			return stringAt(elem(field(resp, "outputs"), 0), "outputs", "[0]", "message", "message")
		},
	},
	{
		name: "outputs[0].messages[0].message",
		probe: func(resp map[string]interface{}) (string, bool) {
			return stringAt(elem(field(resp, "outputs"), 0), "messages", "[0]", "message")
		},
	},
	{
		name: "outputs[0].outputs[0].results.message.text",
		probe: func(resp map[string]interface{}) (string, bool) {
			return stringAt(elem(field(resp, "outputs"), 0), "outputs", "[0]", "results", "message", "text")
		},
	},
	{
		name: "outputs[0].outputs[0].outputs.message.message",
		probe: func(resp map[string]interface{}) (string, bool) {
			return stringAt(elem(field(resp, "outputs"), 0), "outputs", "[0]", "outputs", "message", "message")
		},
	},
	{
		name: "outputs[0].artifacts.message",
		probe: func(resp map[string]interface{}) (string, bool) {
			return stringAt(elem(field(resp, "outputs"), 0), "artifacts", "message")
		},
	},
	{
		name: "outputs[0].outputs[0].artifacts.message",
		probe: func(resp map[string]interface{}) (string, bool) {
			return stringAt(elem(field(resp, "outputs"), 0), "outputs", "[0]", "artifacts", "message")
		},
	},
}

// ExtractMessage locates the single human-readable message inside an
// arbitrary provider response. It never panics; any value that does not
// match a known shape yields ("", false).
func ExtractMessage(response interface{}) (string, bool) {
	resp, ok := response.(map[string]interface{})
	if !ok {
		return "", false
	}
	if _, ok := elem(field(resp, "outputs"), 0).(map[string]interface{}); !ok {
		return "", false
	}
	for _, m := range matchers {
		if msg, ok := m.probe(resp); ok {
			return msg, true
		}
	}
	return "", false
}

var boldRe = regexp.MustCompile(`\*\*(.*?)\*\*`)

// FormatMessage cleans up an extracted message for display: markdown bold
// markers are stripped, hyphen bullets become a bullet glyph, surrounding
// whitespace is trimmed. Applying it twice gives the same result as once.
func FormatMessage(message string) string {
	out := boldRe.ReplaceAllString(message, "$1")
	out = strings.ReplaceAll(out, "- ", "• ")
	return strings.TrimSpace(out)
}

// field reads a map key, tolerating any input type.
func field(v interface{}, key string) interface{} {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	return m[key]
}

// elem reads an array index, tolerating any input type.
func elem(v interface{}, i int) interface{} {
	arr, ok := v.([]interface{})
	if !ok || i < 0 || i >= len(arr) {
		return nil
	}
	return arr[i]
}

// stringAt walks a path of map keys (or "[N]" array indexes) from v and
// returns the string at the end, if the whole path resolves to one.
func stringAt(v interface{}, path ...string) (string, bool) {
	cur := v
	for _, key := range path {
		if strings.HasPrefix(key, "[") && strings.HasSuffix(key, "]") {
			cur = elem(cur, int(key[1]-'0'))
		} else {
			cur = field(cur, key)
		}
		if cur == nil {
			return "", false
		}
	}
	s, ok := cur.(string)
	return s, ok
}
