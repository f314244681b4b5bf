package scenedesc

import "encoding/json"

// BuiltinPrefix names scenes compiled into the binary rather than read from disk
const BuiltinPrefix = "builtin/"

// header is the part of a descriptor read before its body is overlaid
type header struct {
	Parent string `json:"parent"`
}

// listKeys are descriptor paths holding arrays. A child that sets one
// replaces the parent's list instead of merging into it element by element.
var listKeys = [][]string{
	{"objects"},
	{"lights", "lights"},
	{"backdrop", "faces"},
}

// hasKey reports whether the JSON object raw contains the nested key path
func hasKey(raw json.RawMessage, path ...string) bool {
	for _, key := range path {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return false
		}
		next, ok := obj[key]
		if !ok {
			return false
		}
		raw = next
	}
	return true
}
