package flow

import "encoding/json"

// Optional is a path a flow variant may switch off. A disabled value encodes
// as JSON false so tools can tell "no such stage" apart from an empty path.
type Optional struct {
	path    string
	enabled bool
}

// Enabled wraps a path that is in use.
func Enabled(path string) Optional {
	return Optional{path: path, enabled: true}
}

// Disabled is the switched-off value.
var Disabled = Optional{}

// Value is the path, or false when disabled.
func (o Optional) Value() any {
	if !o.enabled {
		return false
	}
	return o.path
}

func (o Optional) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Value())
}
