// Package fields applies named custom-field transforms to raw
// front-matter fields.
package fields

import "fmt"

// Parser transforms a raw front-matter value. The raw value may be nil
// when the field is absent from the source document. Parsers must be
// pure.
type Parser func(raw any) (any, error)

// Registry maps field names to their transforms.
type Registry map[string]Parser

// ParseError reports a transform failure, tagged with the field name.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse field %q: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Apply runs every registered parser against the raw fields and returns
// a new map. Raw fields without a parser pass through unchanged; parser
// outputs win on key collision. Parsers run even when the raw value is
// absent, so a parser can supply defaults; a nil parser result leaves
// the field absent. The input map is not mutated.
func Apply(raw map[string]any, parsers Registry) (map[string]any, error) {
	out := make(map[string]any, len(raw)+len(parsers))
	for k, v := range raw {
		out[k] = v
	}
	for name, parse := range parsers {
		parsed, err := parse(raw[name])
		if err != nil {
			return nil, &ParseError{Field: name, Err: err}
		}
		if parsed == nil {
			delete(out, name)
			continue
		}
		out[name] = parsed
	}
	return out, nil
}
