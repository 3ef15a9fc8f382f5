package fields

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// Date parses a front-matter date value into time.Time. Absent values
// stay absent (nil). Accepts time.Time passthrough (yaml.v3 decodes
// ISO timestamps natively) and the usual date string layouts.
func Date(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	if t, ok := raw.(time.Time); ok {
		return t, nil
	}
	t, err := cast.ToTimeE(raw)
	if err != nil {
		return nil, fmt.Errorf("not a date: %v", raw)
	}
	return t, nil
}

// Tags normalizes a scalar or sequence tag value to []string. Absent
// values stay absent, so untagged documents carry no tags field and
// absence criteria can match them; templates guard with "with" before
// ranging.
func Tags(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			s, err := cast.ToStringE(item)
			if err != nil {
				return nil, fmt.Errorf("not a tag: %v", item)
			}
			tags = append(tags, s)
		}
		return tags, nil
	case []string:
		return v, nil
	default:
		s, err := cast.ToStringE(raw)
		if err != nil {
			return nil, fmt.Errorf("not a tag: %v", raw)
		}
		return []string{s}, nil
	}
}
