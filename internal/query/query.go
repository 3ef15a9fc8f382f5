// Package query implements the filter, order, and group operations
// over Document collections.
//
// All operations are pure: they allocate fresh collections and never
// mutate their input, so one loaded Document set can feed multiple
// independent output pipelines within the same build.
package query

import (
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/Happy-Ferret/fledermaus/internal/document"
)

// Criteria maps field names to tests. A value of type *regexp.Regexp
// matches against the field's string representation; a nil value
// requires the field to be absent; anything else requires exact
// equality.
type Criteria map[string]any

// Descending marks a field spec for descending order.
const Descending = "-"

// Filter returns the documents satisfying every criterion. A document
// with an absent field fails that criterion unless the criterion value
// is nil.
func Filter(docs []*document.Document, criteria Criteria) []*document.Document {
	out := make([]*document.Document, 0, len(docs))
	for _, doc := range docs {
		if matches(doc, criteria) {
			out = append(out, doc)
		}
	}
	return out
}

func matches(doc *document.Document, criteria Criteria) bool {
	for name, want := range criteria {
		got, ok := doc.Get(name)
		if want == nil {
			if ok {
				return false
			}
			continue
		}
		if !ok {
			return false
		}
		if re, isPattern := want.(*regexp.Regexp); isPattern {
			if !re.MatchString(cast.ToString(got)) {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

// Order returns the documents sorted by the given field specs. A spec
// prefixed with "-" sorts descending; ascending is the default. The
// sort is stable: equal keys keep their input order. Documents lacking
// a field sort before documents that have it.
func Order(docs []*document.Document, fieldSpecs []string) []*document.Document {
	out := make([]*document.Document, len(docs))
	copy(out, docs)

	sort.SliceStable(out, func(i, j int) bool {
		for _, spec := range fieldSpecs {
			field := spec
			desc := false
			if strings.HasPrefix(spec, Descending) {
				field = spec[len(Descending):]
				desc = true
			}

			c := compareField(out[i], out[j], field)
			if c == 0 {
				continue
			}
			if desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return out
}

func compareField(a, b *document.Document, field string) int {
	av, aok := a.Get(field)
	bv, bok := b.Get(field)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}
	return compareValues(av, bv)
}

func compareValues(a, b any) int {
	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			return at.Compare(bt)
		}
	}

	af, aerr := cast.ToFloat64E(a)
	bf, berr := cast.ToFloat64E(b)
	if aerr == nil && berr == nil {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(cast.ToString(a), cast.ToString(b))
}

// Group buckets documents by a field's value. A sequence-valued field
// adds the document under every element; a scalar adds it under the
// single value. Bucket keys are the values' string representations and
// buckets preserve document encounter order. Documents lacking the
// field do not appear in any bucket.
func Group(docs []*document.Document, field string) map[string][]*document.Document {
	groups := make(map[string][]*document.Document)
	for _, doc := range docs {
		v, ok := doc.Get(field)
		if !ok {
			continue
		}
		for _, key := range groupKeys(v) {
			groups[key] = append(groups[key], doc)
		}
	}
	return groups
}

func groupKeys(v any) []string {
	switch seq := v.(type) {
	case []any:
		keys := make([]string, 0, len(seq))
		for _, item := range seq {
			keys = append(keys, cast.ToString(item))
		}
		return keys
	case []string:
		return seq
	default:
		return []string{cast.ToString(v)}
	}
}
