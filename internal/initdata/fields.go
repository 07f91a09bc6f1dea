package initdata

import (
	"iter"
	"net/url"
	"strings"
)

// Field is a single name=value pair with the value percent-decoded once.
type Field struct {
	Name  string
	Value string
}

// FieldSet is the ordered set of fields of one payload. It is immutable;
// With returns a modified copy.
type FieldSet struct {
	order  []string
	values map[string]string
}

// Parse splits a raw init data query string into its fields. It makes no
// trust decision: a payload that will later fail verification still parses.
//
// A repeated name keeps the position of its first occurrence and the value
// of its last one.
func Parse(raw string) (FieldSet, error) {
	if raw == "" {
		return FieldSet{}, ErrEmptyPayload
	}

	fs := FieldSet{values: make(map[string]string)}
	hasPair := false

	for _, segment := range strings.Split(raw, "&") {
		if segment == "" {
			continue
		}

		name, rawValue, found := strings.Cut(segment, "=")
		if found {
			hasPair = true
		}
		if strings.Contains(segment, ";") {
			return FieldSet{}, fieldErr(ErrMalformedField, name, nil)
		}

		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return FieldSet{}, fieldErr(ErrMalformedField, name, err)
		}

		if _, ok := fs.values[name]; !ok {
			fs.order = append(fs.order, name)
		}
		fs.values[name] = value
	}

	if !hasPair {
		return FieldSet{}, ErrEmptyPayload
	}
	return fs, nil
}

// NewFieldSet builds a FieldSet from already decoded fields, with the same
// duplicate handling as Parse.
func NewFieldSet(fields ...Field) FieldSet {
	fs := FieldSet{values: make(map[string]string, len(fields))}
	for _, f := range fields {
		if _, ok := fs.values[f.Name]; !ok {
			fs.order = append(fs.order, f.Name)
		}
		fs.values[f.Name] = f.Value
	}
	return fs
}

func (fs FieldSet) Get(name string) (string, bool) {
	v, ok := fs.values[name]
	return v, ok
}

func (fs FieldSet) Len() int { return len(fs.order) }

// Names returns field names in query string order.
func (fs FieldSet) Names() []string {
	return append([]string(nil), fs.order...)
}

// All iterates fields in query string order.
func (fs FieldSet) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range fs.order {
			if !yield(name, fs.values[name]) {
				return
			}
		}
	}
}

// With returns a copy of fs with name set to value. An existing field keeps
// its position; a new one is appended.
func (fs FieldSet) With(name, value string) FieldSet {
	out := FieldSet{
		order:  append([]string(nil), fs.order...),
		values: make(map[string]string, len(fs.values)+1),
	}
	for k, v := range fs.values {
		out.values[k] = v
	}
	if _, ok := out.values[name]; !ok {
		out.order = append(out.order, name)
	}
	out.values[name] = value
	return out
}

// Without returns a copy of fs with name removed.
func (fs FieldSet) Without(name string) FieldSet {
	out := FieldSet{values: make(map[string]string, len(fs.values))}
	for _, k := range fs.order {
		if k == name {
			continue
		}
		out.order = append(out.order, k)
		out.values[k] = fs.values[k]
	}
	return out
}
