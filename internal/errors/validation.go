package errors

import (
	"fmt"
	"sort"
	"strings"
)

// Validation reports malformed input per offending field. A Validation
// error always means no mutation happened.
type Validation struct {
	Fields map[string]string
}

func NewValidation() *Validation {
	return &Validation{Fields: make(map[string]string)}
}

func (v *Validation) Add(field, message string) {
	v.Fields[field] = message
}

func (v *Validation) Empty() bool {
	return len(v.Fields) == 0
}

func (v *Validation) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, v.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
