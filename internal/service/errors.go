package service

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationErrors maps a field name to the constraints it violated. It
// implements error so services can hand it back through normal error
// returns; handlers unwrap it into a 422 response.
type ValidationErrors map[string][]string

// Add records one violation for a field.
func (e ValidationErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Empty reports whether no violations were recorded.
func (e ValidationErrors) Empty() bool {
	return len(e) == 0
}

// Messages flattens all violations into one deterministic list.
func (e ValidationErrors) Messages() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var messages []string
	for _, field := range fields {
		for _, msg := range e[field] {
			messages = append(messages, fmt.Sprintf("%s: %s", field, msg))
		}
	}
	return messages
}

func (e ValidationErrors) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}
