package content

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Sentinel errors surfaced to the admin UI.
var (
	ErrNotFound  = errors.New("not found")
	ErrSlugTaken = errors.New("slug already in use")
)

// ValidationError carries per-entry messages from a rejected save.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// slugRE matches lowercase letters, digits, and hyphens only.
var slugRE = regexp.MustCompile(`^[a-z0-9-]+$`)

// validateEntries runs struct validation over every entry, collecting all
// messages so the admin sees the full list at once.
func validateEntries[T any](entries []T) error {
	var messages []string
	for i, entry := range entries {
		if err := validate.Struct(entry); err != nil {
			var fields validator.ValidationErrors
			if errors.As(err, &fields) {
				for _, f := range fields {
					messages = append(messages, fmt.Sprintf("entry %d: field %s is invalid (%s)", i+1, f.Field(), f.Tag()))
				}
				continue
			}
			messages = append(messages, fmt.Sprintf("entry %d: %v", i+1, err))
		}
	}
	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}

// findDuplicateIDs returns the set of ids that appear more than once.
func findDuplicateIDs(ids []string) []string {
	seen := make(map[string]int, len(ids))
	var duplicates []string
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		seen[id]++
		if seen[id] == 2 {
			duplicates = append(duplicates, id)
		}
	}
	return duplicates
}

func duplicateIDError(duplicates []string) error {
	messages := make([]string, 0, len(duplicates))
	for _, id := range duplicates {
		messages = append(messages, fmt.Sprintf("duplicate id %q detected", id))
	}
	return &ValidationError{Messages: messages}
}
