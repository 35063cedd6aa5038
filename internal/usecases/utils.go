package usecases

import (
	"strings"

	"github.com/volatiletech/null/v8"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// optionalString maps blank input to a null column value
func optionalString(s string) null.String {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

// applyString overwrites dst when the patch carries a value
func applyString(dst *string, patch *string) {
	if patch != nil {
		*dst = strings.TrimSpace(*patch)
	}
}

// applyOptional overwrites dst when the patch carries a value; blank clears it
func applyOptional(dst *null.String, patch *string) {
	if patch != nil {
		*dst = optionalString(*patch)
	}
}

// missingFields returns the names whose values are blank, in order
func missingFields(fields ...[2]string) []string {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			missing = append(missing, f[0])
		}
	}
	return missing
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
