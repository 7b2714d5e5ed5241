package core

import (
	"fmt"
	"slices"
	"strings"
)

// HasRequiredRole reports whether roles holds at least one of required.
// An empty required list always passes.
func HasRequiredRole(roles, required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, want := range required {
		if slices.Contains(roles, want) {
			return true
		}
	}
	return false
}

// MissingRoleMessage formats the reply sent when a user lacks the roles of a
// role-gated command.
func MissingRoleMessage(required []string) string {
	return fmt.Sprintf("You must be %s to execute this command!", rolePhrase(required))
}

func rolePhrase(roles []string) string {
	parts := make([]string, len(roles))
	for i, role := range roles {
		parts[i] = fmt.Sprintf("a `%s`", role)
	}

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}
