package domain

import (
	"fmt"
	"strings"
)

// CommandSummary is what help shows about a command.
type CommandSummary struct {
	Name        string
	Aliases     []string
	Roles       []string
	UsageLine   string
	Description string
}

// Line formats the summary as one entry of the command list.
func (s CommandSummary) Line() string {
	line := fmt.Sprintf("`%s`", s.UsageLine)
	if s.Description != "" {
		line += " - " + s.Description
	}
	return line
}

// Details formats the summary for the help of a single command.
func (s CommandSummary) Details() string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Usage:** `%s`\n", s.UsageLine)
	if s.Description != "" {
		fmt.Fprintf(&b, "%s\n", s.Description)
	}
	if len(s.Aliases) > 0 {
		fmt.Fprintf(&b, "**Aliases:** %s\n", strings.Join(s.Aliases, ", "))
	}
	if len(s.Roles) > 0 {
		fmt.Fprintf(&b, "**Roles:** %s\n", strings.Join(s.Roles, ", "))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
