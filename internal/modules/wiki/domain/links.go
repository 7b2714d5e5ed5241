package domain

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxLinksPerMessage caps how many [[Title]] links one message resolves.
const MaxLinksPerMessage = 5

var wikiLinkPattern = regexp.MustCompile(`\[\[([^\[\]|]+)(?:\|[^\[\]]*)?\]\]`)

// NormalizeTitle converts a user-typed title into its canonical form:
// underscores become spaces, runs of spaces collapse and the first letter
// is upper case.
func NormalizeTitle(title string) string {
	title = strings.Join(strings.Fields(strings.ReplaceAll(title, "_", " ")), " ")
	if title == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(title)
	return string(unicode.ToUpper(r)) + title[size:]
}

// ExtractLinks returns the distinct titles linked as [[Title]] or
// [[Title|label]] in content, in order of appearance, at most limit of them.
func ExtractLinks(content string, limit int) []string {
	var titles []string
	seen := make(map[string]struct{})
	for _, match := range wikiLinkPattern.FindAllStringSubmatch(content, -1) {
		title := NormalizeTitle(match[1])
		if title == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
		if len(titles) == limit {
			break
		}
	}
	return titles
}

// Link is a resolved wiki link.
type Link struct {
	Title  string
	URL    string
	Exists bool
}

// Line formats the link for a reply.
func (l Link) Line() string {
	if !l.Exists {
		return "`" + l.Title + "` does not exist."
	}
	return "<" + l.URL + ">"
}
