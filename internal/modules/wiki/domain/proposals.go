package domain

import "fmt"

// RedirectText is the wikitext of a redirect to target.
func RedirectText(target string) string {
	return fmt.Sprintf("#REDIRECT [[%s]]", target)
}

// EditSummary attributes a wiki change to the Discord user who asked for it.
func EditSummary(requester, reason string) string {
	summary := fmt.Sprintf("Requested by %s via Discord", requester)
	if reason != "" {
		summary += ": " + reason
	}
	return summary
}

// MoveProposal is a page move awaiting confirmation.
type MoveProposal struct {
	From          string
	To            string
	LeaveRedirect bool
	Requester     string
}

// Describe formats the proposal for its prompt.
func (p MoveProposal) Describe() string {
	desc := fmt.Sprintf("Move `%s` to `%s`", p.From, p.To)
	if !p.LeaveRedirect {
		desc += " without leaving a redirect"
	}
	return desc + "?"
}

// DeleteProposal is a page deletion awaiting confirmation.
type DeleteProposal struct {
	Title     string
	Reason    string
	Requester string
}

// Describe formats the proposal for its prompt.
func (p DeleteProposal) Describe() string {
	if p.Reason == "" {
		return fmt.Sprintf("Delete `%s`?", p.Title)
	}
	return fmt.Sprintf("Delete `%s` (%s)?", p.Title, p.Reason)
}

// UploadProposal is a file upload awaiting confirmation.
type UploadProposal struct {
	URL       string
	Filename  string
	Comment   string
	Requester string
}

// Describe formats the proposal for its prompt.
func (p UploadProposal) Describe() string {
	return fmt.Sprintf("Upload <%s> as `File:%s`?", p.URL, p.Filename)
}

// RedirectProposal is a redirect creation awaiting confirmation.
type RedirectProposal struct {
	From      string
	To        string
	Requester string
}

// Describe formats the proposal for its prompt.
func (p RedirectProposal) Describe() string {
	return fmt.Sprintf("Turn `%s` into a redirect to `%s`?", p.From, p.To)
}
