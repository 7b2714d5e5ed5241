package core

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sglre6355/wikibot/internal/wiki"
)

// MockWiki is an in-memory test double for Wiki.
type MockWiki struct {
	// Pages maps titles to their text. Writes update it.
	Pages map[string]string
	// Modules maps module titles to the return value of any expression.
	Modules map[string]string
	// Err, when set, fails every call.
	Err error
	// WriteErr, when set, fails every write.
	WriteErr error
	// UploadResult is returned by UploadByURL; its Filename defaults to the
	// uploaded file name.
	UploadResult wiki.UploadResult

	mu    sync.Mutex
	calls []string
}

func (m *MockWiki) record(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

// Calls returns the calls made so far, formatted as "method args".
func (m *MockWiki) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CallCount returns how many calls started with prefix.
func (m *MockWiki) CallCount(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, call := range m.calls {
		if strings.HasPrefix(call, prefix) {
			n++
		}
	}
	return n
}

// PageExists reports whether Pages holds title.
func (m *MockWiki) PageExists(ctx context.Context, title string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("exists %s", title)
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.Pages[title]
	return ok, nil
}

// PageText returns the text of title.
func (m *MockWiki) PageText(ctx context.Context, title string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("text %s", title)
	if m.Err != nil {
		return "", m.Err
	}
	text, ok := m.Pages[title]
	if !ok {
		return "", wiki.ErrPageNotFound
	}
	return text, nil
}

func (m *MockWiki) writeErr() error {
	if m.Err != nil {
		return m.Err
	}
	return m.WriteErr
}

// EditPage stores text under title.
func (m *MockWiki) EditPage(ctx context.Context, title, text, summary string) (wiki.EditResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("edit %s: %s", title, text)
	if err := m.writeErr(); err != nil {
		return wiki.EditResult{}, err
	}
	if m.Pages == nil {
		m.Pages = make(map[string]string)
	}
	old, existed := m.Pages[title]
	m.Pages[title] = text
	return wiki.EditResult{Title: title, NewPage: !existed, NoChange: existed && old == text}, nil
}

// MovePage moves the text of from to to.
func (m *MockWiki) MovePage(ctx context.Context, from, to, reason string, leaveRedirect bool) (wiki.MoveResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("move %s -> %s redirect=%t", from, to, leaveRedirect)
	if err := m.writeErr(); err != nil {
		return wiki.MoveResult{}, err
	}
	text, ok := m.Pages[from]
	if !ok {
		return wiki.MoveResult{}, &wiki.APIError{Code: "missingtitle", Info: "The page you specified doesn't exist."}
	}
	delete(m.Pages, from)
	m.Pages[to] = text
	if leaveRedirect {
		m.Pages[from] = "#REDIRECT [[" + to + "]]"
	}
	return wiki.MoveResult{From: from, To: to, Reason: reason, RedirectCreated: leaveRedirect}, nil
}

// DeletePage removes title.
func (m *MockWiki) DeletePage(ctx context.Context, title, reason string) (wiki.DeleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("delete %s", title)
	if err := m.writeErr(); err != nil {
		return wiki.DeleteResult{}, err
	}
	if _, ok := m.Pages[title]; !ok {
		return wiki.DeleteResult{}, &wiki.APIError{Code: "missingtitle", Info: "The page you specified doesn't exist."}
	}
	delete(m.Pages, title)
	return wiki.DeleteResult{Title: title, Reason: reason}, nil
}

// UploadByURL returns UploadResult.
func (m *MockWiki) UploadByURL(ctx context.Context, filename, fileURL, comment string) (wiki.UploadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("upload %s from %s", filename, fileURL)
	if err := m.writeErr(); err != nil {
		return wiki.UploadResult{}, err
	}
	result := m.UploadResult
	if result.Filename == "" {
		result.Filename = filename
	}
	if result.Result == "" {
		result.Result = "Success"
	}
	return result, nil
}

// InvokeModule returns the configured value of module.
func (m *MockWiki) InvokeModule(ctx context.Context, module, expression string) (wiki.ModuleOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("invoke %s", module)
	if m.Err != nil {
		return wiki.ModuleOutput{}, m.Err
	}
	value, ok := m.Modules[module]
	if !ok {
		return wiki.ModuleOutput{}, wiki.ErrPageNotFound
	}
	return wiki.ModuleOutput{Return: value}, nil
}

// PageURL returns a fixed-host article URL.
func (m *MockWiki) PageURL(title string) string {
	return "https://wiki.example.com/" + strings.ReplaceAll(title, " ", "_")
}
