package wiki

import (
	"context"
	"net/url"
	"strings"
)

func (c *Client) queryPage(ctx context.Context, title string, withContent bool) (*queryPagesResponse, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("titles", title)
	if withContent {
		params.Set("prop", "revisions")
		params.Set("rvprop", "content")
		params.Set("rvslots", "main")
	}

	var resp queryPagesResponse
	if err := c.apiRequest(ctx, params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PageExists reports whether title exists on the wiki.
func (c *Client) PageExists(ctx context.Context, title string) (bool, error) {
	resp, err := c.queryPage(ctx, title, false)
	if err != nil {
		return false, err
	}
	if len(resp.Query.Pages) == 0 {
		return false, nil
	}
	page := resp.Query.Pages[0]
	return !page.Missing && !page.Invalid, nil
}

// PageText returns the current wikitext of title.
func (c *Client) PageText(ctx context.Context, title string) (string, error) {
	resp, err := c.queryPage(ctx, title, true)
	if err != nil {
		return "", err
	}
	if len(resp.Query.Pages) == 0 {
		return "", ErrPageNotFound
	}
	page := resp.Query.Pages[0]
	if page.Missing || page.Invalid || len(page.Revisions) == 0 {
		return "", ErrPageNotFound
	}
	return page.Revisions[0].Slots.Main.Content, nil
}

// InvokeModule evaluates expression in the Scribunto console with the text of
// module loaded, so the module's export table is available as p.
func (c *Client) InvokeModule(ctx context.Context, module, expression string) (ModuleOutput, error) {
	content, err := c.PageText(ctx, module)
	if err != nil {
		return ModuleOutput{}, err
	}

	params := url.Values{}
	params.Set("action", "scribunto-console")
	params.Set("title", module)
	params.Set("content", content)
	params.Set("question", "="+expression)
	params.Set("clear", "1")

	var resp consoleResponse
	if err := c.apiRequest(ctx, params, &resp); err != nil {
		return ModuleOutput{}, err
	}
	if resp.Type == "error" {
		return ModuleOutput{}, &APIError{Code: "scribunto-console", Info: resp.Message}
	}

	return ModuleOutput{Print: resp.Print, Return: resp.Return}, nil
}

// PageURL returns the browser URL of title.
func (c *Client) PageURL(title string) string {
	encoded := url.PathEscape(strings.ReplaceAll(strings.TrimSpace(title), " ", "_"))
	return strings.ReplaceAll(c.config.ArticleURL, "$1", encoded)
}
