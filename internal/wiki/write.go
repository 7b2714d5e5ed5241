package wiki

import (
	"context"
	"fmt"
	"net/url"
	"slices"
)

// EditPage replaces the text of title.
func (c *Client) EditPage(ctx context.Context, title, text, summary string) (EditResult, error) {
	params := url.Values{}
	params.Set("action", "edit")
	params.Set("title", title)
	params.Set("text", text)
	params.Set("bot", "1")
	if summary != "" {
		params.Set("summary", summary)
	}

	var resp editResponse
	if err := c.write(ctx, params, &resp); err != nil {
		return EditResult{}, err
	}
	if resp.Edit.Result != "Success" {
		return EditResult{}, &APIError{Code: "editfailed", Info: resp.Edit.Result}
	}

	return EditResult{
		Title:      resp.Edit.Title,
		PageID:     resp.Edit.PageID,
		RevisionID: resp.Edit.NewRevID,
		NewPage:    resp.Edit.New != nil && *resp.Edit.New,
		NoChange:   resp.Edit.NoChange != nil && *resp.Edit.NoChange,
	}, nil
}

// MovePage moves from to to, together with its talk page.
func (c *Client) MovePage(ctx context.Context, from, to, reason string, leaveRedirect bool) (MoveResult, error) {
	params := url.Values{}
	params.Set("action", "move")
	params.Set("from", from)
	params.Set("to", to)
	params.Set("movetalk", "1")
	if reason != "" {
		params.Set("reason", reason)
	}
	if !leaveRedirect {
		params.Set("noredirect", "1")
	}

	var resp moveResponse
	if err := c.write(ctx, params, &resp); err != nil {
		return MoveResult{}, err
	}

	return MoveResult{
		From:            resp.Move.From,
		To:              resp.Move.To,
		Reason:          resp.Move.Reason,
		RedirectCreated: resp.Move.RedirectCreated != nil && *resp.Move.RedirectCreated,
	}, nil
}

// DeletePage deletes title.
func (c *Client) DeletePage(ctx context.Context, title, reason string) (DeleteResult, error) {
	params := url.Values{}
	params.Set("action", "delete")
	params.Set("title", title)
	if reason != "" {
		params.Set("reason", reason)
	}

	var resp deleteResponse
	if err := c.write(ctx, params, &resp); err != nil {
		return DeleteResult{}, err
	}

	return DeleteResult{
		Title:  resp.Delete.Title,
		Reason: resp.Delete.Reason,
		LogID:  resp.Delete.LogID,
	}, nil
}

// UploadByURL asks the wiki to fetch fileURL and store it as filename.
// Warnings are reported in the result rather than ignored.
func (c *Client) UploadByURL(ctx context.Context, filename, fileURL, comment string) (UploadResult, error) {
	params := url.Values{}
	params.Set("action", "upload")
	params.Set("filename", filename)
	params.Set("url", fileURL)
	if comment != "" {
		params.Set("comment", comment)
	}

	var resp uploadResponse
	if err := c.write(ctx, params, &resp); err != nil {
		return UploadResult{}, err
	}

	result := UploadResult{
		Filename: resp.Upload.Filename,
		Result:   resp.Upload.Result,
		URL:      resp.Upload.ImageInfo.URL,
	}
	if result.Filename == "" {
		result.Filename = filename
	}
	for key, value := range resp.Upload.Warnings {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", key, value))
	}
	slices.Sort(result.Warnings)

	return result, nil
}
