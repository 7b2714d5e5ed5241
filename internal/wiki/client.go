package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sglre6355/wikibot/internal/metrics"
	"github.com/sglre6355/wikibot/internal/tracing"
	"golang.org/x/time/rate"
)

// tokenLifetime is how long a login session and CSRF token are trusted.
const tokenLifetime = 60 * time.Minute

// Client talks to the MediaWiki Action API.
type Client struct {
	config     *Config
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger

	// backoff returns the delay before the given retry attempt.
	backoff func(attempt int) time.Duration

	mu          sync.Mutex
	loggedIn    bool
	csrfToken   string
	tokenExpiry time.Time
}

// NewClient creates a Client for cfg.
func NewClient(cfg *Config, logger *slog.Logger) *Client {
	jar, _ := cookiejar.New(nil)

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		},
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt*attempt) * 100 * time.Millisecond
		},
	}
}

// apiRequest posts params to the API and decodes the response into out.
// 429 responses are retried. Transport failures and 5xx responses are retried
// only for requests without a CSRF token, since a write may have been applied
// even though its response was lost. API error payloads are returned as
// *APIError without retrying.
func (c *Client) apiRequest(ctx context.Context, params url.Values, out any) error {
	action := params.Get("action")
	ctx, span := tracing.StartSpan(ctx, "wiki."+action)
	defer span.End()
	tracing.AddWikiAttributes(span, action, params.Get("title"))

	start := time.Now()
	err := c.doRequest(ctx, action, params, out)
	metrics.RecordWikiRequest(action, time.Since(start).Seconds(), err == nil)
	if err != nil {
		tracing.RecordError(span, err)
	}
	return err
}

func (c *Client) doRequest(ctx context.Context, action string, params url.Values, out any) error {
	params.Set("format", "json")
	params.Set("formatversion", "2")
	write := params.Get("token") != ""

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			metrics.WikiRetries.WithLabelValues(action).Inc()
			select {
			case <-time.After(c.backoff(attempt)):
			case <-ctx.Done():
				return fmt.Errorf("context cancelled during backoff: %w", ctx.Err())
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("failed to wait for rate limiter: %w", err)
		}

		body, retryAfter, err := c.post(ctx, params)
		if err != nil {
			var permanent *permanentError
			if errors.As(err, &permanent) {
				return permanent.err
			}
			var limited *rateLimitedError
			rateLimited := errors.As(err, &limited)
			if write && !rateLimited {
				return err
			}
			lastErr = err
			c.logger.Warn("failed wiki request, retrying",
				"action", action,
				"attempt", attempt+1,
				"max_retries", c.config.MaxRetries,
				"error", err,
			)
			if retryAfter > 0 {
				select {
				case <-time.After(retryAfter):
				case <-ctx.Done():
					return fmt.Errorf("context cancelled during rate limit wait: %w", ctx.Err())
				}
			}
			continue
		}

		var envelope struct {
			Error *APIError `json:"error"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		if envelope.Error != nil {
			return envelope.Error
		}

		if out == nil {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		return nil
	}

	return lastErr
}

// permanentError marks a failed request that must not be retried.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string {
	return e.err.Error()
}

// rateLimitedError is a 429 response. The server rejected the request, so it
// is safe to retry even for writes.
type rateLimitedError struct {
	status int
}

func (e *rateLimitedError) Error() string {
	return fmt.Sprintf("rate limited with status %d", e.status)
}

// post sends one request. It returns the Retry-After delay of a 429 response.
func (c *Client) post(ctx context.Context, params url.Values) ([]byte, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIURL,
		strings.NewReader(params.Encode()))
	if err != nil {
		return nil, 0, &permanentError{fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, &permanentError{fmt.Errorf("request failed: %w", err)}
		}
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, 0, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		var wait time.Duration
		if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			wait = time.Duration(seconds) * time.Second
		}
		return nil, wait, &rateLimitedError{status: resp.StatusCode}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, 0, &permanentError{fmt.Errorf("client error %d: %s", resp.StatusCode, string(body))}
	default:
		return nil, 0, fmt.Errorf("API returned status %d", resp.StatusCode)
	}
}

// login authenticates with the bot password. Callers must hold c.mu.
func (c *Client) login(ctx context.Context) error {
	if c.loggedIn && time.Now().Before(c.tokenExpiry) {
		return nil
	}
	if !c.config.HasCredentials() {
		return ErrNoCredentials
	}

	var tokens tokensResponse
	params := url.Values{}
	params.Set("action", "query")
	params.Set("meta", "tokens")
	params.Set("type", "login")
	if err := c.apiRequest(ctx, params, &tokens); err != nil {
		return fmt.Errorf("failed to get login token: %w", err)
	}
	if tokens.Query.Tokens.LoginToken == "" {
		return errors.New("no login token in response")
	}

	var login loginResponse
	params = url.Values{}
	params.Set("action", "login")
	params.Set("lgname", c.config.Username)
	params.Set("lgpassword", c.config.Password)
	params.Set("lgtoken", tokens.Query.Tokens.LoginToken)
	if err := c.apiRequest(ctx, params, &login); err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}
	if login.Login.Result != "Success" {
		return &APIError{Code: strings.ToLower(login.Login.Result), Info: login.Login.Reason}
	}

	c.loggedIn = true
	c.tokenExpiry = time.Now().Add(tokenLifetime)
	c.logger.Info("logged in to wiki", "username", c.config.Username)

	return nil
}

// token returns a CSRF token, logging in first if needed.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.csrfToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.csrfToken, nil
	}

	if err := c.login(ctx); err != nil {
		return "", err
	}

	var tokens tokensResponse
	params := url.Values{}
	params.Set("action", "query")
	params.Set("meta", "tokens")
	params.Set("type", "csrf")
	if err := c.apiRequest(ctx, params, &tokens); err != nil {
		return "", fmt.Errorf("failed to get CSRF token: %w", err)
	}
	if tokens.Query.Tokens.CSRFToken == "" {
		return "", errors.New("no CSRF token in response")
	}

	c.csrfToken = tokens.Query.Tokens.CSRFToken
	c.tokenExpiry = time.Now().Add(tokenLifetime)

	return c.csrfToken, nil
}

// resetSession forgets the session and token.
func (c *Client) resetSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loggedIn = false
	c.csrfToken = ""
	c.tokenExpiry = time.Time{}
}

// write performs a token-protected request, retrying once with a fresh
// session if the token was rejected.
func (c *Client) write(ctx context.Context, params url.Values, out any) error {
	for attempt := 0; ; attempt++ {
		token, err := c.token(ctx)
		if err != nil {
			return err
		}
		params.Set("token", token)

		err = c.apiRequest(ctx, params, out)
		var apiErr *APIError
		if attempt == 0 && errors.As(err, &apiErr) && apiErr.Code == "badtoken" {
			c.logger.Warn("rejected wiki token, logging in again", "action", params.Get("action"))
			c.resetSession()
			continue
		}
		return err
	}
}
