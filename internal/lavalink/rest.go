package lavalink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"musicmonkey/pkg/retrylimit"
)

// apiError carries the node's HTTP status so the retry helper can tell
// throttling from hard failures.
type apiError struct {
	code int
	body string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("lavalink: status %d: %s", e.code, e.body)
}

func (e *apiError) StatusCode() int { return e.code }

var _ retrylimit.HTTPError = (*apiError)(nil)

// restClient talks to the node's v4 REST API. All player control goes
// through here; the websocket only delivers events.
type restClient struct {
	baseURL  string
	password string
	http     *http.Client
	limiter  *retrylimit.AdaptiveLimiter
}

func newRESTClient(cfg Config) *restClient {
	scheme := "http"
	if cfg.Secure {
		scheme = "https"
	}
	return &restClient{
		baseURL:  fmt.Sprintf("%s://%s:%d/v4", scheme, cfg.Host, cfg.Port),
		password: cfg.Password,
		http:     &http.Client{Timeout: 15 * time.Second},
		limiter:  retrylimit.NewAdaptiveLimiter(10, 1, 25, 1, 0.5),
	}
}

func (c *restClient) do(ctx context.Context, method, path string, body, out any) error {
	return retrylimit.WithRetryMax(ctx, func() error {
		var rd io.Reader
		if body != nil {
			buf, err := json.Marshal(body)
			if err != nil {
				return &retrylimit.FatalError{Err: err}
			}
			rd = bytes.NewReader(buf)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
		if err != nil {
			return &retrylimit.FatalError{Err: err}
		}
		req.Header.Set("Authorization", c.password)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			apiErr := &apiError{code: resp.StatusCode, body: string(raw)}
			// client mistakes will not get better on retry
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return &retrylimit.FatalError{Err: apiErr}
			}
			return apiErr
		}

		if out != nil {
			if dst, ok := out.(*[]byte); ok {
				*dst = raw
				return nil
			}
			if err := json.Unmarshal(raw, out); err != nil {
				return &retrylimit.FatalError{Err: err}
			}
		}
		return nil
	}, c.limiter, 3)
}

// LoadTracks resolves an identifier (URL or search prefix like
// "ytsearch:query") into tracks.
func (c *restClient) LoadTracks(ctx context.Context, identifier string) (*LoadResult, error) {
	var raw []byte
	path := "/loadtracks?identifier=" + url.QueryEscape(identifier)
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return decodeLoadResult(raw)
}

// UpdatePlayer patches the guild's player. noReplace makes a play directive
// a no-op when a track is already loaded.
func (c *restClient) UpdatePlayer(ctx context.Context, sessionID, guildID string, body any, noReplace bool) error {
	path := fmt.Sprintf("/sessions/%s/players/%s?noReplace=%t", sessionID, guildID, noReplace)
	return c.do(ctx, http.MethodPatch, path, body, nil)
}

// DestroyPlayer removes the guild's player from the node.
func (c *restClient) DestroyPlayer(ctx context.Context, sessionID, guildID string) error {
	path := fmt.Sprintf("/sessions/%s/players/%s", sessionID, guildID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
