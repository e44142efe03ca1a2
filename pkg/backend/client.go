package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/medimarket/storefront-backend/pkg/auth"
	"github.com/medimarket/storefront-backend/pkg/config"
	pkgerrors "github.com/medimarket/storefront-backend/pkg/errors"
	"github.com/medimarket/storefront-backend/pkg/logger"
)

var (
	errBaseURLRequired = errors.New("backend base url is required")
	errLoggerRequired  = errors.New("backend logger is required")
)

// Client talks to the marketplace backend that owns persistence and is the
// final authority on every mutation. It centralizes bearer auth, structured
// logging, error mapping, and read-only retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
	maxRetries uint64
	retryBase  time.Duration
}

// NewClient validates the configuration and builds the backend wrapper.
func NewClient(cfg config.BackendConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}
	retryBase := cfg.ReadRetryBase
	if retryBase <= 0 {
		retryBase = 200 * time.Millisecond
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		logger:     logg,
		maxRetries: cfg.ReadMaxRetries,
		retryBase:  retryBase,
	}, nil
}

// get performs an idempotent read with fibonacci backoff on retryable
// failures. Mutating verbs never go through here: the backend does not
// guarantee idempotency for them, so a failed mutation is surfaced once.
func (c *Client) get(ctx context.Context, session auth.Session, path string, out any) error {
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewFibonacci(c.retryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.do(ctx, session, http.MethodGet, path, nil, out)
		if typed := pkgerrors.As(err); typed != nil && pkgerrors.MetadataFor(typed.Code()).Retryable {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) post(ctx context.Context, session auth.Session, path string, body, out any) error {
	return c.do(ctx, session, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, session auth.Session, path string, out any) error {
	return c.do(ctx, session, http.MethodPut, path, nil, out)
}

func (c *Client) delete(ctx context.Context, session auth.Session, path string) error {
	return c.do(ctx, session, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, session auth.Session, method, path string, body, out any) error {
	token := strings.TrimSpace(session.Bearer())
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log(ctx, "request", method, path, nil)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log(ctx, "error", method, path, map[string]any{"error": err.Error()})
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call marketplace backend")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	c.log(ctx, "response", method, path, map[string]any{"status": resp.StatusCode})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatusError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode backend response")
	}
	return nil
}

// mapStatusError translates backend status codes into the storefront error
// taxonomy so callers never branch on raw HTTP codes.
func mapStatusError(resp *http.Response) *pkgerrors.Error {
	message := readErrorMessage(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return pkgerrors.New(pkgerrors.CodeUnauthorized, fallback(message, "token rejected"))
	case http.StatusForbidden:
		return pkgerrors.New(pkgerrors.CodeForbidden, fallback(message, "backend denied the action"))
	case http.StatusNotFound, http.StatusConflict:
		// A 404 on a mutation means the record moved or vanished under us;
		// both map to the refresh-and-retry conflict surface.
		return pkgerrors.New(pkgerrors.CodeConflict, fallback(message, "order changed concurrently"))
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return pkgerrors.New(pkgerrors.CodeValidation, fallback(message, "backend rejected the request"))
	default:
		return pkgerrors.New(pkgerrors.CodeDependency, fallback(message, fmt.Sprintf("backend returned %d", resp.StatusCode)))
	}
}

func readErrorMessage(body io.Reader) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&envelope); err != nil {
		return ""
	}
	if envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return envelope.Message
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

func (c *Client) log(ctx context.Context, stage, method, path string, fields map[string]any) {
	if c.logger == nil {
		return
	}
	merged := map[string]any{"backend_method": method, "backend_path": path}
	for k, v := range fields {
		merged[k] = v
	}
	c.logger.Info(c.logger.WithFields(ctx, merged), "backend."+stage)
}
