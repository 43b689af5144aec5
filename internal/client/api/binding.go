package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/grain/internal/logging"
	"github.com/google/uuid"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRequestID     = "X-Request-ID"

	maxErrorBody = 4 << 10
)

// Binding is a named HTTP client bound to one base URL.
type Binding struct {
	name       string
	baseURL    string
	httpClient *http.Client
	log        logging.Logger

	mu     sync.RWMutex
	base   http.Header
	common http.Header
}

type Option func(*Binding)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Binding) { b.httpClient = c }
}

// WithTimeout sets a whole-request timeout. Zero leaves requests pending
// until the transport gives up.
func WithTimeout(d time.Duration) Option {
	return func(b *Binding) { b.httpClient.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(b *Binding) { b.log = l }
}

// WithHeader adds a creation-time header. Creation-time headers survive
// ClearCredentials; a default header with the same name takes precedence.
func WithHeader(key, value string) Option {
	return func(b *Binding) { b.base.Set(key, value) }
}

func NewBinding(name, baseURL string, opts ...Option) *Binding {
	b := &Binding{
		name:       name,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        logging.Nop(),
		base:       http.Header{HeaderContentType: []string{"application/json"}},
		common:     http.Header{},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = b.log.With("binding", name)
	return b
}

func (b *Binding) Name() string    { return b.name }
func (b *Binding) BaseURL() string { return b.baseURL }

// SetHeader sets a mutable default header.
func (b *Binding) SetHeader(key, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.common.Set(key, value)
}

// DeleteHeader removes a mutable default header.
func (b *Binding) DeleteHeader(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.common.Del(key)
}

// Header returns the value that would be sent for key.
func (b *Binding) Header(key string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if v := b.common.Get(key); v != "" {
		return v
	}
	return b.base.Get(key)
}

// SetBearerToken makes every following request carry "Bearer <token>".
func (b *Binding) SetBearerToken(token string) {
	b.SetHeader(HeaderAuthorization, "Bearer "+token)
}

// SetAPIKey makes every following request carry "Client-ID <key>".
func (b *Binding) SetAPIKey(key string) {
	b.SetHeader(HeaderAuthorization, "Client-ID "+key)
}

// ClearCredentials drops the default Authorization header.
func (b *Binding) ClearCredentials() {
	b.DeleteHeader(HeaderAuthorization)
}

func (b *Binding) headers() http.Header {
	b.mu.RLock()
	defer b.mu.RUnlock()
	h := b.base.Clone()
	for k, v := range b.common {
		h[k] = append([]string(nil), v...)
	}
	return h
}

// RequestOption adjusts a single outgoing request.
type RequestOption func(h http.Header)

// WithBearer sends "Bearer <token>" on this request only, leaving the
// binding's default headers untouched.
func WithBearer(token string) RequestOption {
	return func(h http.Header) { h.Set(HeaderAuthorization, "Bearer "+token) }
}

// Get sends GET path?query and decodes the JSON body into out.
func (b *Binding) Get(ctx context.Context, path string, query url.Values, out any, opts ...RequestOption) error {
	return b.do(ctx, http.MethodGet, path, query, nil, out, opts)
}

// Post sends body as JSON and decodes the JSON response into out.
func (b *Binding) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return b.do(ctx, http.MethodPost, path, nil, body, out, opts)
}

func (b *Binding) do(ctx context.Context, method, path string, query url.Values, body, out any, opts []RequestOption) error {
	target := b.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", b.name, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", b.name, err)
	}
	req.Header = b.headers()
	for _, opt := range opts {
		opt(req.Header)
	}

	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)
	log := b.log.With("request_id", requestID, "method", method, "path", path)

	started := time.Now()
	resp, err := b.httpClient.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return fmt.Errorf("%s: %s %s: %w", b.name, method, path, errors.Join(ErrUnavailable, err))
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request done", "status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Binding:    b.name,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(msg)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode %s %s: %w", b.name, method, path, err)
	}
	return nil
}
