// Package api loads documents from HTTP JSON or text endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/loaders/ratelimit"
	"github.com/custodia-labs/docprep/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Name identifies the API loader.
const Name = "api"

// DefaultTimeout bounds a single request.
const DefaultTimeout = 30 * time.Second

// maxBodySize caps how much of a response is read.
const maxBodySize = 32 << 20

// Config configures an API loader.
type Config struct {
	// URLs are fetched in order, one document each.
	URLs []string

	// Headers are sent with every request.
	Headers map[string]string

	// Params are added to each URL's query string.
	Params map[string]string

	// JSONPath is a dotted path into a JSON response ("data.items").
	// Empty means the whole body.
	JSONPath string

	// Token, if set, is sent as a bearer token.
	Token string

	// RateLimit throttles requests. Zero values use ratelimit.DefaultConfig.
	RateLimit ratelimit.Config

	// HTTPClient overrides the default client. The bearer token, if any,
	// is layered on top of it.
	HTTPClient *http.Client
}

// Loader fetches each configured URL and turns the response into a document.
type Loader struct {
	cfg     Config
	client  *http.Client
	limiter *ratelimit.Limiter
}

// New creates an API loader.
func New(cfg Config) (*Loader, error) {
	if len(cfg.URLs) == 0 {
		return nil, fmt.Errorf("%w: api loader needs at least one url", domain.ErrInvalidInput)
	}

	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: DefaultTimeout}
	}

	client := base
	if cfg.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.Token,
			TokenType:   "Bearer",
		}))
	}

	return &Loader{
		cfg:     cfg,
		client:  client,
		limiter: ratelimit.New(cfg.RateLimit),
	}, nil
}

// Name returns the loader name.
func (l *Loader) Name() string {
	return Name
}

// Load fetches every URL. The first failing URL aborts the load.
func (l *Loader) Load(ctx context.Context) ([]domain.Document, error) {
	docs := make([]domain.Document, 0, len(l.cfg.URLs))
	for _, u := range l.cfg.URLs {
		doc, err := l.fetch(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrLoaderFailed, u, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (l *Loader) fetch(ctx context.Context, rawURL string) (domain.Document, error) {
	reqURL, err := withParams(rawURL, l.cfg.Params)
	if err != nil {
		return domain.Document{}, err
	}

	if err := l.limiter.Wait(ctx); err != nil {
		return domain.Document{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return domain.Document{}, err
	}
	for k, v := range l.cfg.Headers {
		req.Header.Set(k, v)
	}

	logger.Debug("GET %s", reqURL)
	resp, err := l.client.Do(req)
	if err != nil {
		return domain.Document{}, err
	}
	defer resp.Body.Close()
	l.limiter.Observe(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Document{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return domain.Document{}, fmt.Errorf("read body: %w", err)
	}

	return domain.NewDocument(ExtractText(body, l.cfg.JSONPath), map[string]any{
		domain.KeySourceType: string(domain.SourceAPI),
		domain.KeyURL:        rawURL,
		domain.KeyStatusCode: resp.StatusCode,
	}), nil
}

// ExtractText turns a response body into document text.
//
// A non-JSON body is returned as-is. For JSON, path is walked one object key
// at a time; if any segment is missing the whole body is used instead. A
// string result is returned unquoted, anything else is re-encoded as JSON.
func ExtractText(body []byte, path string) string {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return string(body)
	}

	content := data
	if path != "" {
		for _, key := range strings.Split(path, ".") {
			obj, ok := content.(map[string]any)
			if !ok {
				content = data
				break
			}
			next, ok := obj[key]
			if !ok {
				content = data
				break
			}
			content = next
		}
	}

	if s, ok := content.(string); ok {
		return s
	}
	return encode(content)
}

func encode(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func withParams(rawURL string, params map[string]string) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
