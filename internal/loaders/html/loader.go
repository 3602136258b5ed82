// Package html loads web pages as documents, either as stripped text or as
// visible content blocks.
package html

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/loaders/ratelimit"
	"github.com/custodia-labs/docprep/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Name identifies the HTML loader.
const Name = "html"

// DefaultTimeout bounds a single request.
const DefaultTimeout = 30 * time.Second

const maxBodySize = 16 << 20

// Mode selects how markup is turned into text.
type Mode string

const (
	// ModeSimple strips every tag and keeps all remaining text.
	ModeSimple Mode = "simple"

	// ModeStructured keeps visible content blocks, one per line, and drops
	// navigation, headers, footers and hidden elements.
	ModeStructured Mode = "structured"
)

// IsValid returns true if the mode is recognised.
func (m Mode) IsValid() bool {
	return m == ModeSimple || m == ModeStructured
}

// Config configures an HTML loader.
type Config struct {
	// URLs are fetched in order, one document each.
	URLs []string

	// Mode defaults to ModeSimple.
	Mode Mode

	// UserAgent, if set, replaces Go's default.
	UserAgent string

	// RateLimit throttles requests. Zero values use ratelimit.DefaultConfig.
	RateLimit ratelimit.Config

	// HTTPClient overrides the default client.
	HTTPClient *http.Client
}

// Loader fetches pages and extracts their text.
type Loader struct {
	cfg     Config
	client  *http.Client
	limiter *ratelimit.Limiter
	policy  *bluemonday.Policy
}

// New creates an HTML loader.
func New(cfg Config) (*Loader, error) {
	if len(cfg.URLs) == 0 {
		return nil, fmt.Errorf("%w: html loader needs at least one url", domain.ErrInvalidInput)
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeSimple
	}
	if !cfg.Mode.IsValid() {
		return nil, fmt.Errorf("%w: html mode %q", domain.ErrInvalidInput, cfg.Mode)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	return &Loader{
		cfg:     cfg,
		client:  client,
		limiter: ratelimit.New(cfg.RateLimit),
		policy:  bluemonday.StrictPolicy(),
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
		body, err := l.fetch(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrLoaderFailed, u, err)
		}

		doc, err := l.toDocument(body, u)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrLoaderFailed, u, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (l *Loader) fetch(ctx context.Context, u string) ([]byte, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, err
	}
	if l.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", l.cfg.UserAgent)
	}

	logger.Debug("GET %s", u)
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	l.limiter.Observe(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}

func (l *Loader) toDocument(body []byte, u string) (domain.Document, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return domain.Document{}, fmt.Errorf("parse html: %w", err)
	}

	var text string
	switch l.cfg.Mode {
	case ModeStructured:
		text = StructuredText(root)
	default:
		text = l.StripTags(body)
	}

	meta := map[string]any{
		domain.KeySourceType: string(domain.SourceHTML),
		domain.KeyURL:        u,
	}
	if title := FindTitle(root); title != "" {
		meta[domain.KeyTitle] = title
	}
	return domain.NewDocument(text, meta), nil
}

// StripTags removes all markup, including script and style content, and
// decodes entities.
func (l *Loader) StripTags(body []byte) string {
	return html.UnescapeString(l.policy.Sanitize(string(body)))
}
