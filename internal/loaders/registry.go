// Package loaders builds configured document loaders by source type.
package loaders

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/loaders/api"
	"github.com/custodia-labs/docprep/internal/loaders/filesystem"
	"github.com/custodia-labs/docprep/internal/loaders/gcs"
	"github.com/custodia-labs/docprep/internal/loaders/html"
	"github.com/custodia-labs/docprep/internal/loaders/pdf"
	"github.com/custodia-labs/docprep/internal/loaders/ratelimit"
	"github.com/custodia-labs/docprep/internal/loaders/s3"
)

// BuilderFunc creates a Loader from generic config.
// Config is a map of loader-specific settings parsed from user config.
type BuilderFunc func(cfg map[string]any) (driven.Loader, error)

// Registry maps source types to their builders.
type Registry struct {
	builders map[domain.SourceType]BuilderFunc
}

// NewRegistry creates an empty loader registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[domain.SourceType]BuilderFunc),
	}
}

// DefaultRegistry returns a registry with every built-in loader registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(domain.SourceAPI, buildAPI)
	r.Register(domain.SourceS3, buildS3)
	r.Register(domain.SourceGCS, buildGCS)
	r.Register(domain.SourceHTML, buildHTML)
	r.Register(domain.SourcePDF, buildPDF)
	r.Register(domain.SourceFile, buildFile)
	return r
}

// Register adds a loader builder. A later registration replaces an earlier one.
func (r *Registry) Register(typ domain.SourceType, builder BuilderFunc) {
	r.builders[typ] = builder
}

// Build creates a loader of the given type with the given config.
func (r *Registry) Build(typ domain.SourceType, cfg map[string]any) (driven.Loader, error) {
	builder, ok := r.builders[typ]
	if !ok {
		return nil, fmt.Errorf("%w: unknown loader: %s", domain.ErrUnsupportedType, typ)
	}
	return builder(cfg)
}

// BuildAll creates one loader per source, stopping at the first failure.
func (r *Registry) BuildAll(sources []domain.SourceConfig) ([]driven.Loader, error) {
	result := make([]driven.Loader, 0, len(sources))
	for i, src := range sources {
		l, err := r.Build(src.Type, src.Options)
		if err != nil {
			return nil, fmt.Errorf("source %d (%s): %w", i, src.Type, err)
		}
		result = append(result, l)
	}
	return result, nil
}

// Has returns true if a loader type is registered.
func (r *Registry) Has(typ domain.SourceType) bool {
	_, ok := r.builders[typ]
	return ok
}

// Names returns all registered source types, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for typ := range r.builders {
		names = append(names, string(typ))
	}
	sort.Strings(names)
	return names
}

func buildAPI(cfg map[string]any) (driven.Loader, error) {
	opts := options(cfg)
	return api.New(api.Config{
		URLs:      opts.strings("urls", "url"),
		Headers:   opts.stringMap("headers"),
		Params:    opts.stringMap("params"),
		JSONPath:  opts.string("json_path"),
		Token:     opts.string("token"),
		RateLimit: rateLimit(opts),
	})
}

func buildS3(cfg map[string]any) (driven.Loader, error) {
	opts := options(cfg)
	return s3.New(s3.Config{
		Bucket: opts.string("bucket"),
		Prefix: opts.string("prefix"),
		Scheme: opts.string("scheme"),
	})
}

func buildGCS(cfg map[string]any) (driven.Loader, error) {
	opts := options(cfg)
	return gcs.New(gcs.Config{
		Bucket:          opts.string("bucket"),
		Prefix:          opts.string("prefix"),
		CredentialsFile: opts.string("credentials_file"),
		Endpoint:        opts.string("endpoint"),
	})
}

func buildHTML(cfg map[string]any) (driven.Loader, error) {
	opts := options(cfg)
	return html.New(html.Config{
		URLs:      opts.strings("urls", "url"),
		Mode:      html.Mode(opts.string("mode")),
		UserAgent: opts.string("user_agent"),
		RateLimit: rateLimit(opts),
	})
}

func buildPDF(cfg map[string]any) (driven.Loader, error) {
	opts := options(cfg)
	return pdf.New(pdf.Config{
		Paths: opts.strings("paths", "path"),
		Dir:   opts.string("dir"),
	})
}

func buildFile(cfg map[string]any) (driven.Loader, error) {
	opts := options(cfg)
	return filesystem.New(opts.string("dir"))
}

func rateLimit(opts options) ratelimit.Config {
	return ratelimit.Config{
		RequestsPerSecond: opts.float("requests_per_second"),
		BurstSize:         opts.int("burst"),
	}
}
