// Package s3 loads every object under an S3 bucket prefix.
//
// Access goes through viant/afs; the s3 scheme is registered by the afsc/s3
// import and uses the standard AWS credential chain.
package s3

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	_ "github.com/viant/afsc/s3"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/loaders/pdf"
	"github.com/custodia-labs/docprep/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Name identifies the S3 loader.
const Name = "s3"

// DefaultScheme is the afs scheme used for buckets.
const DefaultScheme = "s3"

// maxDepth bounds recursion into nested prefixes.
const maxDepth = 32

// Store lists and downloads objects. afs.Service satisfies it.
type Store interface {
	List(ctx context.Context, URL string, options ...storage.Option) ([]storage.Object, error)
	Download(ctx context.Context, object storage.Object, options ...storage.Option) ([]byte, error)
}

// Config configures an S3 loader.
type Config struct {
	// Bucket is the bucket name.
	Bucket string

	// Prefix restricts loading to keys under it.
	Prefix string

	// Scheme overrides the afs scheme, e.g. "mem" in tests.
	Scheme string

	// Store overrides the afs service.
	Store Store
}

// Loader downloads objects as documents. PDF objects yield one document per page.
type Loader struct {
	bucket   string
	location string
	store    Store
}

// New creates an S3 loader.
func New(cfg Config) (*Loader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: s3 loader needs a bucket", domain.ErrInvalidInput)
	}
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}
	store := cfg.Store
	if store == nil {
		store = afs.New()
	}
	return &Loader{
		bucket:   cfg.Bucket,
		location: url.Join(fmt.Sprintf("%s://%s", scheme, cfg.Bucket), strings.TrimPrefix(cfg.Prefix, "/")),
		store:    store,
	}, nil
}

// Name returns the loader name.
func (l *Loader) Name() string {
	return Name
}

// Location returns the URL being listed.
func (l *Loader) Location() string {
	return l.location
}

// Load walks the prefix recursively and downloads every object.
func (l *Loader) Load(ctx context.Context) ([]domain.Document, error) {
	docs, err := l.walk(ctx, l.location, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrLoaderFailed, l.location, err)
	}
	return docs, nil
}

func (l *Loader) walk(ctx context.Context, location string, depth int) ([]domain.Document, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("prefix nesting deeper than %d", maxDepth)
	}

	objects, err := l.store.List(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	var docs []domain.Document
	for _, object := range objects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if object.IsDir() {
			if url.Equals(object.URL(), location) {
				continue
			}
			sub, err := l.walk(ctx, object.URL(), depth+1)
			if err != nil {
				return nil, err
			}
			docs = append(docs, sub...)
			continue
		}

		data, err := l.store.Download(ctx, object)
		if err != nil {
			return nil, fmt.Errorf("download %s: %w", object.URL(), err)
		}

		key := strings.TrimPrefix(url.Path(object.URL()), "/")
		logger.Debug("Downloaded s3 object %s (%d bytes)", key, len(data))
		docs = append(docs, pdf.ObjectDocuments(data, key, map[string]any{
			domain.KeySourceType: string(domain.SourceS3),
			domain.KeyBucket:     l.bucket,
			domain.KeyObjectKey:  key,
		})...)
	}
	return docs, nil
}
