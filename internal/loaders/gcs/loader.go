// Package gcs loads every object under a Google Cloud Storage prefix.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/loaders/pdf"
	"github.com/custodia-labs/docprep/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Name identifies the GCS loader.
const Name = "gcs"

// Bucket lists and reads objects of one bucket.
type Bucket interface {
	// ObjectNames returns the names of all objects with prefix.
	ObjectNames(ctx context.Context, prefix string) ([]string, error)

	// Read returns an object's content.
	Read(ctx context.Context, name string) ([]byte, error)

	// Close releases the underlying client.
	Close() error
}

// Config configures a GCS loader.
type Config struct {
	// Bucket is the bucket name.
	Bucket string

	// Prefix restricts loading to object names under it.
	Prefix string

	// CredentialsFile is a service account JSON key. Empty uses application
	// default credentials.
	CredentialsFile string

	// Endpoint overrides the API endpoint, e.g. for an emulator.
	Endpoint string

	// Open overrides how the bucket is opened.
	Open func(ctx context.Context) (Bucket, error)
}

// Loader downloads objects as documents. PDF objects yield one document per page.
type Loader struct {
	cfg  Config
	open func(ctx context.Context) (Bucket, error)
}

// New creates a GCS loader. No connection is made until Load.
func New(cfg Config) (*Loader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: gcs loader needs a bucket", domain.ErrInvalidInput)
	}
	l := &Loader{cfg: cfg, open: cfg.Open}
	if l.open == nil {
		l.open = l.openClient
	}
	return l, nil
}

// Name returns the loader name.
func (l *Loader) Name() string {
	return Name
}

// Load lists the prefix and downloads every object in name order.
// Folder placeholder objects (names ending in "/") are skipped.
func (l *Loader) Load(ctx context.Context) ([]domain.Document, error) {
	bucket, err := l.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: open gcs bucket %s: %w", domain.ErrLoaderFailed, l.cfg.Bucket, err)
	}
	defer bucket.Close()

	names, err := bucket.ObjectNames(ctx, l.cfg.Prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: list gs://%s/%s: %w", domain.ErrLoaderFailed, l.cfg.Bucket, l.cfg.Prefix, err)
	}
	sort.Strings(names)

	var docs []domain.Document
	for _, name := range names {
		if strings.HasSuffix(name, "/") {
			continue
		}
		data, err := bucket.Read(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("%w: read gs://%s/%s: %w", domain.ErrLoaderFailed, l.cfg.Bucket, name, err)
		}
		logger.Debug("Downloaded gcs object %s (%d bytes)", name, len(data))
		docs = append(docs, pdf.ObjectDocuments(data, name, map[string]any{
			domain.KeySourceType: string(domain.SourceGCS),
			domain.KeyBucket:     l.cfg.Bucket,
			domain.KeyObjectKey:  name,
		})...)
	}
	return docs, nil
}

func (l *Loader) openClient(ctx context.Context) (Bucket, error) {
	var opts []option.ClientOption
	if l.cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(l.cfg.CredentialsFile))
	}
	if l.cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(l.cfg.Endpoint), option.WithoutAuthentication())
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &clientBucket{client: client, handle: client.Bucket(l.cfg.Bucket)}, nil
}

// clientBucket adapts a storage.Client to Bucket.
type clientBucket struct {
	client *storage.Client
	handle *storage.BucketHandle
}

func (b *clientBucket) ObjectNames(ctx context.Context, prefix string) ([]string, error) {
	it := b.handle.Objects(ctx, &storage.Query{Prefix: prefix})

	var names []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}

func (b *clientBucket) Read(ctx context.Context, name string) ([]byte, error) {
	r, err := b.handle.Object(name).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (b *clientBucket) Close() error {
	return b.client.Close()
}
