// Package pdf loads PDF files as one document per page.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	pdfreader "github.com/ledongthuc/pdf"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Name identifies the PDF loader.
const Name = "pdf"

// Extension is the file extension scanned for in directories.
const Extension = ".pdf"

// Config configures a PDF loader.
type Config struct {
	// Paths are individual PDF files. Missing paths are skipped.
	Paths []string

	// Dir, if set, is scanned recursively for *.pdf files after Paths.
	Dir string
}

// Loader reads text from PDF files.
type Loader struct {
	cfg Config
}

// New creates a PDF loader.
func New(cfg Config) (*Loader, error) {
	if len(cfg.Paths) == 0 && cfg.Dir == "" {
		return nil, fmt.Errorf("%w: pdf loader needs paths or a directory", domain.ErrInvalidInput)
	}
	return &Loader{cfg: cfg}, nil
}

// Name returns the loader name.
func (l *Loader) Name() string {
	return Name
}

// Load returns one document per page of every PDF, in path order.
func (l *Loader) Load(ctx context.Context) ([]domain.Document, error) {
	paths := make([]string, 0, len(l.cfg.Paths))
	for _, p := range l.cfg.Paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			logger.Debug("Skipping missing PDF %s", p)
			continue
		}
		paths = append(paths, p)
	}

	if l.cfg.Dir != "" {
		found, err := FindFiles(l.cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("%w: scan %s: %w", domain.ErrLoaderFailed, l.cfg.Dir, err)
		}
		paths = append(paths, found...)
	}

	var docs []domain.Document
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pages, err := ExtractFile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrLoaderFailed, p, err)
		}
		docs = append(docs, PageDocuments(pages, map[string]any{
			domain.KeySourceType: string(domain.SourcePDF),
			domain.KeySourcePath: p,
		})...)
	}
	return docs, nil
}

// PageDocuments turns page texts into documents carrying base metadata plus
// a 1-based page number.
func PageDocuments(pages []string, base map[string]any) []domain.Document {
	docs := make([]domain.Document, 0, len(pages))
	for i, text := range pages {
		doc := domain.NewDocument(text, base)
		doc.Metadata[domain.KeyPage] = i + 1
		docs = append(docs, doc)
	}
	return docs
}

// FindFiles returns every *.pdf under dir in lexical order. Hidden
// directories are not descended into.
func FindFiles(dir string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(p), Extension) {
			found = append(found, p)
		}
		return nil
	})
	return found, err
}

// ExtractFile returns the plain text of each page of the PDF at path.
func ExtractFile(path string) ([]string, error) {
	f, r, err := pdfreader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()
	return extractPages(r), nil
}

// ExtractBytes returns the plain text of each page of an in-memory PDF.
func ExtractBytes(data []byte) ([]string, error) {
	return Extract(bytes.NewReader(data), int64(len(data)))
}

// Extract returns the plain text of each page of the PDF read from r.
// Pages whose text cannot be extracted yield an empty string so page
// numbers stay aligned.
func Extract(r io.ReaderAt, size int64) ([]string, error) {
	reader, err := pdfreader.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return extractPages(reader), nil
}

func extractPages(r *pdfreader.Reader) []string {
	n := r.NumPage()
	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Debug("Page %d: %v", i, err)
			text = ""
		}
		pages = append(pages, text)
	}
	return pages
}

// ObjectDocuments converts object bytes to documents. A .pdf key is split
// into pages; anything else becomes one text document. A PDF that cannot be
// parsed falls back to its raw bytes.
func ObjectDocuments(data []byte, key string, metadata map[string]any) []domain.Document {
	if strings.EqualFold(path.Ext(key), Extension) {
		pages, err := ExtractBytes(data)
		if err == nil {
			return PageDocuments(pages, metadata)
		}
		logger.Debug("Object %s is not a readable PDF: %v", key, err)
	}
	return []domain.Document{domain.NewDocument(string(data), metadata)}
}
