// Package filesystem loads text, markdown and PDF files from a directory and
// can watch it for changes.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/loaders/pdf"
	"github.com/custodia-labs/docprep/internal/logger"
)

// Ensure Loader implements the interfaces.
var (
	_ driven.Loader  = (*Loader)(nil)
	_ driven.Watcher = (*Loader)(nil)
)

// Name identifies the filesystem loader.
const Name = "file"

// supportedExtensions lists the file types turned into documents.
var supportedExtensions = map[string]bool{
	".txt":        true,
	".md":         true,
	".markdown":   true,
	pdf.Extension: true,
}

// errNotDir is returned when the root is not a directory.
var errNotDir = errors.New("not a directory")

// Loader reads supported files under a root directory.
type Loader struct {
	root string
}

// New creates a filesystem loader rooted at root.
func New(root string) (*Loader, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: filesystem loader needs a directory", domain.ErrInvalidInput)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return &Loader{root: abs}, nil
}

// Name returns the loader name.
func (l *Loader) Name() string {
	return Name
}

// Root returns the absolute directory being loaded.
func (l *Loader) Root() string {
	return l.root
}

// Load reads every supported, non-hidden file under the root, in lexical order.
func (l *Loader) Load(ctx context.Context) ([]domain.Document, error) {
	var docs []domain.Document
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path != l.root && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsSupported(path) {
			return nil
		}

		doc, err := ReadDocument(path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrLoaderFailed, l.root, err)
	}
	return docs, nil
}

// Watch emits a fresh document each time a supported file is created or
// written. Both channels are closed when ctx is done.
func (l *Loader) Watch(ctx context.Context) (<-chan domain.Document, <-chan error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := l.addDirs(watcher, l.root); err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("watch %s: %w", l.root, err)
	}

	docs := make(chan domain.Document)
	errs := make(chan error, 1)

	go func() {
		defer close(docs)
		defer close(errs)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !isHidden(info.Name()) {
						if err := l.addDirs(watcher, event.Name); err != nil {
							logger.Warn("Cannot watch %s: %v", event.Name, err)
						}
						continue
					}
				}
				doc := l.handleFsEvent(event)
				if doc == nil {
					continue
				}
				select {
				case docs <- *doc:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				select {
				case errs <- err:
				default:
					logger.Warn("Watcher error: %v", err)
				}
			}
		}
	}()

	return docs, errs, nil
}

// addDirs watches dir and every non-hidden directory below it.
func (l *Loader) addDirs(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

// handleFsEvent converts a create or write event on a supported file into a
// document. Other events, hidden paths and unreadable files yield nil.
func (l *Loader) handleFsEvent(event fsnotify.Event) *domain.Document {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return nil
	}
	rel, err := filepath.Rel(l.root, event.Name)
	if err != nil || isHiddenPath(rel) {
		return nil
	}
	if !IsSupported(event.Name) {
		return nil
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return nil
	}

	doc, err := ReadDocument(event.Name)
	if err != nil {
		logger.Debug("Skipping %s: %v", event.Name, err)
		return nil
	}
	return &doc
}

// ReadDocument reads one file. PDF pages are joined with newlines.
func ReadDocument(path string) (domain.Document, error) {
	var text string
	if strings.EqualFold(filepath.Ext(path), pdf.Extension) {
		pages, err := pdf.ExtractFile(path)
		if err != nil {
			return domain.Document{}, err
		}
		text = strings.Join(pages, "\n")
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.Document{}, err
		}
		text = string(data)
	}

	return domain.NewDocument(text, map[string]any{
		domain.KeySourceType: string(domain.SourceFile),
		domain.KeySourcePath: path,
	}), nil
}

// IsSupported reports whether path has a loadable extension.
func IsSupported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// isHiddenPath reports whether any element of a relative path is hidden.
func isHiddenPath(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if isHidden(part) {
			return true
		}
	}
	return false
}

// Validate checks that the root exists and is a directory.
func (l *Loader) Validate() error {
	info, err := os.Stat(l.root)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, l.root, errNotDir)
	}
	return nil
}
