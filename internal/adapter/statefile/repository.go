// Package statefile persists the mood document as a single JSON file.
// Writes are atomic (temp file + rename) and guarded by a lock file plus an
// optimistic version check, so concurrent invocations cannot silently
// clobber each other.
package statefile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Ba4bes/moodpoodle/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
)

const (
	lockSuffix = ".lock"
	tmpSuffix  = ".tmp"

	// A lock older than this belongs to a crashed invocation and is taken over.
	staleLockAge = 30 * time.Second

	filePerm = os.FileMode(0644)
)

type Repository struct {
	fs    afero.Fs
	path  string
	clock clockwork.Clock
}

func New(fs afero.Fs, path string, clock clockwork.Clock) *Repository {
	return &Repository{fs: fs, path: path, clock: clock}
}

// Load reads and parses the document. A missing file is ErrStateMissing:
// seeding is the operator's job, never an implicit side effect of a read.
func (r *Repository) Load(_ context.Context) (*domain.Document, error) {
	doc, err := r.read()
	if err != nil {
		return nil, err
	}
	if doc.RateLimits == nil {
		doc.RateLimits = make(domain.RateLimitTable)
	}
	return doc, nil
}

// Save commits the whole document. It fails with ErrConflict when the
// on-disk version differs from the version the document was loaded at;
// on success the stored version is doc.Version+1.
func (r *Repository) Save(ctx context.Context, doc *domain.Document) error {
	unlock, err := r.acquireLock()
	if err != nil {
		return err
	}
	defer unlock()

	current, err := r.read()
	if err != nil {
		return err
	}
	if current.Version != doc.Version {
		return fmt.Errorf("version %d on disk, loaded %d: %w", current.Version, doc.Version, domain.ErrConflict)
	}

	doc.Version++
	return r.write(doc)
}

// Init seeds the document. Fails with ErrStateExists when one is present.
func (r *Repository) Init(_ context.Context, doc *domain.Document) error {
	if _, err := r.fs.Stat(r.path); err == nil {
		return domain.ErrStateExists
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat state file: %w", err)
	}
	return r.write(doc)
}

func (r *Repository) read() (*domain.Document, error) {
	data, err := afero.ReadFile(r.fs, r.path)
	if os.IsNotExist(err) {
		return nil, domain.ErrStateMissing
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	return &doc, nil
}

func (r *Repository) write(doc *domain.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(r.path); dir != "." {
		if err := r.fs.MkdirAll(dir, os.FileMode(0755)); err != nil {
			return fmt.Errorf("create state directory: %w", err)
		}
	}

	tmpPath := r.path + tmpSuffix
	if err := afero.WriteFile(r.fs, tmpPath, data, filePerm); err != nil {
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := r.fs.Rename(tmpPath, r.path); err != nil {
		_ = r.fs.Remove(tmpPath)
		return fmt.Errorf("rename temp state file: %w", err)
	}
	return nil
}

// acquireLock creates the lock file exclusively, taking over locks left by
// crashed invocations.
func (r *Repository) acquireLock() (func(), error) {
	lockPath := r.path + lockSuffix

	for {
		f, err := r.fs.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, filePerm)
		if err == nil {
			_ = f.Close()
			return func() { _ = r.fs.Remove(lockPath) }, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("create lock file: %w", err)
		}

		info, statErr := r.fs.Stat(lockPath)
		if statErr != nil {
			if os.IsNotExist(statErr) {
				continue // released between attempts
			}
			return nil, fmt.Errorf("stat lock file: %w", statErr)
		}
		if r.clock.Now().Sub(info.ModTime()) < staleLockAge {
			return nil, fmt.Errorf("state file locked by another invocation: %w", domain.ErrConflict)
		}
		if err := r.fs.Remove(lockPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("remove stale lock file: %w", err)
		}
	}
}
