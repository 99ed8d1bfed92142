package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("file not found")

// Store keeps flat, named blobs. Uploaded files and generated files each get
// their own Store.
type Store interface {
	Put(ctx context.Context, name string, r io.Reader) error
	Get(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

// Pruner is implemented by stores that can drop old entries.
type Pruner interface {
	Prune(ctx context.Context, maxAge time.Duration) (int, error)
}

// ValidName rejects anything that could escape a flat namespace.
func ValidName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return errors.Errorf("invalid file name %q", name)
	case strings.ContainsAny(name, `/\`), strings.ContainsRune(name, 0):
		return errors.Errorf("invalid file name %q", name)
	}
	return nil
}

// CleanName reduces a client supplied file name to something ValidName
// accepts.
func CleanName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	base = strings.ReplaceAll(base, "\x00", "")
	if ValidName(base) != nil {
		return "upload.mid"
	}
	return base
}

// Stage stores r under a unique name, hands the stored copy to fn and
// always deletes it again, whatever fn returns.
func Stage(ctx context.Context, s Store, name string, r io.Reader, fn func(io.Reader) error) (err error) {
	key := uuid.New().String() + "-" + CleanName(name)
	if err := s.Put(ctx, key, r); err != nil {
		return errors.Wrap(err, "staging upload")
	}
	defer func() {
		// the request context may already be gone
		if derr := s.Delete(context.Background(), key); derr != nil && err == nil {
			err = errors.Wrap(derr, "releasing upload")
		}
	}()

	rc, err := s.Get(ctx, key)
	if err != nil {
		return errors.Wrap(err, "opening staged upload")
	}
	defer rc.Close()
	return fn(rc)
}
