// Package upload stores item and container photos on local disk and
// hands out the URL paths under which they are served back.
package upload

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// MaxFileSize is the largest accepted photo upload (10 MiB).
const MaxFileSize = 10 << 20

// itemsSubdir is where item photos live below the upload root.
const itemsSubdir = "items"

// allowedTypes lists the accepted image MIME types.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// ErrFileTooLarge is returned for uploads over MaxFileSize.
var ErrFileTooLarge = errors.New("image exceeds the 10 MiB size limit")

// ErrUnsupportedType is returned for uploads that are not JPEG or PNG.
var ErrUnsupportedType = errors.New("only JPG and PNG images are allowed")

// Store saves photos under a root directory and serves them at /uploads.
type Store struct {
	Dir string // upload root, e.g. "uploads"
}

// NewStore creates the upload directory tree and returns a Store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, itemsSubdir), 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// SaveItemPhoto validates and persists an uploaded image, returning the
// URL path the file is served under (e.g. "/uploads/items/item-....jpg").
// A rejected upload fails the whole enclosing request.
func (s *Store) SaveItemPhoto(fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}
	ctype := strings.ToLower(strings.TrimSpace(fh.Header.Get("Content-Type")))
	if i := strings.Index(ctype, ";"); i >= 0 {
		ctype = strings.TrimSpace(ctype[:i])
	}
	if !allowedTypes[ctype] {
		return "", ErrUnsupportedType
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("item-%d-%d%s",
		time.Now().UnixMilli(), rand.Int63n(1_000_000_000), strings.ToLower(filepath.Ext(fh.Filename)))
	dstPath := filepath.Join(s.Dir, itemsSubdir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("creating photo file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, MaxFileSize+1)); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("writing photo file: %w", err)
	}

	return path.Join("/uploads", itemsSubdir, name), nil
}

// Remove deletes the file behind a photo URL path. Cleanup is
// best-effort: failures are logged and never propagated, so a stale
// file can not block a record mutation.
func (s *Store) Remove(photoURL string) {
	if photoURL == "" {
		return
	}
	rel, ok := strings.CutPrefix(photoURL, "/uploads/")
	if !ok {
		log.Printf("upload: refusing to remove file outside /uploads: %q", photoURL)
		return
	}
	rel = path.Clean(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		log.Printf("upload: refusing to remove file outside /uploads: %q", photoURL)
		return
	}
	target := filepath.Join(s.Dir, filepath.FromSlash(rel))
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("upload: failed to remove photo %s: %v", target, err)
	}
}
