package storage

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// safeFilenamePattern matches the generated image names and nothing else,
// which rules out path traversal by construction.
var safeFilenamePattern = regexp.MustCompile(`^product-\d+-\d+\.(?i:jpeg|jpg|png|webp)$`)

// contentTypes maps allowed upload MIME types to file extensions.
var contentTypes = map[string]string{
	"image/jpeg": "jpeg",
	"image/png":  "png",
	"image/webp": "webp",
}

// MaxImageBytes caps product image uploads.
const MaxImageBytes = 2 * 1024 * 1024

// ImageStore persists product images on an afero filesystem, so tests can
// run against an in-memory backend and deployments against a mounted disk.
type ImageStore struct {
	fs  afero.Fs
	dir string
}

// NewImageStore roots the store at dir, creating it if needed.
func NewImageStore(fs afero.Fs, dir string) (*ImageStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ImageStore{fs: fs, dir: dir}, nil
}

// AllowedContentType reports whether the upload MIME type is accepted.
func AllowedContentType(contentType string) bool {
	_, ok := contentTypes[contentType]
	return ok
}

// Filename builds the canonical image name for a product.
func Filename(productID int64, contentType string) string {
	ext := contentTypes[contentType]
	return fmt.Sprintf("product-%d-%d.%s", productID, time.Now().UnixMilli(), ext)
}

// ValidFilename reports whether name matches the canonical pattern.
func ValidFilename(name string) bool {
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return false
	}
	return safeFilenamePattern.MatchString(name)
}

// ContentTypeFor maps a stored filename back to its MIME type.
func ContentTypeFor(name string) string {
	ext := strings.ToLower(name[strings.LastIndex(name, ".")+1:])
	for contentType, mapped := range contentTypes {
		if mapped == ext || (ext == "jpg" && mapped == "jpeg") {
			return contentType
		}
	}
	return "image/jpeg"
}

// Save writes the image under its filename.
func (s *ImageStore) Save(name string, r io.Reader) error {
	file, err := s.fs.Create(s.path(name))
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(file, r)
	return err
}

// Open returns the stored image for reading.
func (s *ImageStore) Open(name string) (afero.File, error) {
	return s.fs.Open(s.path(name))
}

// Delete removes a stored image; missing files are not an error.
func (s *ImageStore) Delete(name string) error {
	err := s.fs.Remove(s.path(name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *ImageStore) path(name string) string {
	return s.dir + "/" + name
}
