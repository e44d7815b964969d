package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"go-storefront/internal/models"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// AssetService stores uploaded product images under a fixed public directory.
type AssetService struct {
	dir      string
	maxBytes int64
	log      *zap.Logger
}

func NewAssetService(dir string, maxBytes int64, log *zap.Logger) (*AssetService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &AssetService{dir: dir, maxBytes: maxBytes, log: log}, nil
}

func (s *AssetService) Dir() string { return s.dir }

func (s *AssetService) MaxBytes() int64 { return s.maxBytes }

// Store writes the upload under its sanitized name and returns that name.
// No file, or a name that sanitizes to nothing, yields "" (no image).
// A later upload with the same sanitized name overwrites the earlier one.
func (s *AssetService) Store(file *multipart.FileHeader) (string, error) {
	if file == nil || file.Filename == "" {
		return "", nil
	}
	if file.Size > s.maxBytes {
		return "", models.ErrPayloadTooLarge
	}
	name := SanitizeFilename(file.Filename)
	if name == "" {
		s.log.Warn("upload name sanitized to nothing, ignoring image", zap.String("filename", file.Filename))
		return "", nil
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	// Bounded copy: a multipart header can under-report the size.
	n, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	if n > s.maxBytes {
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", models.ErrPayloadTooLarge
	}

	s.log.Info("image stored", zap.String("name", name), zap.Int64("bytes", n))
	return name, nil
}

// Discard removes a stored image. An empty name is a no-op.
func (s *AssetService) Discard(name string) {
	if name == "" {
		return
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("discard image", zap.String("name", name), zap.Error(err))
	}
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces an uploaded name to a flat ASCII filename.
// Accents are folded away, path separators and whitespace become "_", anything
// outside [A-Za-z0-9_.-] is dropped, and leading or trailing "." and "_" are trimmed.
func SanitizeFilename(name string) string {
	folder := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	ascii, _, err := transform.String(folder, name)
	if err != nil {
		return ""
	}
	ascii = strings.NewReplacer("/", " ", `\`, " ").Replace(ascii)
	ascii = strings.Join(strings.Fields(ascii), "_")
	ascii = unsafeFilenameChars.ReplaceAllString(ascii, "")
	return strings.Trim(ascii, "._")
}
