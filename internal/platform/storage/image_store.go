// Package storage persists uploaded listing images on local disk.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultDir is the user-images directory used when none is configured.
const DefaultDir = "user_images"

// ImageStore writes uploaded images under a fixed root directory.
//
// ファイル名はサーバー側でUUIDに決定するため、同名アップロードによる
// 上書きは起こりません。DB書き込みとの整合はトランザクション保証されず、
// 途中でクラッシュすると孤立ファイルが残り得ます（既知の制限）。
type ImageStore struct {
	root string
}

// NewImageStore creates an ImageStore rooted at dir, creating the
// directory if needed.
func NewImageStore(dir string) (*ImageStore, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &ImageStore{root: dir}, nil
}

// Save writes the image data to a server-chosen unique file and returns
// the relative path to record on the listing. Only the extension of the
// client-supplied filename is kept.
func (s *ImageStore) Save(filename string, r io.Reader) (string, error) {
	name := uuid.NewString() + sanitizeExt(filename)

	f, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return filepath.ToSlash(filepath.Join(filepath.Base(s.root), name)), nil
}

// sanitizeExt returns a safe lowercase extension from the client filename.
// Anything suspicious collapses to the empty extension.
func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return ext
	default:
		return ""
	}
}
