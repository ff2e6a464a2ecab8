// Package storage keeps employee profile pictures on the local filesystem
// under a configured root, scoped to a profiles/ subdirectory. The employee
// row only ever holds the relative path returned from Save.
package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	appErr "github.com/staffdesk/api/pkg/errors"
	"github.com/staffdesk/api/pkg/logger"
	"go.uber.org/zap"
)

const profilesDir = "profiles"

var contentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// LocalStore persists uploads below root. Writes to the same employee are not
// coordinated: concurrent uploads are last-write-wins.
type LocalStore struct {
	root     string
	maxBytes int64
}

// NewLocalStore prepares the upload root and its profiles/ subdirectory.
func NewLocalStore(root string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(root, profilesDir), 0o755); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "create upload dir failed")
	}
	return &LocalStore{root: root, maxBytes: maxBytes}, nil
}

// Save validates the upload and writes it under profiles/, returning the
// forward-slash relative path to store on the employee row.
func (s *LocalStore) Save(employeeID uint, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := contentTypes[ext]; !ok {
		return "", appErr.New(appErr.CodeInvalid, "Invalid file type. Allowed types: png, jpg, jpeg, gif, webp")
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "read upload failed")
	}
	if int64(len(data)) > s.maxBytes {
		return "", appErr.New(appErr.CodeTooLarge, fmt.Sprintf("File exceeds the %d byte limit", s.maxBytes))
	}
	if len(data) == 0 {
		return "", appErr.New(appErr.CodeInvalid, "Empty file")
	}

	if !strings.HasPrefix(mimetype.Detect(data).String(), "image/") {
		return "", appErr.New(appErr.CodeInvalid, "File content is not an image")
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", appErr.New(appErr.CodeInvalid, "File content is not a valid image")
	}

	name := fmt.Sprintf("employee_%d_%s_%s%s",
		employeeID,
		time.Now().UTC().Format("20060102_150405"),
		uuid.NewString()[:8],
		ext,
	)
	if err := os.WriteFile(filepath.Join(s.root, profilesDir, name), data, 0o644); err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "write upload failed")
	}
	return path.Join(profilesDir, name), nil
}

// Remove deletes a stored file. Failures are logged, never fatal: a stale file
// on disk must not fail the request that replaced it.
func (s *LocalStore) Remove(relpath string) {
	full, err := s.resolve(relpath)
	if err != nil {
		logger.L().Warn("refusing to remove upload", zap.String("path", relpath), zap.Error(err))
		return
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		logger.L().Warn("remove old upload failed", zap.String("path", relpath), zap.Error(err))
	}
}

// Open streams a stored file and reports a content type inferred from its
// extension. A missing file is a not-found, not a server error.
func (s *LocalStore) Open(relpath string) (io.ReadCloser, string, error) {
	full, err := s.resolve(relpath)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", appErr.New(appErr.CodeNotFound, "Profile picture file not found")
		}
		return nil, "", appErr.Wrap(err, appErr.CodeInternal, "open upload failed")
	}
	ct, ok := contentTypes[strings.ToLower(filepath.Ext(full))]
	if !ok {
		ct = "application/octet-stream"
	}
	return f, ct, nil
}

// resolve maps a stored relative path onto the root, refusing anything that
// could escape it.
func (s *LocalStore) resolve(relpath string) (string, error) {
	if relpath == "" || path.IsAbs(relpath) || strings.Contains(relpath, "..") {
		return "", appErr.New(appErr.CodeInvalid, "invalid attachment path")
	}
	return filepath.Join(s.root, filepath.FromSlash(path.Clean(relpath))), nil
}
