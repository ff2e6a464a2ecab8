package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/staffdesk/api/pkg/errors"
	"github.com/staffdesk/api/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.MustInit("error", "json")
	os.Exit(m.Run())
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(t.TempDir(), 2*1024*1024)
	require.NoError(t, err)
	return s
}

func TestSaveAndOpen(t *testing.T) {
	s := newTestStore(t)

	rel, err := s.Save(7, "avatar.png", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(rel, "profiles/employee_7_"), "got %q", rel)
	require.True(t, strings.HasSuffix(rel, ".png"))
	require.NotContains(t, rel, "\\")

	rc, ct, err := s.Open(rel)
	require.NoError(t, err)
	defer rc.Close()
	require.Equal(t, "image/png", ct)
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save(1, "notes.txt", bytes.NewReader([]byte("hello")))
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	// Nothing may touch storage for a rejected extension.
	entries, readErr := os.ReadDir(filepath.Join(s.root, "profiles"))
	require.NoError(t, readErr)
	require.Empty(t, entries)
}

func TestSaveRejectsCorruptImage(t *testing.T) {
	s := newTestStore(t)

	// Valid PNG signature followed by garbage: sniffs as an image but does
	// not decode as one.
	corrupt := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, []byte("not an image body")...)
	_, err := s.Save(1, "broken.png", bytes.NewReader(corrupt))
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), 16)
	require.NoError(t, err)

	_, err = s.Save(1, "big.png", bytes.NewReader(pngBytes(t)))
	require.True(t, appErr.IsCode(err, appErr.CodeTooLarge))
}

func TestSaveRejectsMismatchedContent(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save(1, "fake.png", bytes.NewReader([]byte("plain text payload")))
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}

func TestOpenMissingFileIsNotFound(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.Open("profiles/employee_1_nope.png")
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestOpenRefusesEscapingPaths(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.Open("../../etc/passwd")
	require.Error(t, err)
	require.False(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestRemoveIsBestEffort(t *testing.T) {
	s := newTestStore(t)

	rel, err := s.Save(3, "avatar.png", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)

	s.Remove(rel)
	_, _, err = s.Open(rel)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	// Removing a missing file must not panic or error.
	s.Remove(rel)
	s.Remove("../outside")
}
