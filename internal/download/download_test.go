package download

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectory_DownloadFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out")
	d := NewDirectory(root)

	res, err := d.DownloadFile(context.Background(), "offer_20240701.pdf", []byte("%PDF"), "application/pdf")
	require.NoError(t, err)
	assert.True(t, res.Succeeded)
	assert.Equal(t, filepath.Join(root, "offer_20240701.pdf"), res.Location)

	content, err := os.ReadFile(res.Location)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(content))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestDirectory_ArtifactIsWorldReadable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	d := NewDirectory(t.TempDir())

	res, err := d.DownloadFile(context.Background(), "offer_20240701.html", []byte("<html></html>"), "text/html")
	require.NoError(t, err)

	info, err := os.Stat(res.Location)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestDirectory_RejectsPaths(t *testing.T) {
	d := NewDirectory(t.TempDir())
	for _, name := range []string{"", "..", "../escape.pdf", "nested/file.pdf"} {
		_, err := d.DownloadFile(context.Background(), name, []byte("x"), "text/plain")
		assert.Error(t, err, name)
	}
}

func TestDirectory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDirectory(t.TempDir()).DownloadFile(ctx, "a.pdf", nil, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResponse_DownloadFile(t *testing.T) {
	rec := httptest.NewRecorder()
	r := NewResponse(rec)

	res, err := r.DownloadFile(context.Background(), "offer.html", []byte("<html></html>"), "text/html; charset=utf-8")
	require.NoError(t, err)
	assert.True(t, res.Succeeded)
	assert.True(t, r.Written())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="offer.html"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "13", rec.Header().Get("Content-Length"))
	assert.Equal(t, "<html></html>", rec.Body.String())

	_, err = r.DownloadFile(context.Background(), "again.html", nil, "text/html")
	assert.Error(t, err)
}

type fakeArtifacts struct {
	id  uuid.UUID
	err error
	got string
}

func (f *fakeArtifacts) SaveArtifact(_ context.Context, _ uuid.UUID, filename string, _ []byte, _ string) (uuid.UUID, error) {
	f.got = filename
	return f.id, f.err
}

func TestStore_DownloadFile(t *testing.T) {
	artifacts := &fakeArtifacts{id: uuid.New()}
	s := NewStore(artifacts, uuid.New())

	res, err := s.DownloadFile(context.Background(), "offer.pdf", []byte("x"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "artifact:"+artifacts.id.String(), res.Location)
	assert.Equal(t, "offer.pdf", artifacts.got)

	artifacts.err = errors.New("disk full")
	_, err = s.DownloadFile(context.Background(), "offer.pdf", nil, "")
	assert.ErrorIs(t, err, artifacts.err)
}
