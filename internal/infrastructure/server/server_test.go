package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeDataset(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "visa_bulletins.all.json")
	require.NoError(t, os.WriteFile(datasetPath, []byte(`{"dataset":{},"bulletins":[]}`), 0o644))

	ts := httptest.NewServer(New(datasetPath, "", nil).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/visa_bulletins.all.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dataset":{},"bulletins":[]}`, string(body))
}

func TestServeDatasetNotGenerated(t *testing.T) {
	t.Parallel()

	datasetPath := filepath.Join(t.TempDir(), "visa_bulletins.all.json")

	ts := httptest.NewServer(New(datasetPath, "", nil).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/visa_bulletins.all.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeDashboardAssets(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "visa_bulletins.all.json")

	assetsDir := filepath.Join(dir, "dashboard")
	require.NoError(t, os.Mkdir(assetsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(assetsDir, "index.html"), []byte("<html>dashboard</html>"), 0o644))

	ts := httptest.NewServer(New(datasetPath, assetsDir, nil).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "<html>dashboard</html>", string(body))
}
