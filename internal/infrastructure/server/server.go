package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// Server exposes the generated dataset document and the static dashboard
// assets over HTTP. The dashboard fetches the dataset JSON relative to its
// own origin, so the document is served under its output filename as if it
// sat next to the assets.
type Server struct {
	datasetPath string
	assetsDir   string
	logger      *slog.Logger
}

// New builds a server for the dataset at datasetPath; assetsDir may be empty
// when only the dataset should be exposed.
func New(datasetPath, assetsDir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{datasetPath: datasetPath, assetsDir: assetsDir, logger: logger}
}

// Handler routes the dataset document and, when configured, the dashboard
// assets at the root.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/"+filepath.Base(s.datasetPath), s.serveDataset)

	if s.assetsDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.assetsDir)))
	} else {
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/" {
				http.NotFound(w, r)
				return
			}
			fmt.Fprintf(w, "dataset available at /%s\n", filepath.Base(s.datasetPath))
		})
	}
	return mux
}

// serveDataset reads the document on every request so a rerun of the
// extraction shows up without restarting the server.
func (s *Server) serveDataset(w http.ResponseWriter, _ *http.Request) {
	payload, err := os.ReadFile(s.datasetPath)
	if err != nil {
		s.logger.Warn("dataset not readable", "path", s.datasetPath, "error", err)
		http.Error(w, "dataset not generated yet; run an extraction first", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(payload)
}

// ListenAndServe blocks serving on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve dashboard on %s: %w", addr, err)
	}
	return nil
}
