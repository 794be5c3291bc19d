// Package server exposes the generated artifacts over HTTP so routing engines
// can pull rule-sets straight from this tool: the sing-box JSON artifacts, the
// raw rule-list mirrors, and a JSON index of what is available.
package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/TimurManjosov/rulebridge/internal/artifact"
	"github.com/TimurManjosov/rulebridge/internal/telemetry"
)

// Server serves the raw rule-list mirror and the sing-box artifact directory.
type Server struct {
	rawDir string
	outDir string
	log    zerolog.Logger
}

// New creates a Server over the two artifact directories.
func New(rawDir, outDir string, log zerolog.Logger) *Server {
	return &Server{
		rawDir: rawDir,
		outDir: outDir,
		log:    log.With().Str("component", "server").Logger(),
	}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(telemetry.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/", s.handleIndex)
	r.Get("/sing-box/{name}", s.handleArtifact(s.outDir, "application/json"))
	r.Get("/rule-set/{name}", s.handleArtifact(s.rawDir, "text/plain; charset=utf-8"))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// handleIndex lists the rule-sets currently available for download.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	entries, err := os.ReadDir(s.outDir)
	if err != nil && !os.IsNotExist(err) {
		s.log.Error().Err(err).Msg("failed to read artifact directory")
		http.Error(w, "failed to read artifact directory", http.StatusInternalServerError)
		return
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
		}
	}
	sort.Strings(names)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]string{"rulesets": names})
}

// handleArtifact serves one file from dir with ETag revalidation. Artifacts
// are small enough to read whole; the checksum doubles as the ETag.
func (s *Server) handleArtifact(dir, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
			http.NotFound(w, req)
			return
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if os.IsNotExist(err) {
				http.NotFound(w, req)
				return
			}
			s.log.Error().Err(err).Str("name", name).Msg("failed to read artifact")
			http.Error(w, "failed to read artifact", http.StatusInternalServerError)
			return
		}

		etag := `"` + artifact.Checksum(data) + `"`
		if inm := req.Header.Get("If-None-Match"); inm != "" && inm == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("ETag", etag)
		_, _ = w.Write(data)
	}
}
