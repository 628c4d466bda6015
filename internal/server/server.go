package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nguyentantai21042004/content-optimizer/internal/config"
	"github.com/nguyentantai21042004/content-optimizer/internal/logger"
	"github.com/nguyentantai21042004/content-optimizer/internal/pipeline"
)

// Server is the HTTP trigger surface: one blocking endpoint that runs the
// whole pipeline, plus output-file downloads for the UI.
type Server struct {
	cfg    *config.Config
	pipe   pipeline.Pipeline
	logger logger.Logger
}

// New creates a new Server instance
func New(cfg *config.Config, pipe pipeline.Pipeline, log logger.Logger) *Server {
	return &Server{
		cfg:    cfg,
		pipe:   pipe,
		logger: log,
	}
}

type processRequest struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/process", s.handleProcess)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/outputs/", http.StripPrefix("/outputs/", http.FileServer(http.Dir(s.cfg.Paths.Outputs))))
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler: s.Handler(),
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	s.logger.Info(ctx, "HTTP server listening on %s", srv.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

// handleProcess runs the full pipeline synchronously and blocks until
// completion or the first stage failure.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)
	if r.Method == http.MethodOptions {
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "invalid request method", "")
		return
	}

	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "missing video URL", string(pipeline.StageValidation))
		return
	}

	result, err := s.pipe.Run(r.Context(), req.URL)
	if err != nil {
		var stageErr *pipeline.StageError
		status := http.StatusBadGateway
		stage := ""
		if errors.As(err, &stageErr) {
			stage = string(stageErr.Stage)
			if stageErr.Stage == pipeline.StageValidation {
				status = http.StatusBadRequest
			}
		}
		s.logger.Error(r.Context(), "Pipeline run failed: %v", err)
		writeError(w, status, err.Error(), stage)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Error(r.Context(), "Failed to encode response: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Enable CORS for browser requests
func enableCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeError(w http.ResponseWriter, status int, msg, stage string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg, Stage: stage})
}
