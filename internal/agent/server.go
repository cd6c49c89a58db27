package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// InvokeRequest is the payload accepted by the entrypoint
type InvokeRequest struct {
	Prompt string `json:"prompt"`
}

// InvokeResponse is the payload returned by the entrypoint
type InvokeResponse struct {
	Response string `json:"response"`
}

// Server exposes the agent runtime over HTTP
type Server struct {
	runtime    *Runtime
	logger     *zap.Logger
	listenAddr string
	httpServer *http.Server
}

// NewServer creates a new agent HTTP server
func NewServer(runtime *Runtime, logger *zap.Logger, listenAddr string) *Server {
	return &Server{
		runtime:    runtime,
		logger:     logger,
		listenAddr: listenAddr,
	}
}

// Start starts serving invocations
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/invocations", s.handleInvoke)
	mux.HandleFunc("/ping", s.handlePing)

	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	s.logger.Info("Agent runtime starting", zap.String("address", s.listenAddr))

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop shuts the server down gracefully
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// handleInvoke handles POST /invocations
func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req InvokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Prompt == "" {
		req.Prompt = "Hello!"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 90*time.Second)
	defer cancel()

	start := time.Now()
	response, err := s.runtime.Invoke(ctx, req.Prompt)
	if err != nil {
		s.logger.Error("Invocation failed", zap.Error(err))
		http.Error(w, "invocation failed", http.StatusBadGateway)
		return
	}

	s.logger.Info("Invocation completed",
		zap.Duration("duration", time.Since(start)))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(InvokeResponse{Response: response}); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// handlePing handles GET /ping health checks
func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"Healthy"}`))
}
