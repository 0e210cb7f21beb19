// Package server exposes the connect and mint actions over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ClipFinance/xchain-mint/app"
	commonerrors "github.com/ClipFinance/xchain-mint/common/errors"
	"github.com/ClipFinance/xchain-mint/journal/models"
	"github.com/sirupsen/logrus"
)

// Actions is the part of app.App the server drives.
type Actions interface {
	State() app.State
	Connect(ctx context.Context) (app.State, error)
	Mint(ctx context.Context) (app.State, error)
	Attempts(ctx context.Context) ([]models.Attempt, error)
}

type Server struct {
	actions    Actions
	metrics    *metricsRegistry
	httpServer *http.Server
	logger     *logrus.Logger
}

// NewServer creates the HTTP server listening on addr.
func NewServer(addr string, actions Actions, logger *logrus.Logger) *Server {
	s := &Server{
		actions: actions,
		metrics: newMetricsRegistry(),
		logger:  logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/state", s.handleState)
	mux.HandleFunc("POST /api/v1/connect", s.handleConnect)
	mux.HandleFunc("POST /api/v1/mint", s.handleMint)
	mux.HandleFunc("GET /api/v1/attempts", s.handleAttempts)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.handler())

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 15 * time.Second,
	}
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("API listening")
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type actionResponse struct {
	State app.State `json:"state"`
	Error string    `json:"error,omitempty"`
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, actionResponse{State: s.actions.State()})
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	s.runAction(w, r, "connect", s.actions.Connect)
}

func (s *Server) handleMint(w http.ResponseWriter, r *http.Request) {
	s.runAction(w, r, "mint", s.actions.Mint)
}

// runAction detaches the action from the request so a client disconnect does not
// abort a mint that may already be signed. The app timeout still bounds it.
func (s *Server) runAction(w http.ResponseWriter, r *http.Request, name string, action func(context.Context) (app.State, error)) {
	started := time.Now()
	state, err := action(context.WithoutCancel(r.Context()))

	status, result := statusFor(err)
	s.metrics.observe(name, result, started)

	resp := actionResponse{State: state}
	if err != nil {
		resp.Error = state.Error
		if result == "busy" {
			resp.Error = "action already in progress"
		}
	}
	writeJSON(w, status, resp)
}

type attemptsResponse struct {
	Attempts []models.Attempt `json:"attempts"`
	Error    string           `json:"error,omitempty"`
}

func (s *Server) handleAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := s.actions.Attempts(r.Context())
	if err != nil {
		status, _ := statusFor(err)
		s.logger.WithError(err).Warn("Failed to list mint attempts")
		writeJSON(w, status, attemptsResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, attemptsResponse{Attempts: attempts})
}

func statusFor(err error) (int, string) {
	if err == nil {
		return http.StatusOK, "ok"
	}
	switch commonerrors.Kind(err) {
	case commonerrors.ErrBusy:
		return http.StatusConflict, "busy"
	case commonerrors.ErrWalletUnavailable:
		return http.StatusServiceUnavailable, "wallet_unavailable"
	case commonerrors.ErrSessionNotInitialized:
		return http.StatusPreconditionFailed, "not_connected"
	case commonerrors.ErrConnectionFailed, commonerrors.ErrMintFailed:
		return http.StatusBadGateway, "failed"
	default:
		return http.StatusInternalServerError, "error"
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
