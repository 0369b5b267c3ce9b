package commands

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fooddesk/internal/api"
	"fooddesk/internal/config"
	"fooddesk/internal/draft"
	"fooddesk/internal/resource"
	"fooddesk/internal/session"
)

// newClient builds the HTTP adapter for the configured backend, with request
// logging to stderr when debug is on.
func newClient(cfg *config.Config) *api.Client {
	var log *zap.SugaredLogger
	if cfg.Debug {
		enc := zap.NewDevelopmentEncoderConfig()
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), zapcore.DebugLevel)
		log = zap.New(core).Sugar()
	}
	return api.NewClient(cfg.APIBaseURL, log)
}

func newSession(cfg *config.Config) *session.Store {
	return session.NewStore(cfg.StateDir)
}

func newOrchestrator(cfg *config.Config) *resource.Orchestrator {
	return resource.NewOrchestrator(newClient(cfg), Confirm)
}

// openDrafts opens the local draft store and returns (store, cleanup, error).
func openDrafts(cfg *config.Config) (*draft.Store, func() error, error) {
	s, err := draft.Open(cfg.DraftDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open draft store: %w", err)
	}
	return s, s.Close, nil
}
