package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a JSON logger tagged with the service name.
func New(service string) (*zap.Logger, error) {
	log, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log.With(zap.String("service", service)), nil
}

// NewFile builds a logger writing to the given file instead of
// stderr. The terminal client uses it so log lines do not corrupt the
// rendered UI.
func NewFile(service, path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log.With(zap.String("service", service)), nil
}
