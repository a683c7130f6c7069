//go:build !linux
// +build !linux

package command

import (
	"context"
	"fmt"

	"github.com/genricoloni/mprisline/internal/domain"
	"go.uber.org/zap"
)

// Listener stub for non-Linux platforms
type Listener struct {
	logger *zap.Logger
}

// NewListener creates a stub listener that returns an error on non-Linux platforms
func NewListener(logger *zap.Logger, path string, queue *Queue) *Listener {
	return &Listener{logger: logger}
}

// Start returns an error indicating the command pipe is not supported on this platform
func (l *Listener) Start(ctx context.Context) error {
	return fmt.Errorf("command pipe is only supported on Linux systems")
}

// Stop is a no-op on non-Linux platforms
func (l *Listener) Stop(ctx context.Context) error {
	return nil
}

// Send returns an error indicating the command pipe is not supported on this platform
func Send(path string, cmd domain.Command) error {
	return fmt.Errorf("command pipe is only supported on Linux systems")
}
