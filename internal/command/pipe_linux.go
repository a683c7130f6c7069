package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/genricoloni/mprisline/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// Listener reads command tokens from a named pipe into a Queue.
// Holding the pipe's lock file makes the daemon a per-path singleton.
type Listener struct {
	logger *zap.Logger
	path   string
	queue  *Queue

	lock *os.File
	fifo *os.File
	done chan struct{}
}

// NewListener creates a listener for the FIFO at path
func NewListener(logger *zap.Logger, path string, queue *Queue) *Listener {
	return &Listener{
		logger: logger,
		path:   path,
		queue:  queue,
	}
}

// Start takes the singleton lock, recreates the FIFO and starts reading it.
// It fails with ErrAlreadyRunning when another process holds the lock.
func (l *Listener) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lock, err := os.OpenFile(l.path+".lock", os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}
	if err := unix.Flock(int(lock.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		lock.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return fmt.Errorf("%w (pipe %s)", ErrAlreadyRunning, l.path)
		}
		return fmt.Errorf("failed to lock %s: %w", lock.Name(), err)
	}

	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		l.release(lock)
		return fmt.Errorf("failed to remove stale pipe: %w", err)
	}
	if err := unix.Mkfifo(l.path, 0o600); err != nil {
		l.release(lock)
		return fmt.Errorf("failed to create pipe %s: %w", l.path, err)
	}

	// Opening read-write keeps the pipe from reporting EOF between writers
	fifo, err := os.OpenFile(l.path, os.O_RDWR, 0)
	if err != nil {
		os.Remove(l.path)
		l.release(lock)
		return fmt.Errorf("failed to open pipe %s: %w", l.path, err)
	}

	l.lock = lock
	l.fifo = fifo
	l.done = make(chan struct{})

	go l.read()

	l.logger.Info("Command pipe ready", zap.String("path", l.path))
	return nil
}

// read pushes every valid token until the pipe is closed
func (l *Listener) read() {
	defer close(l.done)

	scanner := bufio.NewScanner(l.fifo)
	scanner.Split(bufio.ScanWords)

	for scanner.Scan() {
		token := scanner.Text()
		cmd, ok := Parse(token)
		if !ok {
			l.logger.Debug("Ignoring unknown command", zap.String("token", token))
			continue
		}
		l.queue.Push(cmd)
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, os.ErrClosed) {
		l.logger.Warn("Command pipe read failed", zap.Error(err))
	}
}

// Stop closes and removes the FIFO and releases the lock
func (l *Listener) Stop(ctx context.Context) error {
	if l.fifo == nil {
		return nil
	}

	if err := l.fifo.Close(); err != nil {
		l.logger.Warn("Failed to close command pipe", zap.Error(err))
	}

	select {
	case <-l.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("Failed to remove command pipe", zap.Error(err))
	}
	l.release(l.lock)
	l.fifo = nil
	l.lock = nil

	l.logger.Info("Command pipe closed")
	return nil
}

func (l *Listener) release(lock *os.File) {
	if err := unix.Flock(int(lock.Fd()), unix.LOCK_UN); err != nil {
		l.logger.Debug("Failed to unlock", zap.Error(err))
	}
	lock.Close()
}

// Send writes cmd to the FIFO of a running daemon
func Send(path string, cmd domain.Command) error {
	f, err := os.OpenFile(path, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		if errors.Is(err, unix.ENXIO) || errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w on %s", ErrNotRunning, path)
		}
		return fmt.Errorf("failed to open pipe %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(string(cmd) + "\n"); err != nil {
		return fmt.Errorf("failed to send %s: %w", cmd, err)
	}
	return nil
}
