package command

import (
	"errors"
	"strings"
	"sync"

	"github.com/genricoloni/mprisline/internal/domain"
)

var (
	// ErrAlreadyRunning is returned when another daemon owns the command pipe
	ErrAlreadyRunning = errors.New("another instance is already running")

	// ErrNotRunning is returned by Send when no daemon reads the command pipe
	ErrNotRunning = errors.New("no running instance")
)

// Parse maps a pipe token to a command
func Parse(token string) (domain.Command, bool) {
	token = strings.TrimSpace(token)
	for _, cmd := range domain.Commands {
		if string(cmd) == token {
			return cmd, true
		}
	}
	return "", false
}

// Queue buffers commands between the pipe reader and the tick loop
type Queue struct {
	mu   sync.Mutex
	cmds []domain.Command
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends a command
func (q *Queue) Push(cmd domain.Command) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.cmds = append(q.cmds, cmd)
}

// Drain returns every queued command in arrival order and empties the queue
func (q *Queue) Drain() []domain.Command {
	q.mu.Lock()
	defer q.mu.Unlock()

	cmds := q.cmds
	q.cmds = nil
	return cmds
}
