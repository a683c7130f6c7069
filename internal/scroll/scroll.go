package scroll

import "strings"

// State is the scroll position of a single block instance
type State struct {
	content  []rune
	raw      string
	size     int
	waitInit uint

	offset  int
	forward bool
	wait    uint

	// last tick this state was stepped on
	stepped    uint64
	hasStepped bool
	window     string
}

func newState(content string, size int, wait uint) *State {
	s := &State{size: size, waitInit: wait}
	s.reset(content)
	return s
}

// reset starts over at offset 0 moving forward with a full wait
func (s *State) reset(content string) {
	s.raw = content
	s.content = []rune(content)
	s.offset = 0
	s.forward = true
	s.wait = s.waitInit
	s.hasStepped = false
}

// Offset returns the current window start
func (s *State) Offset() int { return s.offset }

// Forward reports whether the window is moving towards the end of the content
func (s *State) Forward() bool { return s.forward }

// step advances the window by one tick.
// While a wait is pending the window holds; at either end the direction flips
// and the wait is rearmed.
func (s *State) step() {
	length := len(s.content)
	if length <= s.size {
		s.offset = 0
		s.forward = true
		s.wait = s.waitInit
		s.window = s.render()
		return
	}

	limit := length - s.size
	switch {
	case s.wait > 0:
		s.wait--
	case s.forward:
		s.offset++
	default:
		s.offset--
	}

	if s.forward && s.offset >= limit {
		s.offset = limit
		s.forward = false
		s.wait = s.waitInit
	} else if !s.forward && s.offset <= 0 {
		s.offset = 0
		s.forward = true
		s.wait = s.waitInit
	}

	s.window = s.render()
}

func (s *State) render() string {
	if len(s.content) <= s.size {
		return s.raw + strings.Repeat(" ", s.size-len(s.content))
	}
	return string(s.content[s.offset : s.offset+s.size])
}

// Engine owns one State per block slot and advances them once per tick
type Engine struct {
	states map[int]*State
	tick   uint64
}

// NewEngine creates an empty scroll engine
func NewEngine() *Engine {
	return &Engine{states: make(map[int]*State)}
}

// Advance moves the engine to tick. Each state steps at most once per tick,
// the first time it is rendered on that tick.
func (e *Engine) Advance(tick uint64) {
	e.tick = tick
}

// Window returns the fixed-width view of content for slot.
// The slot's state is created on first use and reset whenever content, size or
// wait change. Rendering the same slot again within one tick returns the same text.
func (e *Engine) Window(slot int, content string, size, wait uint) string {
	if size == 0 {
		return ""
	}

	s, ok := e.states[slot]
	switch {
	case !ok:
		s = newState(content, int(size), wait)
		e.states[slot] = s
	case s.raw != content || s.size != int(size) || s.waitInit != wait:
		s.size = int(size)
		s.waitInit = wait
		s.reset(content)
	}

	if !s.hasStepped || s.stepped != e.tick {
		s.step()
		s.stepped = e.tick
		s.hasStepped = true
	}
	return s.window
}

// State returns the scroll state of slot, if it exists
func (e *Engine) State(slot int) (*State, bool) {
	s, ok := e.states[slot]
	return s, ok
}
