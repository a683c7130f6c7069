package scroll

import (
	"strings"
	"testing"
)

// content40 is 40 distinct runes so every offset yields a distinct window
const content40 = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMN"

func TestWindow_BounceSequence(t *testing.T) {
	e := NewEngine()
	const size, wait = 10, 2

	// Expected offsets for ticks 1..: two waiting ticks, 30 steps forward,
	// two waiting ticks at the end, then back down.
	var want []int
	want = append(want, 0, 0)
	for off := 1; off <= 30; off++ {
		want = append(want, off)
	}
	want = append(want, 30, 30)
	for off := 29; off >= 0; off-- {
		want = append(want, off)
	}
	want = append(want, 0, 0, 1, 2)

	for i, off := range want {
		tick := uint64(i + 1)
		e.Advance(tick)
		got := e.Window(0, content40, size, wait)
		expected := content40[off : off+size]
		if got != expected {
			t.Fatalf("tick %d: expected %q (offset %d), got %q", tick, expected, off, got)
		}
	}
}

func TestWindow_SpecTicks(t *testing.T) {
	e := NewEngine()

	e.Advance(1)
	if got := e.Window(3, content40, 10, 2); got != content40[0:10] {
		t.Errorf("tick 1: got %q", got)
	}
	e.Advance(2)
	if got := e.Window(3, content40, 10, 2); got != content40[0:10] {
		t.Errorf("tick 2: got %q", got)
	}
	e.Advance(3)
	if got := e.Window(3, content40, 10, 2); got != content40[1:11] {
		t.Errorf("tick 3: got %q", got)
	}
}

func TestWindow_ShortContentIsPadded(t *testing.T) {
	tests := []struct {
		name    string
		content string
		size    uint
		want    string
	}{
		{"Shorter", "Song", 8, "Song    "},
		{"Exact", "Song", 4, "Song"},
		{"Empty", "", 3, "   "},
		{"Multibyte", "Ñandú", 6, "Ñandú "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			for tick := uint64(1); tick <= 5; tick++ {
				e.Advance(tick)
				if got := e.Window(0, tt.content, tt.size, 1); got != tt.want {
					t.Fatalf("tick %d: expected %q, got %q", tick, tt.want, got)
				}
			}
		})
	}
}

func TestWindow_RunesNotBytes(t *testing.T) {
	e := NewEngine()
	content := "ééééé✓✓✓✓✓"

	e.Advance(1)
	if got := e.Window(0, content, 5, 0); got != "éééé✓" {
		t.Errorf("expected %q, got %q", "éééé✓", got)
	}
}

func TestWindow_ContentChangeResets(t *testing.T) {
	e := NewEngine()
	for tick := uint64(1); tick <= 6; tick++ {
		e.Advance(tick)
		e.Window(0, content40, 10, 2)
	}
	s, ok := e.State(0)
	if !ok || s.Offset() != 4 {
		t.Fatalf("expected offset 4 before change, got %+v", s)
	}

	other := strings.Repeat("x", 20) + strings.Repeat("y", 20)
	e.Advance(7)
	if got := e.Window(0, other, 10, 2); got != other[0:10] {
		t.Errorf("expected reset window, got %q", got)
	}
	s, _ = e.State(0)
	if s.Offset() != 0 || !s.Forward() {
		t.Errorf("expected offset 0 forward after reset, got offset %d forward %v", s.Offset(), s.Forward())
	}

	// The initial wait applies again to the new content
	e.Advance(8)
	e.Window(0, other, 10, 2)
	e.Advance(9)
	e.Window(0, other, 10, 2)
	if s.Offset() != 1 {
		t.Errorf("expected offset 1 after the wait, got %d", s.Offset())
	}
}

func TestWindow_SameTickIsDeterministic(t *testing.T) {
	e := NewEngine()
	for tick := uint64(1); tick <= 5; tick++ {
		e.Advance(tick)
		first := e.Window(0, content40, 10, 0)
		second := e.Window(0, content40, 10, 0)
		if first != second {
			t.Fatalf("tick %d: repeated render differs: %q vs %q", tick, first, second)
		}
	}
}

func TestWindow_SlotsAreIndependent(t *testing.T) {
	e := NewEngine()
	for tick := uint64(1); tick <= 3; tick++ {
		e.Advance(tick)
		e.Window(0, content40, 10, 0)
	}
	e.Advance(4)
	if got := e.Window(1, content40, 10, 0); got != content40[1:11] {
		t.Errorf("new slot should start on its own, got %q", got)
	}
	if got := e.Window(0, content40, 10, 0); got != content40[4:14] {
		t.Errorf("slot 0 should keep its offset, got %q", got)
	}
}

func TestWindow_ZeroSize(t *testing.T) {
	e := NewEngine()
	e.Advance(1)
	if got := e.Window(0, "anything", 0, 0); got != "" {
		t.Errorf("expected empty window, got %q", got)
	}
}
