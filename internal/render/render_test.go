package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/genricoloni/mprisline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var click = Command{Executable: "/usr/bin/mprisline", Pipe: "/tmp/mprisline.me"}

func frags() []domain.Fragment {
	return []domain.Fragment{
		{Text: "⏮", Action: domain.CommandPrev},
		{Text: " "},
		{Text: "⏸", Action: domain.CommandPlayPause},
		{Text: " 1/2 ┃ A - Song   "},
	}
}

func TestPolybar_WrapsActions(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(Polybar, &buf, zap.NewNop(), click)
	require.NoError(t, err)

	require.NoError(t, w.Render(frags()))

	want := "%{A1:/usr/bin/mprisline --pipe /tmp/mprisline.me prev:}⏮%{A} " +
		"%{A1:/usr/bin/mprisline --pipe /tmp/mprisline.me play-pause:}⏸%{A} 1/2 ┃ A - Song\n"
	assert.Equal(t, want, buf.String())
}

func TestPolybar_EscapesColons(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(Lemonbar, &buf, zap.NewNop(), Command{Executable: `C:\bin\mprisline`})
	require.NoError(t, err)

	require.NoError(t, w.Render([]domain.Fragment{{Text: ">", Action: domain.CommandNext}}))
	assert.Equal(t, `%{A1:C\:\bin\mprisline next:}>%{A}`+"\n", buf.String())
}

func TestRender_SuppressesDuplicates(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(Polybar, &buf, zap.NewNop(), click)
	require.NoError(t, err)

	require.NoError(t, w.Render(frags()))
	require.NoError(t, w.Render(frags()))
	// Differs only in trailing whitespace
	require.NoError(t, w.Render(append(frags(), domain.Fragment{Text: "  "})))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))

	require.NoError(t, w.Render([]domain.Fragment{{Text: "no music"}}))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestPlain(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(Plain, &buf, zap.NewNop(), click)
	require.NoError(t, err)

	require.NoError(t, w.Render(frags()))
	assert.Equal(t, "⏮ ⏸ 1/2 ┃ A - Song\n", buf.String())
}

func TestRender_KeepsScrollWindowWidth(t *testing.T) {
	window := []domain.Fragment{{Text: "1/1 "}, {Text: "Song      ", Fixed: true}}

	var plain bytes.Buffer
	w, err := New(Plain, &plain, zap.NewNop(), click)
	require.NoError(t, err)
	require.NoError(t, w.Render(window))
	assert.Equal(t, "1/1 Song      \n", plain.String())

	var bar bytes.Buffer
	w, err = New(Polybar, &bar, zap.NewNop(), click)
	require.NoError(t, err)
	require.NoError(t, w.Render(append(window, domain.Fragment{Text: "  "})))
	assert.Equal(t, "1/1 Song      \n", bar.String())
}

func TestTTY_RewritesLineInPlace(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(TTY, &buf, zap.NewNop(), click)
	require.NoError(t, err)

	require.NoError(t, w.Render([]domain.Fragment{{Text: "日本"}}))
	require.NoError(t, w.Render([]domain.Fragment{{Text: "ab"}}))

	// Wide runes take two columns each
	assert.Equal(t, "\r\r日本"+"\r    \rab", buf.String())
}

func TestTrimTrailingSpace(t *testing.T) {
	tests := []struct {
		name string
		in   []domain.Fragment
		want []domain.Fragment
	}{
		{"Nothing to trim", []domain.Fragment{{Text: "a"}}, []domain.Fragment{{Text: "a"}}},
		{"Trailing fragments dropped", []domain.Fragment{{Text: "a"}, {Text: " "}, {Text: "\t"}}, []domain.Fragment{{Text: "a"}}},
		{"Action kept after trim", []domain.Fragment{{Text: "> ", Action: domain.CommandNext}}, []domain.Fragment{{Text: ">", Action: domain.CommandNext}}},
		{"All blank", []domain.Fragment{{Text: " "}}, []domain.Fragment{}},
		{"Fixed fragment keeps padding", []domain.Fragment{{Text: "a "}, {Text: "b  ", Fixed: true}, {Text: " "}}, []domain.Fragment{{Text: "a "}, {Text: "b  ", Fixed: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]domain.Fragment(nil), tt.in...)
			got := trimTrailingSpace(in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, in, "input must not be modified")
		})
	}
}

func TestNew_UnknownRenderer(t *testing.T) {
	_, err := New("i3bar", &bytes.Buffer{}, zap.NewNop(), click)
	assert.True(t, errors.Is(err, ErrUnknownRenderer))
}
