package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultDisplay = "[prev] [play-pause] [next] [info] ┃ [metadata]"

func TestParse_DefaultDisplayFormat(t *testing.T) {
	tree, err := Parse(defaultDisplay, Display)
	require.NoError(t, err)

	var kinds []BlockKind
	tree.Walk(func(b Block) { kinds = append(kinds, b.Kind) })
	assert.Equal(t, []BlockKind{KindPrev, KindPlayPause, KindNext, KindInfo, KindMetadata}, kinds)
	assert.Equal(t, 5, tree.Blocks)

	require.Len(t, tree.Nodes, 9)
	assert.Equal(t, Node{Kind: NodeLiteral, Text: " ┃ "}, tree.Nodes[7])

	info := tree.Nodes[6].Block
	assert.True(t, info.Bool(InfoShowTotal))
	assert.True(t, info.Bool(InfoShowName))

	meta := tree.Nodes[8].Block
	assert.Equal(t, uint(DefaultBufferSize), meta.Uint(MetadataBufferSize))
	assert.Equal(t, uint(DefaultWaitTicks), meta.Uint(MetadataWaitTicks))
}

func TestParse_Arguments(t *testing.T) {
	tests := []struct {
		source string
		size   uint
		wait   uint
	}{
		{"[metadata]", 32, 10},
		{"[metadata:]", 32, 10},
		{"[metadata:,]", 32, 10},
		{"[metadata:,11]", 32, 11},
		{"[metadata:20]", 20, 10},
		{"[metadata: 20 , 3 ]", 20, 3},
		{"[metadata:abc,3]", 32, 3},
		{"[metadata:0,0]", 32, 0},
		{"[metadata:-4,true]", 32, 10},
		{"[metadata:255,255]", 255, 255},
		{"[metadata:256]", 32, 10},
		{"[metadata:18446744073709551615]", 32, 10},
		{"[metadata:4,256]", 4, 10},
		{"[metadata:1,2,]", 1, 2},
		{"[metadata:7,]", 7, 10},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tree, err := Parse(tt.source, Display)
			require.NoError(t, err)
			require.Len(t, tree.Nodes, 1)

			b := tree.Nodes[0].Block
			assert.Equal(t, tt.size, b.Uint(MetadataBufferSize))
			assert.Equal(t, tt.wait, b.Uint(MetadataWaitTicks))
		})
	}
}

func TestParse_BoolArguments(t *testing.T) {
	tree, err := Parse("[time:false,true][info:,false][metadata]", Display)
	require.NoError(t, err)

	tm := tree.Nodes[0].Block
	assert.False(t, tm.Bool(TimeShowLength))
	assert.True(t, tm.Bool(TimeUseRemaining))

	info := tree.Nodes[1].Block
	assert.True(t, info.Bool(InfoShowTotal))
	assert.False(t, info.Bool(InfoShowName))

	// Malformed booleans keep the default
	tree, err = Parse("[time:yes,1][metadata]", Display)
	require.NoError(t, err)
	tm = tree.Nodes[0].Block
	assert.True(t, tm.Bool(TimeShowLength))
	assert.False(t, tm.Bool(TimeUseRemaining))
}

func TestParse_OptionalSections(t *testing.T) {
	tree, err := Parse("<[artist] - >[title]", Metadata)
	require.NoError(t, err)
	require.Len(t, tree.Nodes, 2)

	opt := tree.Nodes[0]
	assert.Equal(t, NodeOptional, opt.Kind)
	require.Len(t, opt.Children, 2)
	assert.Equal(t, KindArtist, opt.Children[0].Block.Kind)
	assert.Equal(t, " - ", opt.Children[1].Text)
	assert.Equal(t, KindTitle, tree.Nodes[1].Block.Kind)

	assert.Equal(t, 0, opt.Children[0].Block.Slot)
	assert.Equal(t, 1, tree.Nodes[1].Block.Slot)
}

func TestParse_NestedMetadataSatisfiesDisplay(t *testing.T) {
	tree, err := Parse("[prev] <<x [metadata:10] y> [time]>", Display)
	require.NoError(t, err)

	var slots []int
	tree.Walk(func(b Block) { slots = append(slots, b.Slot) })
	assert.Equal(t, []int{0, 1, 2}, slots)

	outer := tree.Nodes[2]
	require.Equal(t, NodeOptional, outer.Kind)
	inner := outer.Children[0]
	require.Equal(t, NodeOptional, inner.Kind)
	assert.Equal(t, uint(10), inner.Children[1].Block.Uint(MetadataBufferSize))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		mode   Mode
		want   error
		pos    int
	}{
		{"missing metadata", "[prev] [next]", Display, ErrMissingMandatoryMetadataBlock, 13},
		{"empty display", "", Display, ErrMissingMandatoryMetadataBlock, 0},
		{"duplicate metadata", "[metadata][metadata]", Display, ErrDuplicateMetadataBlock, 10},
		{"unterminated block", "[metadata] [prev", Display, ErrUnterminatedBlock, 11},
		{"unterminated optional", "<[artist] - [title]", Metadata, ErrUnterminatedOptional, 0},
		{"unterminated nested optional", "<a<[title]>", Metadata, ErrUnterminatedOptional, 0},
		{"unknown display block", "[metadata][volume]", Display, ErrUnknownBlockKind, 11},
		{"metadata kind in display", "[metadata][title]", Display, ErrUnknownBlockKind, 11},
		{"display kind in metadata", "[metadata]", Metadata, ErrUnknownBlockKind, 1},
		{"stray close bracket", "[metadata]]", Display, ErrUnexpectedChar, 10},
		{"stray close optional", "[title]>", Metadata, ErrUnexpectedChar, 7},
		{"nested open bracket", "[[]", Display, ErrUnexpectedChar, 1},
		{"too many arguments", "[metadata:1,2,3]", Display, ErrTooManyArguments, 1},
		{"too many arguments with trailing comma", "[metadata:1,2,3,]", Display, ErrTooManyArguments, 1},
		{"arguments on plain block", "[metadata][prev:1]", Display, ErrTooManyArguments, 11},
		{"arguments on metadata field", "[title:x]", Metadata, ErrTooManyArguments, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(tt.source, tt.mode)
			assert.Nil(t, tree)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.pos, perr.Pos)
		})
	}
}

func TestParse_UnknownBlockNamesTheBlock(t *testing.T) {
	_, err := Parse("[metadata] [ volume ]", Display)
	require.Error(t, err)
	assert.EqualError(t, err, "at 12: unknown block 'volume'")
}

func TestParse_MetadataWithoutBlocks(t *testing.T) {
	tree, err := Parse("just text", Metadata)
	require.NoError(t, err)
	assert.Equal(t, []Node{{Kind: NodeLiteral, Text: "just text"}}, tree.Nodes)
	assert.Equal(t, 0, tree.Blocks)
}
