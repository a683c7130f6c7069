package format

// Mode selects which block kinds a format string may use
type Mode int

const (
	// Display is the top-level status line format
	Display Mode = iota
	// Metadata is the track description format used by the metadata block
	Metadata
)

func (m Mode) String() string {
	switch m {
	case Display:
		return "display"
	case Metadata:
		return "metadata"
	default:
		return "unknown"
	}
}

// NodeKind tags the variant held by a Node
type NodeKind int

const (
	NodeLiteral NodeKind = iota
	NodeBlock
	NodeOptional
)

// Node is one element of a compiled format.
// Literal nodes use Text, block nodes use Block and optional sections use Children.
type Node struct {
	Kind     NodeKind
	Text     string
	Block    Block
	Children []Node
}

// Tree is a compiled format string. It is built once and never mutated.
type Tree struct {
	Mode  Mode
	Nodes []Node
	// Blocks is the number of blocks in the tree; block slots are 0..Blocks-1
	Blocks int
}

// BlockKind names a block directive
type BlockKind string

const (
	KindPrev       BlockKind = "prev"
	KindNext       BlockKind = "next"
	KindPlayPause  BlockKind = "play-pause"
	KindStatus     BlockKind = "status"
	KindPrevPlayer BlockKind = "prev-player"
	KindNextPlayer BlockKind = "next-player"
	KindInfo       BlockKind = "info"
	KindMetadata   BlockKind = "metadata"
	KindTime       BlockKind = "time"

	KindArtist      BlockKind = "artist"
	KindArtists     BlockKind = "artists"
	KindAlbum       BlockKind = "album"
	KindAlbumArtist BlockKind = "album-artist"
	KindTitle       BlockKind = "title"
	KindTrack       BlockKind = "track"
)

// Block is a parsed block directive with its arguments resolved against the kind's schema
type Block struct {
	Kind BlockKind
	// Slot is the block's index in depth-first source order
	Slot int
	args []Value
}

// Bool returns the i-th argument of a boolean schema position
func (b Block) Bool(i int) bool {
	if i < 0 || i >= len(b.args) {
		return false
	}
	return b.args[i].Bool
}

// Uint returns the i-th argument of an unsigned schema position
func (b Block) Uint(i int) uint {
	if i < 0 || i >= len(b.args) {
		return 0
	}
	return b.args[i].Uint
}

// ArgType is the type of a schema position
type ArgType int

const (
	ArgBool ArgType = iota
	ArgUint
)

// Value holds a parsed argument; only the field matching the schema type is used
type Value struct {
	Bool bool
	Uint uint
}

// ArgSpec describes one positional argument
type ArgSpec struct {
	Name    string
	Type    ArgType
	Default Value
	// Min and Max bound ArgUint positions
	Min uint
	Max uint
}

// Schema is the ordered argument list of a block kind
type Schema []ArgSpec

// Argument positions
const (
	InfoShowTotal = 0
	InfoShowName  = 1

	MetadataBufferSize = 0
	MetadataWaitTicks  = 1

	TimeShowLength   = 0
	TimeUseRemaining = 1
)

const (
	DefaultBufferSize = 32
	DefaultWaitTicks  = 10

	// MaxUintArgument is the largest accepted numeric argument
	MaxUintArgument = 255
)

var displaySchemas = map[BlockKind]Schema{
	KindPrev:       nil,
	KindNext:       nil,
	KindPlayPause:  nil,
	KindStatus:     nil,
	KindPrevPlayer: nil,
	KindNextPlayer: nil,
	KindInfo: {
		{Name: "show_total", Type: ArgBool, Default: Value{Bool: true}},
		{Name: "show_name", Type: ArgBool, Default: Value{Bool: true}},
	},
	KindMetadata: {
		{Name: "buffer_size", Type: ArgUint, Default: Value{Uint: DefaultBufferSize}, Min: 1, Max: MaxUintArgument},
		{Name: "wait_ticks", Type: ArgUint, Default: Value{Uint: DefaultWaitTicks}, Max: MaxUintArgument},
	},
	KindTime: {
		{Name: "show_length", Type: ArgBool, Default: Value{Bool: true}},
		{Name: "use_remaining", Type: ArgBool, Default: Value{Bool: false}},
	},
}

var metadataSchemas = map[BlockKind]Schema{
	KindArtist:      nil,
	KindArtists:     nil,
	KindAlbum:       nil,
	KindAlbumArtist: nil,
	KindTitle:       nil,
	KindTrack:       nil,
}

// SchemaFor returns the argument schema of kind in mode
func SchemaFor(mode Mode, kind BlockKind) (Schema, bool) {
	var schemas map[BlockKind]Schema
	switch mode {
	case Display:
		schemas = displaySchemas
	case Metadata:
		schemas = metadataSchemas
	default:
		return nil, false
	}
	s, ok := schemas[kind]
	return s, ok
}

// Walk calls fn for every block in the tree in slot order
func (t *Tree) Walk(fn func(Block)) {
	walkNodes(t.Nodes, fn)
}

func walkNodes(nodes []Node, fn func(Block)) {
	for _, n := range nodes {
		switch n.Kind {
		case NodeBlock:
			fn(n.Block)
		case NodeOptional:
			walkNodes(n.Children, fn)
		}
	}
}
