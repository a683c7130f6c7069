package evaluator

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/genricoloni/mprisline/internal/domain"
	"github.com/genricoloni/mprisline/internal/format"
)

const missingTag = "N/A"

// MetadataFormatter renders a track description from a metadata-mode format tree
type MetadataFormatter struct {
	tree *format.Tree
}

// NewMetadataFormatter wraps a tree compiled in format.Metadata mode
func NewMetadataFormatter(tree *format.Tree) *MetadataFormatter {
	return &MetadataFormatter{tree: tree}
}

// Format renders the snapshot's track fields. Trailing whitespace is trimmed.
func (f *MetadataFormatter) Format(p domain.PlayerSnapshot) string {
	frags := renderNodes(f.tree.Nodes, func(b format.Block) resolved {
		return resolveTag(b.Kind, p)
	})
	return strings.TrimRightFunc(joinText(frags), unicode.IsSpace)
}

func resolveTag(kind format.BlockKind, p domain.PlayerSnapshot) resolved {
	var value string

	switch kind {
	case format.KindArtist:
		if artists := validList(p.Artists); artists != nil {
			value = artists[0]
		}
	case format.KindArtists:
		if artists := validList(p.Artists); artists != nil {
			value = strings.Join(artists, ", ")
		}
	case format.KindAlbum:
		value = p.Album
	case format.KindAlbumArtist:
		if artists := validList(p.AlbumArtists); artists != nil {
			value = artists[0]
		}
	case format.KindTitle:
		value = p.Title
	case format.KindTrack:
		// Track numbers have no placeholder
		if p.TrackNumber > 0 {
			return resolved{text: strconv.Itoa(p.TrackNumber)}
		}
		return resolved{empty: true}
	}

	if value == "" {
		return resolved{text: missingTag, empty: true}
	}
	return resolved{text: value}
}

// validList returns nil for lists that carry no usable first entry
func validList(list []string) []string {
	if len(list) == 0 || list[0] == "" {
		return nil
	}
	return list
}
