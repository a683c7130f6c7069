package format

import (
	"strconv"
	"strings"
)

// Parse compiles a format string.
//
// Outside brackets everything is literal text. "[name]" or "[name:a,b]" is a block,
// "<...>" is an optional section that may nest. Brackets cannot be escaped.
// Argument tokens that do not fit their schema position fall back to the default.
func Parse(source string, mode Mode) (*Tree, error) {
	p := &parser{src: []rune(source), mode: mode}

	nodes, err := p.sequence(0)
	if err != nil {
		return nil, err
	}

	if mode == Display && p.metadata == 0 {
		return nil, &ParseError{Err: ErrMissingMandatoryMetadataBlock, Pos: len(p.src)}
	}

	return &Tree{Mode: mode, Nodes: nodes, Blocks: p.slots}, nil
}

type parser struct {
	src      []rune
	pos      int
	mode     Mode
	slots    int
	metadata int
}

// sequence parses nodes until the end of input or, when nested, until the closing '>'
// which is left for the caller to consume.
func (p *parser) sequence(depth int) ([]Node, error) {
	var nodes []Node
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, Node{Kind: NodeLiteral, Text: text.String()})
			text.Reset()
		}
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case '[':
			flush()
			b, err := p.block()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, Node{Kind: NodeBlock, Block: b})

		case '<':
			flush()
			start := p.pos
			p.pos++
			children, err := p.sequence(depth + 1)
			if err != nil {
				return nil, err
			}
			if p.pos >= len(p.src) {
				return nil, &ParseError{Err: ErrUnterminatedOptional, Pos: start}
			}
			p.pos++ // '>'
			nodes = append(nodes, Node{Kind: NodeOptional, Children: children})

		case '>':
			if depth == 0 {
				return nil, &ParseError{Err: ErrUnexpectedChar, Pos: p.pos, Name: string(c)}
			}
			flush()
			return nodes, nil

		case ']':
			return nil, &ParseError{Err: ErrUnexpectedChar, Pos: p.pos, Name: string(c)}

		default:
			text.WriteRune(c)
			p.pos++
		}
	}

	flush()
	return nodes, nil
}

// block parses "[name]" or "[name:args]" starting at '['
func (p *parser) block() (Block, error) {
	start := p.pos
	p.pos++

	var body strings.Builder
	for {
		if p.pos >= len(p.src) {
			return Block{}, &ParseError{Err: ErrUnterminatedBlock, Pos: start}
		}
		c := p.src[p.pos]
		if c == ']' {
			p.pos++
			break
		}
		if c == '[' || c == '<' || c == '>' {
			return Block{}, &ParseError{Err: ErrUnexpectedChar, Pos: p.pos, Name: string(c)}
		}
		body.WriteRune(c)
		p.pos++
	}

	name, rawArgs, hasArgs := strings.Cut(body.String(), ":")
	kind := BlockKind(strings.TrimSpace(name))

	schema, ok := SchemaFor(p.mode, kind)
	if !ok {
		return Block{}, &ParseError{Err: ErrUnknownBlockKind, Pos: start + 1, Name: string(kind)}
	}

	var tokens []string
	if hasArgs && rawArgs != "" {
		tokens = strings.Split(rawArgs, ",")
		// A single trailing comma is allowed
		if len(tokens) > 1 && strings.TrimSpace(tokens[len(tokens)-1]) == "" {
			tokens = tokens[:len(tokens)-1]
		}
	}
	if len(tokens) > len(schema) {
		return Block{}, &ParseError{Err: ErrTooManyArguments, Pos: start + 1, Name: string(kind)}
	}

	if kind == KindMetadata && p.mode == Display {
		if p.metadata > 0 {
			return Block{}, &ParseError{Err: ErrDuplicateMetadataBlock, Pos: start}
		}
		p.metadata++
	}

	b := Block{Kind: kind, Slot: p.slots, args: resolveArgs(schema, tokens)}
	p.slots++
	return b, nil
}

// resolveArgs applies schema defaults to missing, empty or malformed tokens
func resolveArgs(schema Schema, tokens []string) []Value {
	if len(schema) == 0 {
		return nil
	}

	values := make([]Value, len(schema))
	for i, arg := range schema {
		values[i] = arg.Default
		if i >= len(tokens) {
			continue
		}
		if v, ok := parseValue(arg, strings.TrimSpace(tokens[i])); ok {
			values[i] = v
		}
	}
	return values
}

func parseValue(arg ArgSpec, token string) (Value, bool) {
	if token == "" {
		return Value{}, false
	}

	switch arg.Type {
	case ArgBool:
		switch token {
		case "true":
			return Value{Bool: true}, true
		case "false":
			return Value{Bool: false}, true
		}
	case ArgUint:
		n, err := strconv.ParseUint(token, 10, 8)
		if err == nil && uint(n) >= arg.Min && uint(n) <= arg.Max {
			return Value{Uint: uint(n)}, true
		}
	}
	return Value{}, false
}
