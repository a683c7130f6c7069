package format

import (
	"errors"
	"fmt"
)

var (
	ErrUnterminatedBlock             = errors.New("unterminated block")
	ErrUnterminatedOptional          = errors.New("unterminated optional section")
	ErrUnknownBlockKind              = errors.New("unknown block")
	ErrMissingMandatoryMetadataBlock = errors.New("display format has no metadata block")
	ErrDuplicateMetadataBlock        = errors.New("display format has more than one metadata block")
	ErrUnexpectedChar                = errors.New("unexpected character")
	ErrTooManyArguments              = errors.New("too many arguments")
)

// ParseError reports where a format string failed to compile.
// Pos is a rune offset into the source.
type ParseError struct {
	Err  error
	Pos  int
	Name string
}

func (e *ParseError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("at %d: %v '%s'", e.Pos, e.Err, e.Name)
	}
	return fmt.Sprintf("at %d: %v", e.Pos, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
