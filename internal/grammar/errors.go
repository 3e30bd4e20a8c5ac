package grammar

import (
	"errors"
	"fmt"

	"github.com/aidanlsb/vql/internal/registry"
)

// ErrParse is wrapped by every error returned from this package.
var ErrParse = errors.New("parse error")

// UnrecognizedFormatError reports input that is neither functional, flag
// nor bare query syntax.
type UnrecognizedFormatError struct {
	Raw string
}

func (e *UnrecognizedFormatError) Error() string {
	return fmt.Sprintf("unknown command format: %s. Commands must start with - (CLI) or : (LLM)", e.Raw)
}

func (e *UnrecognizedFormatError) Unwrap() error { return ErrParse }

// UnknownCommandError reports prefixed input that matches no rule.
type UnknownCommandError struct {
	Raw string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %s", e.Raw)
}

func (e *UnknownCommandError) Unwrap() error { return ErrParse }

// InvalidSubcommandError reports a scoped flag verb followed by something
// other than a known dash-prefixed sub-operation.
type InvalidSubcommandError struct {
	Verb       string
	Subcommand string
}

func (e *InvalidSubcommandError) Error() string {
	if e.Subcommand == "" || e.Subcommand[0] != '-' {
		return fmt.Sprintf("invalid subcommand format %q for -%s. Subcommands must start with - (e.g., -add)", e.Subcommand, e.Verb)
	}
	return fmt.Sprintf("unknown %s subcommand: %s", e.Verb, e.Subcommand)
}

func (e *InvalidSubcommandError) Unwrap() []error {
	return []error{ErrParse, registry.ErrInvalidArgument}
}

// ArgumentCountError reports a command given too few or too many arguments.
type ArgumentCountError struct {
	Command string
	Got     int
	Usage   string
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("wrong number of arguments for %s (got %d). Usage: %s", e.Command, e.Got, e.Usage)
}

func (e *ArgumentCountError) Unwrap() []error {
	return []error{ErrParse, registry.ErrInvalidArgument}
}

// InvalidValueError reports an argument with a malformed value.
type InvalidValueError struct {
	Reason string
}

func (e *InvalidValueError) Error() string { return e.Reason }

func (e *InvalidValueError) Unwrap() []error {
	return []error{ErrParse, registry.ErrInvalidArgument}
}
