package cli

import (
	"errors"

	"github.com/aidanlsb/vql/internal/grammar"
	"github.com/aidanlsb/vql/internal/paths"
	"github.com/aidanlsb/vql/internal/registry"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	ErrNotFound           = "NOT_FOUND"
	ErrNameCollision      = "NAME_COLLISION"
	ErrInUse              = "IN_USE"
	ErrInvalidArgument    = "INVALID_ARGUMENT"
	ErrUnknownCommand     = "UNKNOWN_COMMAND"
	ErrUnrecognizedFormat = "UNRECOGNIZED_FORMAT"
	ErrIOFailure          = "IO_FAILURE"
	ErrWorkspaceNotFound  = "WORKSPACE_NOT_FOUND"
	ErrConfigInvalid      = "CONFIG_INVALID"
	ErrInternal           = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnCommand = "COMMAND_WARNING"
)

// errorCode maps an error from the grammar, registry or workspace layers to
// its stable code.
func errorCode(err error) string {
	var (
		unknown      *grammar.UnknownCommandError
		unrecognized *grammar.UnrecognizedFormatError
	)
	switch {
	case errors.As(err, &unknown):
		return ErrUnknownCommand
	case errors.As(err, &unrecognized):
		return ErrUnrecognizedFormat
	case errors.Is(err, registry.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, registry.ErrNameCollision):
		return ErrNameCollision
	case errors.Is(err, registry.ErrInUse):
		return ErrInUse
	case errors.Is(err, registry.ErrInvalidArgument):
		return ErrInvalidArgument
	case errors.Is(err, registry.ErrIO):
		return ErrIOFailure
	case errors.Is(err, paths.ErrWorkspaceNotFound):
		return ErrWorkspaceNotFound
	case errors.Is(err, errConfig):
		return ErrConfigInvalid
	}
	return ErrInternal
}

// errorSuggestion returns a follow-up hint for err, or "".
func errorSuggestion(err error) string {
	var (
		nf    *registry.NotFoundError
		count *grammar.ArgumentCountError
		inUse *registry.InUseError
	)
	switch {
	case errors.As(err, &nf):
		return nf.Hint()
	case errors.As(err, &count):
		return "Usage: " + count.Usage
	case errors.As(err, &inUse):
		return "Delete or re-point the blocking assets first"
	case errors.Is(err, paths.ErrWorkspaceNotFound):
		return "Run 'vql -su' to create a VQL directory here, or pass --workspace <name>"
	case errors.As(err, new(*grammar.UnrecognizedFormatError)), errors.As(err, new(*grammar.UnknownCommandError)):
		return "Run 'vql' without arguments to see the available commands"
	}
	return ""
}

// errorDetails returns structured details for JSON output.
func errorDetails(err error) interface{} {
	var (
		nf    *registry.NotFoundError
		inUse *registry.InUseError
	)
	switch {
	case errors.As(err, &nf) && len(nf.Available) > 0:
		return map[string]interface{}{"kind": nf.Kind, "name": nf.Name, "available": nf.Available}
	case errors.As(err, &inUse):
		return map[string]interface{}{"kind": inUse.Kind.String(), "name": inUse.Name, "blocking_assets": inUse.BlockingAssets}
	}
	return nil
}
