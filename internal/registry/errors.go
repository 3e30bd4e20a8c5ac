package registry

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the registry error taxonomy. Every typed error below
// unwraps to one of these.
var (
	ErrNotFound        = errors.New("not found")
	ErrNameCollision   = errors.New("name collision")
	ErrInUse           = errors.New("in use")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIO              = errors.New("io failure")
)

// NotFoundError reports a reference to a record that does not exist.
// Available lists the names that do exist in that collection, sorted.
type NotFoundError struct {
	Kind      string
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.Name)
}

// Hint lists valid alternatives, or returns "" when there are none.
func (e *NotFoundError) Hint() string {
	if len(e.Available) == 0 {
		return ""
	}
	return fmt.Sprintf("Available %ss: %s", e.Kind, strings.Join(e.Available, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NameCollisionError reports an add or rename onto a taken short name.
type NameCollisionError struct {
	Name         string
	ExistingKind Kind
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("short name '%s' is already used by a %s", e.Name, e.ExistingKind)
}

func (e *NameCollisionError) Unwrap() error { return ErrNameCollision }

// InUseError reports a delete blocked by asset references.
type InUseError struct {
	Kind           Kind
	Name           string
	BlockingAssets []string
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("cannot delete %s '%s': referenced by %d asset(s): %s",
		e.Kind, e.Name, len(e.BlockingAssets), strings.Join(e.BlockingAssets, ", "))
}

func (e *InUseError) Unwrap() error { return ErrInUse }

// InvalidArgumentError reports malformed input such as a bad rating or a
// short name of the wrong length.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string { return e.Reason }

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

// IOError reports a filesystem failure while loading or saving.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }

func notFound(kind Kind, name string, available []string) error {
	return &NotFoundError{Kind: kind.String(), Name: name, Available: available}
}

func invalidf(format string, args ...interface{}) error {
	return &InvalidArgumentError{Reason: fmt.Sprintf(format, args...)}
}
