// Package errors provides a lightweight structured error type
// (BuildError) for category-based classification in the CLI.
package errors

import (
	"errors"
	"fmt"

	"github.com/Happy-Ferret/fledermaus/internal/config"
	"github.com/Happy-Ferret/fledermaus/internal/document"
	"github.com/Happy-Ferret/fledermaus/internal/fields"
	"github.com/Happy-Ferret/fledermaus/internal/paginate"
)

// Category represents the classification of a build error.
type Category string

const (
	// User-facing configuration and input errors
	CategoryConfig     Category = "config"
	CategoryFrontMat   Category = "frontmatter"
	CategoryField      Category = "field"
	CategoryRender     Category = "render"
	CategoryFileSystem Category = "filesystem"
	CategoryInternal   Category = "internal"
)

// BuildError is a structured error with category and context.
type BuildError struct {
	Category Category
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Unwrap implements error unwrapping.
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// New creates a new BuildError.
func New(category Category, message string) *BuildError {
	return &BuildError{Category: category, Message: message}
}

// Wrap creates a BuildError that wraps an existing error.
func Wrap(err error, category Category, message string) *BuildError {
	return &BuildError{Category: category, Message: message, Cause: err}
}

// GetCategory classifies an error, unwrapping as needed. An explicit
// BuildError category wins; the pipeline's typed errors map to their
// user-facing categories; everything else is internal.
func GetCategory(err error) Category {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Category
	}

	var (
		loadErr  *config.LoadError
		fmErr    *document.FrontMatterError
		fieldErr *fields.ParseError
		pagErr   *paginate.ConfigurationError
	)
	switch {
	case errors.As(err, &loadErr), errors.As(err, &pagErr):
		return CategoryConfig
	case errors.As(err, &fmErr):
		return CategoryFrontMat
	case errors.As(err, &fieldErr):
		return CategoryField
	}
	return CategoryInternal
}

// ExitCode maps an error category to a process exit code for the CLI.
// User-correctable input problems exit 2, everything else 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch GetCategory(err) {
	case CategoryConfig, CategoryFrontMat, CategoryField:
		return 2
	default:
		return 1
	}
}
