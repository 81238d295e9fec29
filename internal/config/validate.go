package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation errors.
var (
	ErrNoSource              = errors.New("source is not set")
	ErrEmptySource           = errors.New("source path is empty")
	ErrSourceMissing         = errors.New("source does not exist")
	ErrNoDestination         = errors.New("destination is not set")
	ErrDestinationIsSource   = errors.New("destination is a source")
	ErrDestinationNotDir     = errors.New("destination is not a directory")
	ErrNoTemplateConfig      = errors.New("template config is not set")
	ErrTemplateConfigMissing = errors.New("template config does not exist")
	ErrInvalidPattern        = errors.New("invalid glob pattern")
	ErrInvalidBaseURL        = errors.New("base URL is not a valid URL")
	ErrInvalidLogLevel       = errors.New("log level must be debug, info, warn or error")
	ErrInvalidSetting        = errors.New("invalid setting")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError wraps a validation error with context.
type ValidationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks s for required values, well-formed options and paths that
// must exist on disk.
func Validate(s *Settings) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return err
	}

	for _, src := range s.Source {
		if _, err := os.Stat(src); err != nil {
			return &ValidationError{
				Field:   FlagSource,
				Value:   src,
				Message: "does not exist",
				Err:     ErrSourceMissing,
			}
		}
	}

	dest := filepath.Clean(s.Destination)
	for _, src := range s.Source {
		if filepath.Clean(src) == dest {
			return &ValidationError{
				Field:   FlagDestination,
				Value:   s.Destination,
				Message: "cannot be the same as a source",
				Err:     ErrDestinationIsSource,
			}
		}
	}
	if info, err := os.Stat(dest); err == nil && !info.IsDir() {
		return &ValidationError{
			Field:   FlagDestination,
			Value:   s.Destination,
			Message: "is not a directory",
			Err:     ErrDestinationNotDir,
		}
	}

	if s.TemplateConfig != BuiltinTemplateConfig {
		if info, err := os.Stat(s.TemplateConfig); err != nil || info.IsDir() {
			return &ValidationError{
				Field:   FlagTemplateConfig,
				Value:   s.TemplateConfig,
				Message: "does not exist",
				Err:     ErrTemplateConfigMissing,
			}
		}
	}

	if err := ValidatePatterns(FlagExclude, s.Exclude); err != nil {
		return err
	}
	return ValidatePatterns(FlagSkipDocPath, s.SkipDocPath)
}

// ValidatePatterns checks that every pattern is a well-formed glob.
func ValidatePatterns(field string, patterns []string) error {
	for i, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil || p == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Value:   p,
				Message: "must be a valid glob pattern",
				Err:     ErrInvalidPattern,
			}
		}
	}
	return nil
}

// fieldError translates a struct validation failure into a ValidationError
// naming the flag the user would set.
func fieldError(fe validator.FieldError) error {
	name, _, element := strings.Cut(fe.StructField(), "[")
	switch name {
	case "Source":
		if element {
			return &ValidationError{Field: FlagSource, Message: "cannot contain an empty path", Err: ErrEmptySource}
		}
		return &ValidationError{
			Field:   FlagSource,
			Message: "is not set, use --source or the source option of the config file",
			Err:     ErrNoSource,
		}
	case "Destination":
		return &ValidationError{
			Field:   FlagDestination,
			Message: "is not set, use --destination or the destination option of the config file",
			Err:     ErrNoDestination,
		}
	case "TemplateConfig":
		return &ValidationError{Field: FlagTemplateConfig, Message: "is not set", Err: ErrNoTemplateConfig}
	case "BaseURL":
		return &ValidationError{
			Field:   FlagBaseURL,
			Value:   fmt.Sprint(fe.Value()),
			Message: "must be an absolute URL",
			Err:     ErrInvalidBaseURL,
		}
	case "LogLevel":
		return &ValidationError{
			Field:   FlagLogLevel,
			Value:   fmt.Sprint(fe.Value()),
			Message: "must be debug, info, warn or error",
			Err:     ErrInvalidLogLevel,
		}
	}
	return &ValidationError{Field: fe.Field(), Message: fe.Error(), Err: ErrInvalidSetting}
}
