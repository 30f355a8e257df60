package filerenamer

import (
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

type Validator interface {
	ValidateRules(rules Rules) error
	ValidateDirectory(path string) error
	ValidateName(name string) error
	ValidatePatterns(patterns []string) error
}

type DefaultValidator struct {
	fs afero.Fs
}

func NewDefaultValidator(fs afero.Fs) *DefaultValidator {
	return &DefaultValidator{
		fs: fs,
	}
}

func (v *DefaultValidator) ValidateRules(rules Rules) error {
	return ValidateRules(rules)
}

// ValidateRules checks the values a Rules literal can hold but the pipeline
// cannot honour.
func ValidateRules(rules Rules) error {
	if rules.PaddingEnabled && rules.PaddingWidth < 0 {
		return errors.Errorf("%w: padding width %d is negative", ErrInvalidConfig, rules.PaddingWidth)
	}

	if ext := rules.Extension(); strings.ContainsAny(ext, `/\`) {
		return errors.Errorf("%w: extension %q contains a path separator", ErrInvalidConfig, ext)
	}

	return nil
}

func (v *DefaultValidator) ValidateDirectory(path string) error {
	if path == "" {
		return errors.Errorf("%w: path cannot be empty", ErrInvalidDirectory)
	}

	info, err := v.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("%w: %s does not exist", ErrInvalidDirectory, path)
		}
		return errors.Errorf("%w: %s: %s", ErrInvalidDirectory, path, err)
	}

	if !info.IsDir() {
		return errors.Errorf("%w: %s is not a directory", ErrInvalidDirectory, path)
	}

	return nil
}

// ValidateName rejects target names that would escape the destination
// directory or cannot name a file at all.
func (v *DefaultValidator) ValidateName(name string) error {
	switch {
	case name == "":
		return errors.Errorf("%w: name is empty", ErrInvalidName)
	case name == "." || name == "..":
		return errors.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return errors.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

func (v *DefaultValidator) ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("%w: bad exclude pattern %q", ErrInvalidConfig, pattern)
		}
	}
	return nil
}
