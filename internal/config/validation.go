package config

import (
	"regexp"
	"strings"

	aerrors "git.home.luguber.info/inful/assetforge/internal/errors"
)

// Validate checks the configuration for internal consistency. Called after
// ApplyDefaults, so zero values for defaulted fields are already filled.
func (c *Config) Validate() error {
	if c.Theme == "" && len(c.Static) == 0 {
		return aerrors.ValidationFailed("theme", "at least one of theme or static roots is required")
	}
	if c.Output.Directory == "" {
		return aerrors.ValidationFailed("output.directory", "must not be empty")
	}

	for i := range c.CustomWriters {
		if err := c.CustomWriters[i].validate(); err != nil {
			return err
		}
	}
	return nil
}

func (s *WriterSpec) validate() error {
	if s.Name == "" {
		return aerrors.ValidationFailed("custom_writers.name", "must not be empty")
	}
	if len(s.Extensions) == 0 {
		return aerrors.ValidationFailed("custom_writers.extensions", "must not be empty").
			WithContext("writer", s.Name)
	}
	for _, ext := range s.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return aerrors.ValidationFailed("custom_writers.extensions", "extensions start with a dot").
				WithContext("writer", s.Name).
				WithContext("extension", ext)
		}
	}
	if s.Target != "" && !strings.HasPrefix(s.Target, ".") {
		return aerrors.ValidationFailed("custom_writers.target", "target extension starts with a dot").
			WithContext("writer", s.Name)
	}
	if len(s.Command) == 0 {
		return aerrors.ValidationFailed("custom_writers.command", "must not be empty").
			WithContext("writer", s.Name)
	}
	if s.Uses != "" {
		re, err := regexp.Compile(s.Uses)
		if err != nil {
			return aerrors.ValidationFailed("custom_writers.uses", "invalid regular expression").
				WithContext("writer", s.Name).
				WithContext("error", err.Error())
		}
		if re.SubexpIndex("file") < 0 {
			return aerrors.ValidationFailed("custom_writers.uses", "pattern needs a named group \"file\"").
				WithContext("writer", s.Name)
		}
	}
	return nil
}
