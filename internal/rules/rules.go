// Package rules holds the versioned keyword and pattern tables that drive section
// segmentation and the rule-based evaluators.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Section names a segment recognised by header patterns.
type Section string

const (
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionSkills         Section = "skills"
	SectionProjects       Section = "projects"
	SectionCertifications Section = "certifications"
	SectionSummary        Section = "summary"
)

// Tables is the complete rule set. Slices are ordered: header patterns are tried in
// order and the first matching role wins.
type Tables struct {
	Version         string          `mapstructure:"version" json:"version"`
	Headers         []HeaderPattern `mapstructure:"headers" json:"headers" validate:"required,dive"`
	Roles           []RoleKeywords  `mapstructure:"roles" json:"roles" validate:"dive"`
	FallbackRole    RoleKeywords    `mapstructure:"fallback_role" json:"fallback_role"`
	Cliches         []string        `mapstructure:"cliches" json:"cliches" validate:"dive,required"`
	Buzzwords       []Buzzword      `mapstructure:"buzzwords" json:"buzzwords" validate:"dive"`
	DepthIndicators []string        `mapstructure:"depth_indicators" json:"depth_indicators" validate:"dive,required"`
}

// HeaderPattern maps a section to the regular expression recognising its title line.
type HeaderPattern struct {
	Section Section `mapstructure:"section" json:"section" validate:"oneof=experience education skills projects certifications summary"`
	Pattern string  `mapstructure:"pattern" json:"pattern" validate:"required"`
}

// RoleKeywords lists the keywords an ATS expects for a job role.
type RoleKeywords struct {
	Role     string   `mapstructure:"role" json:"role" validate:"required"`
	Keywords []string `mapstructure:"keywords" json:"keywords" validate:"required,min=1,dive,required"`
}

// Buzzword is a term that must be backed by at least one of the required terms.
type Buzzword struct {
	Term     string   `mapstructure:"term" json:"term" validate:"required"`
	Required []string `mapstructure:"required" json:"required" validate:"required,min=1,dive,required"`
}

// CompiledHeader is a HeaderPattern with its expression compiled.
type CompiledHeader struct {
	Section Section
	Regexp  *regexp.Regexp
}

var validate = validator.New()

// Validate checks table shape and that every header pattern compiles.
func (t Tables) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("invalid rule tables: %w", err)
	}
	if err := validate.Struct(t.FallbackRole); err != nil {
		return fmt.Errorf("invalid fallback role: %w", err)
	}
	_, err := t.CompileHeaders()
	return err
}

// CompileHeaders compiles the header patterns keeping their priority order.
func (t Tables) CompileHeaders() ([]CompiledHeader, error) {
	compiled := make([]CompiledHeader, 0, len(t.Headers))
	for _, h := range t.Headers {
		re, err := regexp.Compile(h.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile %s header pattern: %w", h.Section, err)
		}
		compiled = append(compiled, CompiledHeader{Section: h.Section, Regexp: re})
	}
	return compiled, nil
}

// ResolveRole returns the first role whose name is contained in jobRole, ignoring
// case, or the fallback role when none matches.
func (t Tables) ResolveRole(jobRole string) RoleKeywords {
	lower := strings.ToLower(jobRole)
	for _, r := range t.Roles {
		if strings.Contains(lower, strings.ToLower(r.Role)) {
			return r
		}
	}
	return t.FallbackRole
}

var (
	defaultOnce    sync.Once
	defaultHeaders []CompiledHeader
)

// DefaultHeaders returns the compiled built-in header patterns.
func DefaultHeaders() []CompiledHeader {
	defaultOnce.Do(func() {
		var err error
		defaultHeaders, err = Default().CompileHeaders()
		if err != nil {
			panic(err)
		}
	})
	return defaultHeaders
}

// Load reads a YAML, JSON or TOML table file in the layout printed by the rules
// command. Tables missing from the file keep their built-in values; unknown keys
// are an error.
func Load(path string) (Tables, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Tables{}, errors.New("rules file path is empty")
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Tables{}, fmt.Errorf("reading rules file %q: %w", path, err)
	}

	var loaded Tables
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &loaded,
	})
	if err != nil {
		return Tables{}, err
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return Tables{}, fmt.Errorf("decoding rules file %q: %w", path, err)
	}

	tables := merge(Default(), loaded)
	if err := tables.Validate(); err != nil {
		return Tables{}, fmt.Errorf("rules file %q: %w", path, err)
	}

	return tables, nil
}

func merge(base, override Tables) Tables {
	if override.Version != "" {
		base.Version = override.Version
	}
	if len(override.Headers) > 0 {
		base.Headers = override.Headers
	}
	if len(override.Roles) > 0 {
		base.Roles = override.Roles
	}
	if override.FallbackRole.Role != "" {
		base.FallbackRole = override.FallbackRole
	}
	if len(override.Cliches) > 0 {
		base.Cliches = override.Cliches
	}
	if len(override.Buzzwords) > 0 {
		base.Buzzwords = override.Buzzwords
	}
	if len(override.DepthIndicators) > 0 {
		base.DepthIndicators = override.DepthIndicators
	}
	return base
}
