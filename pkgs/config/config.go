// Package config loads rfparse project configuration.
//
// A project is configured with rfparse.yaml, rfparse.yml or rfparse.toml.
// Every file is validated against an embedded JSON Schema before it is
// decoded, so both formats accept exactly the same keys.
package config

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/aledsdavies/rfparse/internal/ctxlog"
	"github.com/aledsdavies/rfparse/pkgs/lexer"
	"github.com/aledsdavies/rfparse/pkgs/model"
	"github.com/aledsdavies/rfparse/pkgs/parser"
)

// FileNames are the config file names searched for, in priority order.
var FileNames = []string{"rfparse.yaml", "rfparse.yml", "rfparse.toml"}

// SupportedMajor is the only config major version understood.
const SupportedMajor = "v1"

//go:embed schema.json
var schemaJSON []byte

// Config is a decoded project configuration.
type Config struct {
	Version          string   `json:"version"`
	Languages        []string `json:"languages"`
	DataOnly         bool     `json:"data_only"`
	ResourcePatterns []string `json:"resource_patterns"`
	Format           string   `json:"format"`
	Color            string   `json:"color"`

	// Path is the file the config was loaded from, empty for defaults.
	Path string `json:"-"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Version:          "1.0.0",
		ResourcePatterns: []string{"*.resource"},
		Format:           "yaml",
		Color:            "auto",
	}
}

// Discover searches dir and its parents for a config file. It returns the
// defaults when none exists.
func Discover(ctx context.Context, dir string) (*Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return Load(ctx, path)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			ctxlog.FromContext(ctx).Debug("no config file found, using defaults")
			return Default(), nil
		}
		dir = parent
	}
}

// Load reads, validates and decodes a config file. The format is chosen by
// extension.
func Load(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		var table map[string]any
		err = toml.Unmarshal(data, &table)
		raw = table
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg.Path = path
	ctxlog.FromContext(ctx).Debug("loaded config", "path", path, "version", cfg.Version)
	return cfg, nil
}

// Parse validates and decodes YAML config data.
func Parse(data []byte) (*Config, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return decode(raw)
}

// decode normalizes raw through JSON so YAML and TOML values reach the
// schema with the same types.
func decode(raw any) (*Config, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var instance any
	dec := json.NewDecoder(bytes.NewReader(normalized))
	dec.UseNumber()
	if err := dec.Decode(&instance); err != nil {
		return nil, err
	}
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(instance); err != nil {
		return nil, convertValidationError(err)
	}

	cfg := Default()
	if err := json.Unmarshal(normalized, cfg); err != nil {
		return nil, err
	}
	if major := semver.Major(canonicalVersion(cfg.Version)); major != SupportedMajor {
		return nil, fmt.Errorf("unsupported config version %q, expected %s.x", cfg.Version, strings.TrimPrefix(SupportedMajor, "v"))
	}
	for _, pattern := range cfg.ResourcePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("resource pattern %q: %w", pattern, err)
		}
	}
	return cfg, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if compiler.Formats == nil {
		compiler.Formats = make(map[string]func(interface{}) bool)
	}
	compiler.Formats["semver"] = isSemver

	url := "schema://rfparse.json"
	if err := compiler.AddResource(url, bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(url)
}

// isSemver accepts versions with or without the "v" prefix.
func isSemver(v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	return semver.IsValid(canonicalVersion(s))
}

func canonicalVersion(s string) string {
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	return s
}

// convertValidationError flattens schema errors into one message per
// offending value.
func convertValidationError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var messages []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "/"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return errors.New(strings.Join(messages, "; "))
}

// FileKind decides how path is parsed. Init files are recognized by name,
// resource files by the configured patterns.
func (c *Config) FileKind(path string) lexer.FileKind {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "__init__.") {
		return lexer.InitFile
	}
	for _, pattern := range c.ResourcePatterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return lexer.ResourceFile
		}
	}
	return lexer.SuiteFile
}

// ParserOpts translates the config into parser options.
func (c *Config) ParserOpts() []parser.ParserOpt {
	var opts []parser.ParserOpt
	if len(c.Languages) > 0 {
		opts = append(opts, parser.WithLanguages(c.Languages...))
	}
	if c.DataOnly {
		opts = append(opts, parser.WithDataOnly())
	}
	return opts
}

// GetModel parses path as the kind FileKind picks.
func (c *Config) GetModel(path string, opts ...parser.ParserOpt) (*model.File, error) {
	opts = append(c.ParserOpts(), opts...)
	source := parser.FromPath(path)
	switch c.FileKind(path) {
	case lexer.ResourceFile:
		return parser.GetResourceModel(source, opts...)
	case lexer.InitFile:
		return parser.GetInitModel(source, opts...)
	}
	return parser.GetModel(source, opts...)
}

// UseColor resolves the color setting. "auto" defers to NO_COLOR and
// whether output is a terminal.
func (c *Config) UseColor(terminal bool) bool {
	switch c.Color {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return terminal
}
