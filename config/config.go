package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ParseConfig holds the dialect toggles consulted by the lexer and parsers.
//
// A ParseConfig is read-only once handed to a parse call, so a single value
// may be shared by any number of concurrent parses. A nil *ParseConfig means
// Default().
type ParseConfig struct {
	// RequireQuotedIdentifiers rejects bare identifiers in name positions;
	// every table, column and index name must be backtick-quoted.
	RequireQuotedIdentifiers bool `yaml:"require_quoted_identifiers"`

	// LowerCaseTableNames folds schema and table names to lower case while
	// parsing, the way a server running lower_case_table_names=1 does.
	LowerCaseTableNames bool `yaml:"lower_case_table_names"`

	// AnsiQuotes treats "text" as a quoted identifier instead of a string.
	AnsiQuotes bool `yaml:"ansi_quotes"`

	// NoBackslashEscapes makes backslash an ordinary character inside string
	// literals.
	NoBackslashEscapes bool `yaml:"no_backslash_escapes"`
}

// Default returns the default MySQL dialect: quoting optional, identifiers
// kept as written, backslash escapes on.
func Default() *ParseConfig {
	return &ParseConfig{}
}

// Load parses a ParseConfig from YAML. Keys that are absent keep their
// default values.
//
// Example:
//
//	cfg, err := config.Load(strings.NewReader("ansi_quotes: true\n"))
func Load(r io.Reader) (*ParseConfig, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil {
		if err == io.EOF {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "failed to unmarshal parse config")
	}
	return cfg, nil
}

// LoadFile reads a YAML ParseConfig from path.
func LoadFile(path string) (*ParseConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open parse config %s", path)
	}
	defer f.Close()
	return Load(f)
}

// OrDefault returns c, or Default() when c is nil.
func (c *ParseConfig) OrDefault() *ParseConfig {
	if c == nil {
		return Default()
	}
	return c
}
