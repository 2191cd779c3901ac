package expr

import (
	"bytes"
	"strings"

	"github.com/araddon/sqlparse/config"
	"github.com/araddon/sqlparse/lex"
)

// DialectWriter is the buffer nodes and statements render into.  Names and
// string literals are written so that they lex back to the same values
// under its ParseConfig:
//
//   - RequireQuotedIdentifiers: every name is backtick quoted
//   - LowerCaseTableNames: table and schema names holding upper case are
//     quoted, so they are not folded on the way back in
//   - NoBackslashEscapes: strings escape nothing but the quote mark
type DialectWriter struct {
	bytes.Buffer
	cfg *config.ParseConfig
}

// NewDialectWriter creates a writer for the dialect cfg, nil is Default().
func NewDialectWriter(cfg *config.ParseConfig) *DialectWriter {
	return &DialectWriter{cfg: cfg.OrDefault()}
}

// NewDefaultWriter writes for the default dialect.
func NewDefaultWriter() *DialectWriter {
	return NewDialectWriter(nil)
}

// Config the dialect being written.
func (w *DialectWriter) Config() *config.ParseConfig { return w.cfg }

// WriteIdentity writes a column, index, alias or other name.
func (w *DialectWriter) WriteIdentity(name string) {
	if w.cfg.RequireQuotedIdentifiers {
		w.WriteString(lex.BacktickQuote(name))
		return
	}
	w.WriteString(lex.QuoteIdentifier(name))
}

// WriteTableIdentity writes a schema or table name.
func (w *DialectWriter) WriteTableIdentity(name string) {
	if w.cfg.LowerCaseTableNames && name != strings.ToLower(name) {
		w.WriteString(lex.BacktickQuote(name))
		return
	}
	w.WriteIdentity(name)
}

// WriteLiteral writes val as a single quoted string literal.
func (w *DialectWriter) WriteLiteral(val string) {
	if w.cfg.NoBackslashEscapes {
		w.WriteByte('\'')
		w.WriteString(strings.Replace(val, "'", "''", -1))
		w.WriteByte('\'')
		return
	}
	LiteralQuoteEscapeBuf(&w.Buffer, val)
}

// sub is an empty writer for the same dialect.
func (w *DialectWriter) sub() *DialectWriter {
	return &DialectWriter{cfg: w.cfg}
}

// WriteNode renders n into w; fr is the fingerprint rune, 0 for the canonical
// text.
func WriteNode(w *DialectWriter, n Node, fr rune) {
	n.writeBuf(w, fr)
}

// Format is the canonical text of n written for the dialect cfg.  Parsing
// the text with the same cfg yields an equal tree.
func Format(n Node, cfg *config.ParseConfig) string {
	w := NewDialectWriter(cfg)
	n.writeBuf(w, 0)
	return w.String()
}
