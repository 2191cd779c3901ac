package expr

import (
	"bytes"
	"strings"
)

// LeftRight Return left, right values if is of form `table.column`
// also return true/false for if it even has left/right
//
//	LeftRight("users.name")     => "users", "name", true
//	LeftRight("`users`.`name`") => "users", "name", true
//	LeftRight("`users.name`")   => "", "users.name", false
//	LeftRight("name")           => "", "name", false
func LeftRight(val string) (string, string, bool) {
	if strings.HasPrefix(val, "`") {
		for i := 1; i < len(val); i++ {
			if val[i] != '`' {
				continue
			}
			if i+1 < len(val) && val[i+1] == '`' {
				i++
				continue
			}
			if i+1 < len(val) && val[i+1] == '.' {
				return identTrim(val[:i+1]), identTrim(val[i+2:]), true
			}
			break
		}
		return "", identTrim(val), false
	}
	if idx := strings.IndexByte(val, '.'); idx > 0 {
		return val[:idx], identTrim(val[idx+1:]), true
	}
	return "", identTrim(val), false
}

func identTrim(ident string) string {
	if len(ident) > 1 && ident[0] == '`' && ident[len(ident)-1] == '`' {
		return strings.Replace(ident[1:len(ident)-1], "``", "`", -1)
	}
	return ident
}

// LiteralQuoteEscape single-quotes a string value, escaping anything the
// lexer would not read back as the same characters.
//
//	LiteralQuoteEscape("item's")  => 'item''s'
//	LiteralQuoteEscape(`a\b`)     => 'a\\b'
//	LiteralQuoteEscape("a\nb")    => 'a\nb'
func LiteralQuoteEscape(val string) string {
	var buf bytes.Buffer
	LiteralQuoteEscapeBuf(&buf, val)
	return buf.String()
}

// LiteralQuoteEscapeBuf see LiteralQuoteEscape
func LiteralQuoteEscapeBuf(buf *bytes.Buffer, val string) {
	buf.WriteByte('\'')
	last := 0
	for i := 0; i < len(val); i++ {
		var esc string
		switch val[i] {
		case '\'':
			esc = "''"
		case '\\':
			esc = `\\`
		case '\n':
			esc = `\n`
		case '\r':
			esc = `\r`
		case '\t':
			esc = `\t`
		case 0:
			esc = `\0`
		case '\b':
			esc = `\b`
		case 0x1a:
			esc = `\Z`
		default:
			continue
		}
		buf.WriteString(val[last:i])
		buf.WriteString(esc)
		last = i + 1
	}
	buf.WriteString(val[last:])
	buf.WriteByte('\'')
}
