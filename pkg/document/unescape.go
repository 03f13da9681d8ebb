package document

import (
	"fmt"
	"strings"
)

// UnescapeError reports an invalid UTF-16 escape sequence inside a JSON
// string body: a lone low surrogate, or a high surrogate not followed
// by a low surrogate.
type UnescapeError struct {
	Index  int    // 1-based character index counting the opening quote
	Escape string // the offending four hex digits, as written
	Lone   bool   // lone low surrogate (true) or unmatched high (false)
}

func (e *UnescapeError) Error() string {
	if e.Lone {
		return fmt.Sprintf("unescaping error at char %d: unexpected low surrogate %q", e.Index, "\\u"+e.Escape)
	}
	return fmt.Sprintf("unescaping error at char %d: high surrogate %q not followed by low surrogate", e.Index, "\\u"+e.Escape)
}

// SafeUnescape decodes the body of a JSON string (the text between the
// quotes) into display form: standard escapes and \uXXXX sequences are
// decoded, surrogate pairs are combined, and control characters are
// kept escaped so the result stays printable. The short escapes \f \n
// \r \t decode to their literal characters; the renderer is responsible
// for those. Escaped controls keep their original hex digits.
func SafeUnescape(s string) (string, error) {
	return unescapeBody(s, true)
}

// Unescape decodes the body of a JSON string completely, control
// characters included. Used when the caller needs the true string
// value (clipboard, for instance) rather than a printable form.
func Unescape(s string) (string, error) {
	return unescapeBody(s, false)
}

// SafeUnescapeOr is SafeUnescape falling back to the input unchanged
// when decoding fails. Display paths use it so a malformed escape
// (which a validating parser should never produce) still renders.
func SafeUnescapeOr(s string) string {
	out, err := unescapeBody(s, true)
	if err != nil {
		return s
	}
	return out
}

// IsControlRune matches the Unicode C0 and C1 control ranges plus DEL.
// Codepoints in these ranges have no printable form; the renderer shows
// them as a placeholder.
func IsControlRune(r rune) bool {
	return (r >= 0x00 && r <= 0x1F) || (r >= 0x7F && r <= 0x9F)
}

func unescapeBody(s string, escapeControls bool) (string, error) {
	var out strings.Builder
	out.Grow(len(s))

	rs := []rune(s)
	i := 0
	// Character index for error reporting, 1-based and counting the
	// opening quote the caller stripped.
	index := 1

	for i < len(rs) {
		ch := rs[i]
		i++
		index++
		if ch != '\\' {
			if escapeControls && IsControlRune(ch) {
				fmt.Fprintf(&out, "\\u00%02X", ch)
			} else {
				out.WriteRune(ch)
			}
			continue
		}
		if i >= len(rs) {
			// Trailing lone backslash. A validating tokenizer never
			// produces one; keep it rather than panic.
			out.WriteRune('\\')
			break
		}

		esc := rs[i]
		i++
		index++

		switch esc {
		case '"':
			out.WriteRune('"')
		case '\\':
			out.WriteRune('\\')
		case '/':
			out.WriteRune('/')
		case 'b':
			// Backspace is a control character with no printable form.
			if escapeControls {
				out.WriteString(`\b`)
			} else {
				out.WriteRune(0x08)
			}
		case 'f':
			out.WriteRune('\f')
		case 'n':
			out.WriteRune('\n')
		case 'r':
			out.WriteRune('\r')
		case 't':
			out.WriteRune('\t')
		case 'u':
			cp, digits, ok := hex4(rs, i)
			if !ok {
				out.WriteString("\\u")
				continue
			}
			i += 4
			index += 4

			switch {
			case cp >= 0xD800 && cp <= 0xDBFF: // high surrogate
				hs := cp - 0xD800
				if i+1 >= len(rs) || rs[i] != '\\' || rs[i+1] != 'u' {
					return "", &UnescapeError{Index: index, Escape: digits}
				}
				i += 2
				index += 2
				lo, _, ok := hex4(rs, i)
				if !ok {
					return "", &UnescapeError{Index: index, Escape: digits}
				}
				i += 4
				index += 4
				if lo < 0xDC00 || lo > 0xDFFF {
					return "", &UnescapeError{Index: index, Escape: digits}
				}
				out.WriteRune(rune(0x10000 + hs*0x400 + (lo - 0xDC00)))
			case cp >= 0xDC00 && cp <= 0xDFFF: // low surrogate
				return "", &UnescapeError{Index: index - 6, Escape: digits, Lone: true}
			default:
				r := rune(cp)
				if escapeControls && IsControlRune(r) {
					// Keep the escape exactly as written.
					out.WriteString("\\u")
					out.WriteString(digits)
				} else {
					out.WriteRune(r)
				}
			}
		default:
			// Unknown escape; a validating tokenizer rejects these, so
			// pass the pair through untouched.
			out.WriteRune('\\')
			out.WriteRune(esc)
		}
	}
	return out.String(), nil
}

// hex4 reads four hex digits from rs at i, returning the value and the
// digits as written.
func hex4(rs []rune, i int) (uint32, string, bool) {
	if i+4 > len(rs) {
		return 0, "", false
	}
	var v uint32
	for k := 0; k < 4; k++ {
		d := hexVal(rs[i+k])
		if d < 0 {
			return 0, "", false
		}
		v = v<<4 | uint32(d)
	}
	return v, string(rs[i : i+4]), true
}

func hexVal(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	}
	return -1
}
