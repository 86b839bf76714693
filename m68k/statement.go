package m68k

import "strings"

// statement is the syntactic structure of one source line.
type statement struct {
	label    string
	mnemonic string // As written, including any size suffix
	operands string
}

// parseStatement splits a line into label, mnemonic and operand field,
// discarding comments.
func parseStatement(text string) statement {
	text = stripComment(text)
	if strings.TrimSpace(text) == "" {
		return statement{}
	}

	var st statement
	rest := text
	if !isBlank(text[0]) {
		end := strings.IndexAny(text, " \t")
		if end < 0 {
			end = len(text)
		}
		field := text[:end]
		rest = text[end:]
		if i := strings.IndexByte(field, ':'); i >= 0 {
			rest = field[i+1:] + rest
			field = field[:i]
		}
		st.label = field
	}

	rest = strings.TrimLeft(rest, " \t")
	end := strings.IndexAny(rest, " \t")
	if end < 0 {
		end = len(rest)
	}
	st.mnemonic = rest[:end]
	st.operands = operandField(rest[end:])
	return st
}

// stripComment removes a ';' comment (outside quotes) or a whole-line '*'
// comment.
func stripComment(text string) string {
	if strings.HasPrefix(strings.TrimLeft(text, " \t"), "*") {
		return ""
	}
	var quote byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ';':
			return text[:i]
		}
	}
	return text
}

// operandField returns the operand field at the start of s. The field ends
// at the first whitespace outside quotes and parentheses that is not next
// to a comma; anything after it is an unmarked comment.
func operandField(s string) string {
	s = strings.TrimLeft(s, " \t")
	var quote byte
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case isBlank(c) && depth == 0:
			if i > 0 && s[i-1] == ',' {
				continue
			}
			next := strings.TrimLeft(s[i:], " \t")
			if strings.HasPrefix(next, ",") {
				continue
			}
			return s[:i]
		}
	}
	return s
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// splitMnemonic splits "move.w" into "move" and SizeWord.
func splitMnemonic(s string) (string, Size, bool) {
	name, suffix, _ := strings.Cut(strings.ToLower(s), ".")
	size, ok := ParseSize(suffix)
	return name, size, ok
}
