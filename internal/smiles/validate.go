// internal/smiles/validate.go
package smiles

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformed = errors.New("malformed SMILES")
	ErrDummyAtom = errors.New("SMILES contains dummy atom")
)

const organicChars = "BCNOPSFIbcnops"

// Validate performs a lexical check of a SMILES string: allowed characters,
// bracket atoms, branch balance and ring-closure pairing. It does not
// perceive chemistry; that is the matcher backend's job. Dummy atoms
// (`*`, atomic number 0) are rejected.
func Validate(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty", ErrMalformed)
	}

	depth := 0
	open := map[string]bool{}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '[':
			end := strings.IndexByte(s[i+1:], ']')
			if end < 0 {
				return fmt.Errorf("%w: unterminated bracket atom at %d", ErrMalformed, i)
			}
			body := s[i+1 : i+1+end]
			if body == "" || strings.ContainsRune(body, '[') {
				return fmt.Errorf("%w: bad bracket atom at %d", ErrMalformed, i)
			}
			if isDummyBracket(body) {
				return fmt.Errorf("%w: [%s]", ErrDummyAtom, body)
			}
			i += end + 1
		case c == ']':
			return fmt.Errorf("%w: unexpected ']' at %d", ErrMalformed, i)
		case c == '(':
			if i == 0 {
				return fmt.Errorf("%w: branch before first atom", ErrMalformed)
			}
			depth++
		case c == ')':
			depth--
			if depth < 0 {
				return fmt.Errorf("%w: unbalanced ')' at %d", ErrMalformed, i)
			}
		case c == '*':
			return fmt.Errorf("%w: '*' at %d", ErrDummyAtom, i)
		case c == '%':
			if i+2 >= len(s) || !isDigit(s[i+1]) || !isDigit(s[i+2]) {
				return fmt.Errorf("%w: bad ring label at %d", ErrMalformed, i)
			}
			toggle(open, s[i:i+3])
			i += 2
		case isDigit(c):
			toggle(open, s[i:i+1])
		case c == 'C' && i+1 < len(s) && s[i+1] == 'l',
			c == 'B' && i+1 < len(s) && s[i+1] == 'r':
			i++
		case strings.IndexByte(organicChars, c) >= 0:
		case strings.IndexByte("-=#$:/\\.", c) >= 0:
		default:
			return fmt.Errorf("%w: unexpected %q at %d", ErrMalformed, c, i)
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w: %d unclosed branch(es)", ErrMalformed, depth)
	}
	if len(open) > 0 {
		return fmt.Errorf("%w: %d unclosed ring(s)", ErrMalformed, len(open))
	}
	return nil
}

// isDummyBracket reports whether a bracket atom body is a wildcard or
// atomic number 0 (after an optional isotope prefix).
func isDummyBracket(body string) bool {
	j := 0
	for j < len(body) && isDigit(body[j]) {
		j++
	}
	rest := body[j:]
	if strings.HasPrefix(rest, "*") {
		return true
	}
	if strings.HasPrefix(rest, "#0") {
		return len(rest) == 2 || !isDigit(rest[2])
	}
	return false
}

func toggle(open map[string]bool, label string) {
	if open[label] {
		delete(open, label)
		return
	}
	open[label] = true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
