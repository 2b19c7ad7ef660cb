package stepfile

import (
	"bufio"
	"io"
	"strings"
)

const maxLineSize = 64 * 1024 * 1024

// splitStatements reads r line by line and returns the logical statements
// it contains, without their terminating `;`. Whitespace runs outside quoted
// strings collapse into one space; text inside quotes is kept verbatim. Text
// after the last terminator is returned as rest.
func splitStatements(r io.Reader) (statements []string, rest string, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		out       []string
		cur       strings.Builder
		inQuote   bool
		inComment bool
	)
	flush := func() {
		s := strings.TrimSpace(cur.String())
		if s != "" {
			out = append(out, s)
		}
		cur.Reset()
	}
	writeSpace := func() {
		if cur.Len() > 0 && !strings.HasSuffix(cur.String(), " ") {
			cur.WriteByte(' ')
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		for i := 0; i < len(line); i++ {
			c := line[i]
			switch {
			case inComment:
				if c == '*' && i+1 < len(line) && line[i+1] == '/' {
					inComment = false
					i++
				}
			case inQuote:
				cur.WriteByte(c)
				if c == '\'' {
					// '' is an escaped quote, not the end of the string.
					if i+1 < len(line) && line[i+1] == '\'' {
						cur.WriteByte('\'')
						i++
						continue
					}
					inQuote = false
				}
			case c == '\'':
				inQuote = true
				cur.WriteByte(c)
			case c == '/' && i+1 < len(line) && line[i+1] == '*':
				inComment = true
				i++
			case c == ';':
				flush()
			case c == ' ' || c == '\t' || c == '\r':
				writeSpace()
			default:
				cur.WriteByte(c)
			}
		}
		if !inQuote {
			writeSpace()
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, "", err
	}
	return out, strings.TrimSpace(cur.String()), nil
}
