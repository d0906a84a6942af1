package manifest

import "strings"

// braceScanner tracks block depth across the lines of a function block.
// Braces inside single or double quotes, after a backslash, inside a '#'
// comment or inside a heredoc body do not count. Quote state carries over
// to the next line.
type braceScanner struct {
	depth int
	quote byte

	// heredocs holds the delimiters of heredocs opened on earlier lines
	// and not yet terminated, in the order their bodies appear.
	heredocs []string
}

func newBraceScanner() *braceScanner {
	return &braceScanner{depth: 1}
}

// heredocLine consumes line if it belongs to an open heredoc body. end is
// set when line is the delimiter that closes the heredoc.
func (s *braceScanner) heredocLine(line string) (consumed, end bool) {
	if len(s.heredocs) == 0 {
		return false, false
	}
	if strings.TrimSpace(line) == s.heredocs[0] {
		s.heredocs = s.heredocs[1:]
		return true, true
	}
	return true, false
}

// scan consumes line and returns the index of the brace that closes the
// block, or -1 if the block is still open at the end of the line.
func (s *braceScanner) scan(line string) int {
	escaped := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if escaped {
			escaped = false
			continue
		}

		switch s.quote {
		case '\'':
			if c == '\'' {
				s.quote = 0
			}
			continue
		case '"':
			switch c {
			case '\\':
				escaped = true
			case '"':
				s.quote = 0
			}
			continue
		}

		switch c {
		case '\\':
			escaped = true
		case '\'', '"':
			s.quote = c
		case '#':
			if i == 0 || isWordBreak(line[i-1]) {
				return -1
			}
		case '<':
			if strings.HasPrefix(line[i:], "<<<") {
				i += 2
				continue
			}
			if delim, next, ok := heredocDelimiter(line, i); ok {
				s.heredocs = append(s.heredocs, delim)
				i = next - 1
			}
		case '{':
			s.depth++
		case '}':
			s.depth--
			if s.depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isWordBreak(c byte) bool {
	switch c {
	case ' ', '\t', ';', '&', '|', '(', ')':
		return true
	}
	return false
}

// heredocDelimiter parses a heredoc operator ("<<WORD", "<<-WORD",
// "<<'WORD'", "<<\"WORD\"") starting at line[i]. It returns the
// unquoted delimiter and the index just past it. Arithmetic shifts by a
// number are not heredocs.
func heredocDelimiter(line string, i int) (string, int, bool) {
	if !strings.HasPrefix(line[i:], "<<") {
		return "", 0, false
	}
	j := i + 2
	if j < len(line) && line[j] == '-' {
		j++
	}
	for j < len(line) && (line[j] == ' ' || line[j] == '\t') {
		j++
	}

	var word strings.Builder
	quoted := false
	for j < len(line) {
		c := line[j]
		if c == '\'' || c == '"' {
			end := strings.IndexByte(line[j+1:], c)
			if end < 0 {
				return "", 0, false
			}
			word.WriteString(line[j+1 : j+1+end])
			j += end + 2
			quoted = true
			continue
		}
		if c == '\\' && j+1 < len(line) {
			word.WriteByte(line[j+1])
			j += 2
			quoted = true
			continue
		}
		if c == ' ' || c == '\t' || c == ';' || c == '&' || c == '|' || c == '(' || c == ')' || c == '<' || c == '>' {
			break
		}
		word.WriteByte(c)
		j++
	}

	delim := word.String()
	if delim == "" || (!quoted && delim[0] >= '0' && delim[0] <= '9') {
		return "", 0, false
	}
	return delim, j, true
}
