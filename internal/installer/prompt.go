package installer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the operator a yes/no question.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// LinePrompter reads a one-line answer.
type LinePrompter struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// Confirm writes question and reads one line. End of input without an
// answer declines.
func (p *LinePrompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.Out, "%s [Y/n] ", question)

	// Shared across calls: input buffered now belongs to later prompts.
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return false, fmt.Errorf("failed to read answer: %w", err)
		}
		if line == "" {
			fmt.Fprintln(p.Out)
			return false, nil
		}
	}
	return IsAffirmative(line), nil
}

// IsAffirmative reports whether answer accepts a confirmation prompt.
// An empty answer accepts.
func IsAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y", "yes":
		return true
	}
	return false
}
