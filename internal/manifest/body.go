package manifest

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/piraterna/piratpkg/internal/errors"
)

// splitCommands turns a function body into the command lines sent to the
// sandbox one at a time. Each line is one command unless it leaves a
// statement open (if/fi, loops, heredocs, open quotes, trailing backslash), in which
// case following lines are joined until the statement is complete.
func splitCommands(function, body string) ([]string, error) {
	var (
		commands []string
		pending  []string
		lastErr  error
	)

	for _, line := range strings.Split(body, "\n") {
		if len(pending) == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		pending = append(pending, line)

		text := strings.Join(pending, "\n")
		file, err := syntax.NewParser().Parse(strings.NewReader(text+"\n"), function)
		if err != nil {
			lastErr = err
			continue
		}
		lastErr = nil
		pending = pending[:0]

		// Comment-only lines produce no statements.
		if len(file.Stmts) == 0 {
			continue
		}
		commands = append(commands, strings.TrimSpace(text))
	}

	if len(pending) > 0 {
		if syntax.IsIncomplete(lastErr) {
			return nil, errors.IncompleteStatement(function, lastErr)
		}
		return nil, errors.Wrap(errors.ExitParseError, fmt.Sprintf("function %q has invalid shell syntax", function), lastErr)
	}
	return commands, nil
}
