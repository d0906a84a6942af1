package manifest

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/piraterna/piratpkg/internal/errors"
)

// MaxFunctions bounds how many function blocks a manifest may capture.
const MaxFunctions = 10

// Metadata keys.
const (
	KeyName        = "PACKAGE_NAME"
	KeyDescription = "PACKAGE_DESCRIPTION"
	KeyVersion     = "PACKAGE_VERSION"
	KeyMaintainers = "PACKAGE_MAINTAINERS"
	KeyRedirect    = "REDIRECT"
)

// maxLineLength caps a single manifest line.
const maxLineLength = 1024 * 1024

var keyRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Function is a lifecycle stage bound to the body a manifest gave it.
type Function struct {
	Stage    Stage    `json:"stage" yaml:"stage"`
	Body     string   `json:"body" yaml:"body"`
	Commands []string `json:"commands" yaml:"commands"`
}

// Name returns the function name as written in manifests.
func (f *Function) Name() string {
	return f.Stage.String()
}

// Manifest is the parsed content of one manifest file.
type Manifest struct {
	Name        string
	Description string
	Version     string
	Maintainers string

	// Redirect is set when the file redirected to another address. All
	// other fields are empty in that case.
	Redirect string

	// Functions in the order their blocks appear in the file.
	Functions []*Function

	Env Environment

	// Warnings collects recoverable problems, in file order.
	Warnings []string
}

// Function returns the function bound to stage, or nil.
func (m *Manifest) Function(stage Stage) *Function {
	for _, f := range m.Functions {
		if f.Stage == stage {
			return f
		}
	}
	return nil
}

type openBlock struct {
	name    string
	line    int
	scanner *braceScanner
	body    strings.Builder
}

type parser struct {
	m        *Manifest
	lineNo   int
	captured int
	block    *openBlock
}

// Parse reads a manifest. It stops at the first REDIRECT line and returns
// a Manifest carrying only the redirect target.
func Parse(r io.Reader) (*Manifest, error) {
	p := &parser{m: &Manifest{}}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for sc.Scan() {
		p.lineNo++
		redirected, err := p.line(sc.Text())
		if err != nil {
			return nil, err
		}
		if redirected {
			return p.m, nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ExitParseError, fmt.Sprintf("failed to read manifest at line %d", p.lineNo+1), err)
	}

	if p.block != nil {
		return nil, errors.UnterminatedBlock(p.block.name, p.block.line)
	}

	for _, s := range Stages() {
		if s.Required() && p.m.Function(s) == nil {
			p.warn("no %s function defined", s)
		}
	}
	return p.m, nil
}

func (p *parser) warn(format string, args ...any) {
	p.m.Warnings = append(p.m.Warnings, fmt.Sprintf(format, args...))
}

func (p *parser) line(raw string) (bool, error) {
	raw = strings.TrimSuffix(raw, "\r")
	if p.block != nil {
		return false, p.blockLine(raw)
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return false, nil
	}

	if key, value, ok := splitAssignment(raw); ok {
		return p.assign(key, value)
	}

	if i := strings.IndexByte(raw, '{'); i >= 0 {
		p.block = &openBlock{
			name:    functionName(raw[:i]),
			line:    p.lineNo,
			scanner: newBraceScanner(),
		}
		return false, p.blockLine(raw[i+1:])
	}

	p.warn("line %d: ignoring %q", p.lineNo, trimmed)
	return false, nil
}

func (p *parser) assign(key, value string) (bool, error) {
	switch key {
	case KeyRedirect:
		p.m = &Manifest{Redirect: strings.TrimSpace(value)}
		return true, nil
	case KeyName:
		p.m.Name = value
	case KeyDescription:
		p.m.Description = value
	case KeyVersion:
		p.m.Version = value
	case KeyMaintainers:
		p.m.Maintainers = value
	}

	if err := p.m.Env.Add(key, value); err != nil {
		return false, err
	}
	return false, nil
}

func (p *parser) blockLine(line string) error {
	b := p.block

	// Heredoc bodies are kept verbatim.
	if consumed, end := b.scanner.heredocLine(line); consumed {
		if end {
			line = strings.TrimSpace(line)
		}
		b.body.WriteString(line)
		b.body.WriteByte('\n')
		return nil
	}

	line = strings.TrimLeft(line, " \t")
	end := b.scanner.scan(line)
	if end < 0 {
		b.body.WriteString(line)
		b.body.WriteByte('\n')
		return nil
	}

	b.body.WriteString(line[:end])
	if rest := strings.TrimSpace(line[end+1:]); rest != "" && !strings.HasPrefix(rest, "#") {
		p.warn("line %d: ignoring %q after the end of %s", p.lineNo, rest, b.name)
	}
	p.block = nil
	return p.capture(b.name, strings.TrimSpace(b.body.String()))
}

func (p *parser) capture(name, body string) error {
	stage, ok := LookupStage(name)
	if !ok {
		p.warn("unknown function %q", name)
		return nil
	}
	existing := p.m.Function(stage)
	if existing == nil && p.captured >= MaxFunctions {
		p.warn("max functions reached, dropping %s", name)
		return nil
	}

	commands, err := splitCommands(name, body)
	if err != nil {
		return err
	}

	fn := &Function{Stage: stage, Body: body, Commands: commands}
	if existing != nil {
		p.warn("function %s redefined", name)
		*existing = *fn
		return nil
	}
	p.captured++
	p.m.Functions = append(p.m.Functions, fn)
	return nil
}

// splitAssignment splits KEY=VALUE on the first '='. KEY must be a shell
// identifier; VALUE is kept verbatim.
func splitAssignment(line string) (string, string, bool) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if !keyRegex.MatchString(key) {
		return "", "", false
	}
	return key, value, true
}

// functionName sanitizes the text before a block's opening brace:
// "install ()" and "function install" both yield "install".
func functionName(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "function"); ok && rest != "" && unicode.IsSpace(rune(rest[0])) {
		s = rest
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '(' || r == ')' {
			return -1
		}
		return r
	}, s)
}
