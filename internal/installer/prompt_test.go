package installer

import (
	"bytes"
	"strings"
	"testing"
)

func TestIsAffirmative(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"", true},
		{"\n", true},
		{"y", true},
		{"Y\n", true},
		{"yes", true},
		{" YES ", true},
		{"n", false},
		{"no", false},
		{"yep", false},
		{"q", false},
	}

	for _, tt := range tests {
		if got := IsAffirmative(tt.answer); got != tt.want {
			t.Errorf("IsAffirmative(%q) = %v, want %v", tt.answer, got, tt.want)
		}
	}
}

func TestLinePrompter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"empty line", "\n", true},
		{"no", "n\n", false},
		{"answer without newline", "yes", true},
		{"end of input", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := &LinePrompter{In: strings.NewReader(tt.input), Out: &out}

			got, err := p.Confirm("Proceed?")
			if err != nil {
				t.Fatalf("Confirm error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
			if !strings.HasPrefix(out.String(), "Proceed? [Y/n] ") {
				t.Errorf("prompt = %q", out.String())
			}
		})
	}
}

func TestLinePrompter_SeveralAnswers(t *testing.T) {
	var out bytes.Buffer
	p := &LinePrompter{In: strings.NewReader("y\nn\nyes\n"), Out: &out}

	want := []bool{true, false, true, false}
	for i, w := range want {
		got, err := p.Confirm("Proceed?")
		if err != nil {
			t.Fatalf("Confirm #%d error: %v", i+1, err)
		}
		if got != w {
			t.Errorf("Confirm #%d = %v, want %v", i+1, got, w)
		}
	}
}
