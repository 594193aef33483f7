package invoke

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantCode  string
		wantInput string
	}{
		{
			name:      "code only",
			args:      []string{"1+1"},
			wantCode:  "1+1",
			wantInput: "",
		},
		{
			name:      "code with stdin",
			args:      []string{"print(x)", "-stdin=hello"},
			wantCode:  "print(x) ",
			wantInput: "hello",
		},
		{
			name:      "escaped newline becomes real newline",
			args:      []string{`a\nb`},
			wantCode:  "a\nb",
			wantInput: "",
		},
		{
			name:      "multiple args joined with single spaces",
			args:      []string{"x", "=", "1"},
			wantCode:  "x = 1",
			wantInput: "",
		},
		{
			name:      "marker glued to code",
			args:      []string{"f()-stdin=in"},
			wantCode:  "f()",
			wantInput: "in",
		},
		{
			name:      "repeated marker rejoined without separator",
			args:      []string{"code", "-stdin=a-stdin=b"},
			wantCode:  "code ",
			wantInput: "ab",
		},
		{
			name:      "marker with empty value",
			args:      []string{"code", "-stdin="},
			wantCode:  "code ",
			wantInput: "",
		},
		{
			name:      "escaped newline inside stdin",
			args:      []string{"read()", `-stdin=l1\nl2`},
			wantCode:  "read() ",
			wantInput: "l1\nl2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.args)
			if got.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Input != tt.wantInput {
				t.Errorf("Input = %q, want %q", got.Input, tt.wantInput)
			}
		})
	}
}

// Rebuilding code + marker + input must reproduce the substituted join when
// the marker appeared exactly once.
func TestParseSplitRoundTrip(t *testing.T) {
	args := []string{"print(input())", "-stdin=forty", "two"}
	joined := strings.ReplaceAll(strings.Join(args, " "), `\n`, "\n")

	req := Parse(args)
	if rebuilt := req.Code + StdinMarker + req.Input; rebuilt != joined {
		t.Errorf("rebuilt = %q, want %q", rebuilt, joined)
	}
}

func TestParseEmptyArgs(t *testing.T) {
	req := Parse(nil)
	if req.Code != "" || req.Input != "" {
		t.Errorf("Parse(nil) = %+v, want empty payloads", req)
	}
}
