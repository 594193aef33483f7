// Package invoke turns raw command-line arguments into the code and input
// payloads submitted to the run endpoint.
package invoke

import "strings"

// StdinMarker separates the code payload from the input payload inside the
// joined argument string.
const StdinMarker = "-stdin="

// Usage is the exact line printed when the program is invoked with no
// arguments.
const Usage = "usage: ty <code> [-stdin=<input>]"

// Request holds the two form fields of a run submission.
type Request struct {
	Code  string
	Input string
}

// Parse derives a Request from the argument list: arguments are joined with
// single spaces, every literal `\n` two-character sequence becomes a real
// newline, and the result is split on the first StdinMarker occurrence.
// Extra marker occurrences are rejoined into the input with no separator.
func Parse(args []string) Request {
	cmd := strings.ReplaceAll(strings.Join(args, " "), `\n`, "\n")

	parts := strings.Split(cmd, StdinMarker)
	return Request{
		Code:  parts[0],
		Input: strings.Join(parts[1:], ""),
	}
}
