package shell

// The grammar here is a small subset of the POSIX shell command
// language: https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html
// A line is pipe-separated commands, each optionally followed by
// `<'/`>' redirect targets. There is no quoting, expansion, or
// compound syntax.

import "fmt"

// Command is one stage of a pipeline: the argument vector plus the
// redirect targets collected for it. Args[0] is the program-name slot
// and may hold a builtin marker token.
type Command struct {
	Args     []Token
	FilesIn  []string
	FilesOut []string
}

// Argv renders the argument vector as strings for process execution.
func (c Command) Argv() []string {
	argv := make([]string, len(c.Args))
	for i, tok := range c.Args {
		argv[i] = tok.Symbol()
	}
	return argv
}

// SyntaxError reports the token that made a line unparseable.
type SyntaxError struct {
	Token string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error near unexpected token `%s'", e.Token)
}

// Parse groups a line's tokens into pipe-separated commands. An empty
// token sequence yields no commands and no error. Any failure discards
// the whole line; no partial pipeline is ever returned.
func Parse(toks []Token) ([]Command, error) {
	if len(toks) == 0 {
		return nil, nil
	}

	var cmds []Command
	start := 0
	for i, tok := range toks {
		if tok.Kind != Pipe {
			continue
		}
		// Adjacent pipes, or a pipe opening the line.
		if i == start {
			return nil, &SyntaxError{Token: "|"}
		}
		cmd, err := buildCommand(toks[start:i])
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
		start = i + 1
	}

	// A pipe cannot close the line either.
	if start == len(toks) {
		return nil, &SyntaxError{Token: "|"}
	}
	cmd, err := buildCommand(toks[start:])
	if err != nil {
		return nil, err
	}
	return append(cmds, cmd), nil
}

// buildCommand assembles one pipeline segment. The argument vector is
// the prefix of the segment before the first redirect symbol; every
// token after a redirect symbol is recorded as a filename for that
// symbol's direction until the next symbol takes over. All filenames
// are kept even though only the last per direction is effective at run
// time.
func buildCommand(seg []Token) (Command, error) {
	var cmd Command

	argn := len(seg)
	lastIdx := 0
	var symbol Kind // zero (Word) until the first redirect symbol
	for i, tok := range seg {
		switch tok.Kind {
		case RedirectIn, RedirectOut:
			// A redirect symbol needs a target word after it and a
			// command or filename before it.
			if i == len(seg)-1 || i == lastIdx {
				return Command{}, &SyntaxError{Token: tok.Symbol()}
			}
			if argn == len(seg) {
				argn = i
			}
			symbol = tok.Kind
			lastIdx = i + 1
		default:
			switch symbol {
			case RedirectIn:
				cmd.FilesIn = append(cmd.FilesIn, tok.Symbol())
			case RedirectOut:
				cmd.FilesOut = append(cmd.FilesOut, tok.Symbol())
			}
		}
	}

	cmd.Args = append(cmd.Args, seg[:argn]...)
	return cmd, nil
}
