package shell

// Kind identifies what a Token represents.
type Kind int

const (
	// Word is a run of characters from the word class.
	Word Kind = iota
	// Pipe is a single `|'.
	Pipe
	// RedirectIn is `<'.
	RedirectIn
	// RedirectOut is `>'.
	RedirectOut
	// BuiltinExit marks the literal word `exit'.
	BuiltinExit
	// BuiltinCd marks the literal word `cd'.
	BuiltinCd
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "Word"
	case Pipe:
		return "Pipe"
	case RedirectIn:
		return "RedirectIn"
	case RedirectOut:
		return "RedirectOut"
	case BuiltinExit:
		return "BuiltinExit"
	case BuiltinCd:
		return "BuiltinCd"
	}
	return "Unknown"
}

// Token is one lexical element of an input line. Text is set for Word
// tokens only; every other kind has a fixed spelling.
type Token struct {
	Kind Kind
	Text string
}

// Symbol returns the source spelling of the token, used for argument
// vectors and diagnostics.
func (t Token) Symbol() string {
	switch t.Kind {
	case Pipe:
		return "|"
	case RedirectIn:
		return "<"
	case RedirectOut:
		return ">"
	case BuiltinExit:
		return "exit"
	case BuiltinCd:
		return "cd"
	}
	return t.Text
}

// Terminator records why token collection stopped.
type Terminator int

const (
	// Interactive means the line's end was reached; the driver may
	// prompt before reading more input.
	Interactive Terminator = iota
	// Sequential means a `;' was reached; more commands follow on the
	// same physical line and no prompt is shown between them.
	Sequential
	// EndOfInput means the input stream is exhausted. Scan never
	// returns it; the driver reports it when reading fails with EOF.
	EndOfInput
)

func (t Terminator) String() string {
	switch t {
	case Interactive:
		return "Interactive"
	case Sequential:
		return "Sequential"
	case EndOfInput:
		return "EndOfInput"
	}
	return "Unknown"
}

// wordChar reports whether c may appear in a word: ASCII letters,
// digits, path separators, dot, dash and tilde.
func wordChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '/' || c == '.' || c == '-' || c == '~':
		return true
	}
	return false
}

// Scan tokenizes one physical line. It consumes characters until it
// reaches a `;' or the end of the string and returns the tokens
// collected, why it stopped, and the unconsumed remainder of the line.
//
// Words use the fixed character class above; `<', `>' and `|' are
// single-symbol tokens; the literal words `exit' and `cd' become
// builtin markers. The two-character sequence `||' is recognized and
// dropped entirely rather than read as two pipes. Whitespace and any
// other character are skipped. Scan never fails and places no bound on
// the number of tokens.
func Scan(line string) (toks []Token, term Terminator, rest string) {
	for i := 0; i < len(line); {
		c := line[i]
		switch {
		case c == ';':
			return toks, Sequential, line[i+1:]
		case c == '|':
			if i+1 < len(line) && line[i+1] == '|' {
				i += 2
				continue
			}
			toks = append(toks, Token{Kind: Pipe})
			i++
		case c == '<':
			toks = append(toks, Token{Kind: RedirectIn})
			i++
		case c == '>':
			toks = append(toks, Token{Kind: RedirectOut})
			i++
		case wordChar(c):
			j := i + 1
			for j < len(line) && wordChar(line[j]) {
				j++
			}
			toks = append(toks, wordToken(line[i:j]))
			i = j
		default:
			i++
		}
	}
	return toks, Interactive, ""
}

// wordToken turns builtin names into their marker kinds so later
// stages can branch on kind instead of comparing strings.
func wordToken(text string) Token {
	switch text {
	case "exit":
		return Token{Kind: BuiltinExit}
	case "cd":
		return Token{Kind: BuiltinCd}
	}
	return Token{Kind: Word, Text: text}
}
