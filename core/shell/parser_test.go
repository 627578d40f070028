package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scanLine tokenizes a full line for parser tests.
func scanLine(t *testing.T, line string) []Token {
	t.Helper()

	toks, term, rest := Scan(line)
	require.Equal(t, Interactive, term)
	require.Empty(t, rest)
	return toks
}

func TestParse(t *testing.T) {
	const pipeErr = "syntax error near unexpected token `|'"

	cases := []struct {
		name    string
		line    string
		want    []Command
		wantErr string
	}{
		{
			name: "empty line",
			line: "",
		},
		{
			name: "single word",
			line: "ls",
			want: []Command{{Args: []Token{word("ls")}}},
		},
		{
			name: "arguments only",
			line: "ls -la /tmp",
			want: []Command{{Args: []Token{word("ls"), word("-la"), word("/tmp")}}},
		},
		{
			name: "three stages in source order",
			line: "a | b | c",
			want: []Command{
				{Args: []Token{word("a")}},
				{Args: []Token{word("b")}},
				{Args: []Token{word("c")}},
			},
		},
		{
			name: "redirects in either order",
			line: "cmd > out.txt < in.txt",
			want: []Command{{
				Args:     []Token{word("cmd")},
				FilesIn:  []string{"in.txt"},
				FilesOut: []string{"out.txt"},
			}},
		},
		{
			name: "arguments stop at the first redirect",
			line: "cmd arg1 > f arg2",
			want: []Command{{
				Args:     []Token{word("cmd"), word("arg1")},
				FilesOut: []string{"f", "arg2"},
			}},
		},
		{
			name: "every filename is recorded",
			line: "cmd > a b c",
			want: []Command{{
				Args:     []Token{word("cmd")},
				FilesOut: []string{"a", "b", "c"},
			}},
		},
		{
			name: "latest symbol owns the following words",
			line: "cmd > o1 < i1 i2",
			want: []Command{{
				Args:     []Token{word("cmd")},
				FilesIn:  []string{"i1", "i2"},
				FilesOut: []string{"o1"},
			}},
		},
		{
			name: "redirects per stage",
			line: "a < in | b > out",
			want: []Command{
				{Args: []Token{word("a")}, FilesIn: []string{"in"}},
				{Args: []Token{word("b")}, FilesOut: []string{"out"}},
			},
		},
		{
			name: "builtin marker in the program-name slot",
			line: "exit now",
			want: []Command{{Args: []Token{{Kind: BuiltinExit}, word("now")}}},
		},
		{
			name: "double pipe collapses into one command",
			line: "a || b",
			want: []Command{{Args: []Token{word("a"), word("b")}}},
		},
		{
			name:    "leading pipe",
			line:    "| a",
			wantErr: pipeErr,
		},
		{
			name:    "trailing pipe",
			line:    "a |",
			wantErr: pipeErr,
		},
		{
			name:    "adjacent pipes",
			line:    "a | | b",
			wantErr: pipeErr,
		},
		{
			name:    "adjacent pipes after dropping a double pipe",
			line:    "a | || | b",
			wantErr: pipeErr,
		},
		{
			name:    "adjacent redirects",
			line:    "a << b",
			wantErr: "syntax error near unexpected token `<'",
		},
		{
			name:    "mixed adjacent redirects",
			line:    "a > < b",
			wantErr: "syntax error near unexpected token `<'",
		},
		{
			name:    "redirect closes the segment",
			line:    "a >",
			wantErr: "syntax error near unexpected token `>'",
		},
		{
			name:    "redirect opens the segment",
			line:    "< f cmd",
			wantErr: "syntax error near unexpected token `<'",
		},
		{
			name:    "bad segment discards the whole line",
			line:    "a | b > | c",
			wantErr: "syntax error near unexpected token `>'",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmds, err := Parse(scanLine(t, tc.line))

			if tc.wantErr != "" {
				require.EqualError(t, err, tc.wantErr)
				var synErr *SyntaxError
				assert.ErrorAs(t, err, &synErr)
				assert.Nil(t, cmds)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, cmds)
		})
	}
}

func TestArgv(t *testing.T) {
	cmd := Command{Args: []Token{{Kind: BuiltinCd}, word("/tmp")}}

	assert.Equal(t, []string{"cd", "/tmp"}, cmd.Argv())
}
