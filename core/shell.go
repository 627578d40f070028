package core

import (
	"io"
	"log"
	"os"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"josephlewis.net/minshell/core/config"
	"josephlewis.net/minshell/core/shell"
)

// Shell drives the read/tokenize/parse/execute loop. Each line flows
// strictly downstream: text to tokens to commands to processes to a
// status. Nothing carries over between lines except the prompt flag
// implied by the previous terminator.
type Shell struct {
	Executor *Executor
	Readline *readline.Instance

	prompt      string
	interactive bool
	toClose     listCloser
}

// NewShell wires an interpreter to the given streams. The prompt text
// and styling come from the configuration; a prompt is only ever shown
// when stdin is a live terminal.
func NewShell(configuration *config.Configuration, stdin io.ReadCloser, stdout, stderr io.Writer) (*Shell, error) {
	interactive := false
	if f, ok := stdin.(*os.File); ok {
		interactive = readline.IsTerminal(int(f.Fd()))
	}

	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(stdin),
		Stdout: stdout,
		Stderr: stderr,
		FuncIsTerminal: func() bool {
			return interactive
		},
	}
	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	sh := &Shell{
		Executor:    NewExecutor(configuration.Shell.Name, stdin, stdout, stderr),
		Readline:    rl,
		prompt:      renderPrompt(configuration, interactive),
		interactive: interactive,
	}
	sh.toClose = append(sh.toClose, rl)
	return sh, nil
}

// renderPrompt paints `name $ ' the way the configuration asks.
// Styling is switched explicitly because the color package sniffs the
// real process stdout, which is not necessarily ours.
func renderPrompt(configuration *config.Configuration, interactive bool) string {
	name := color.New(color.FgCyan)
	tail := color.New(color.FgCyan, color.Bold)
	if configuration.Shell.Color && interactive {
		name.EnableColor()
		tail.EnableColor()
	} else {
		name.DisableColor()
		tail.DisableColor()
	}
	return name.Sprint(configuration.Shell.Name) + tail.Sprint(configuration.Shell.Prompt)
}

// Run processes input until an exit builtin or end of input.
func (s *Shell) Run() {
	for {
		if s.interactive {
			s.Readline.SetPrompt(s.prompt)
		}
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			// Input closed: run whatever was collected, then quit.
			s.runLine(line)
			return

		case err == readline.ErrInterrupt:
			continue // drop the partial line

		case err != nil:
			log.Printf("readline: %v", err)
			return

		default:
			if s.runLine(line) == StatusExit {
				return
			}
		}
	}
}

// runLine consumes one physical line segment by segment; a `;' starts
// the next command without a new prompt. A syntax error discards only
// its own segment.
func (s *Shell) runLine(line string) Status {
	rest := line
	for {
		toks, term, more := shell.Scan(rest)

		cmds, err := shell.Parse(toks)
		if err != nil {
			s.Executor.errorf("%v", err)
		} else if status := s.Executor.Run(cmds); status == StatusExit {
			return StatusExit
		}

		if term != shell.Sequential {
			return StatusOK
		}
		rest = more
	}
}

func (s *Shell) Close() error {
	return s.toClose.Close()
}

type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
