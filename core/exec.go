package core

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/spf13/afero"
	"josephlewis.net/minshell/core/shell"
)

// Status is the terminal state of one line's execution.
type Status int

const (
	// StatusOK means every stage exited successfully.
	StatusOK Status = iota
	// StatusFailed means at least one stage failed.
	StatusFailed
	// StatusExit means the session should end.
	StatusExit
)

// Executor runs parsed command pipelines as OS processes. The zero
// value is not usable; fill in the streams or use NewExecutor for the
// defaults.
type Executor struct {
	// Name prefixes diagnostics on Stderr.
	Name string
	// Fs opens redirect targets. With afero.NewOsFs the opened files
	// are real descriptors handed straight to the children.
	Fs afero.Fs
	// Stdin and Stdout are the streams handed to the first and last
	// stage of each pipeline.
	Stdin  io.Reader
	Stdout io.Writer
	// Stderr is inherited by every stage and receives diagnostics.
	Stderr io.Writer

	// LookupEnv and Chdir back the cd builtin; tests stub them.
	LookupEnv func(key string) (string, bool)
	Chdir     func(dir string) error
}

// NewExecutor returns an Executor bound to the process's own streams
// and working directory.
func NewExecutor(name string, stdin io.Reader, stdout, stderr io.Writer) *Executor {
	return &Executor{
		Name:      name,
		Fs:        afero.NewOsFs(),
		Stdin:     stdin,
		Stdout:    stdout,
		Stderr:    stderr,
		LookupEnv: os.LookupEnv,
		Chdir:     os.Chdir,
	}
}

func (e *Executor) errorf(format string, args ...interface{}) {
	fmt.Fprintf(e.Stderr, "%s: %s\n", e.Name, fmt.Sprintf(format, args...))
}

// Run executes one line's commands and reports the aggregate result.
// The commands are owned by the executor for the duration of the call;
// every descriptor opened for the line is closed on every path out.
func (e *Executor) Run(cmds []shell.Command) Status {
	switch len(cmds) {
	case 0:
		return StatusOK
	case 1:
		return e.runSingle(cmds[0])
	default:
		return e.runPipeline(cmds)
	}
}

// runSingle executes a lone command with the shell's own streams,
// subject to the command's redirects.
func (e *Executor) runSingle(cmd shell.Command) Status {
	proc, toClose, status := e.spawn(cmd, e.Stdin, e.Stdout)
	if proc == nil {
		return status
	}
	err := proc.Wait()
	closeAll(toClose)
	if err != nil {
		return StatusFailed
	}
	return StatusOK
}

// runPipeline connects n commands with n-1 OS pipes and reaps every
// started stage. The parent closes its copy of each pipe end as soon
// as the child holds it; a write end left open here would keep the
// downstream reader from ever seeing EOF.
func (e *Executor) runPipeline(cmds []shell.Command) Status {
	var started []*exec.Cmd
	var toClose []io.Closer
	ok := true

	reap := func() {
		for _, proc := range started {
			if err := proc.Wait(); err != nil {
				ok = false
			}
		}
		closeAll(toClose)
	}

	var fileIn io.Reader = e.Stdin
	var prevRead *os.File // read end owed to the next stage, if any

	for i, cmd := range cmds {
		var fileOut io.Writer = e.Stdout
		var pr, pw *os.File
		if i < len(cmds)-1 {
			var err error
			pr, pw, err = os.Pipe()
			if err != nil {
				e.errorf("pipe error: %v", err)
				if prevRead != nil {
					prevRead.Close()
				}
				reap()
				return StatusFailed
			}
			fileOut = pw
		}

		proc, closers, status := e.spawn(cmd, fileIn, fileOut)
		toClose = append(toClose, closers...)

		if prevRead != nil {
			prevRead.Close()
		}
		if pw != nil {
			pw.Close()
		}

		if status == StatusExit {
			if pr != nil {
				pr.Close()
			}
			reap()
			return StatusExit
		}
		if proc != nil {
			started = append(started, proc)
		} else if status == StatusFailed {
			ok = false
		}

		fileIn, prevRead = pr, pr
	}

	reap()
	if !ok {
		return StatusFailed
	}
	return StatusOK
}

// spawn prepares and starts one stage. Builtin markers run in the
// shell's own process and never start a child. The returned process is
// nil when nothing was started; the Status then carries the result.
// Returned closers stay open until the stage has been reaped.
func (e *Executor) spawn(cmd shell.Command, fileIn io.Reader, fileOut io.Writer) (*exec.Cmd, []io.Closer, Status) {
	switch cmd.Args[0].Kind {
	case shell.BuiltinExit:
		return nil, nil, e.builtinExit(cmd)
	case shell.BuiltinCd:
		return nil, nil, e.builtinCd(cmd)
	}

	var toClose []io.Closer

	// Open every redirect target in order; only the last of each
	// direction stays wired to the child.
	for _, name := range cmd.FilesIn {
		fd, err := e.Fs.Open(name)
		if err != nil {
			e.errorf("%s: %v", name, underlying(err))
			closeAll(toClose)
			return nil, nil, StatusFailed
		}
		toClose = append(toClose, fd)
		fileIn = fd
	}
	for _, name := range cmd.FilesOut {
		fd, err := e.Fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
		if err != nil {
			e.errorf("%s: %v", name, underlying(err))
			closeAll(toClose)
			return nil, nil, StatusFailed
		}
		toClose = append(toClose, fd)
		fileOut = fd
	}

	argv := cmd.Argv()
	proc := exec.Command(argv[0], argv[1:]...)
	proc.Stdin = fileIn
	proc.Stdout = fileOut
	proc.Stderr = e.Stderr

	if err := proc.Start(); err != nil {
		e.errorf("%s: %v", argv[0], underlying(err))
		closeAll(toClose)
		return nil, nil, StatusFailed
	}
	return proc, toClose, StatusOK
}

// underlying strips the wrappers os and os/exec put around syscall
// errors so diagnostics read like the libc ones: "no such file or
// directory" rather than `open missing.txt: no such file or directory'.
func underlying(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return execErr.Err
	}
	return err
}

func closeAll(toClose []io.Closer) {
	for _, c := range toClose {
		c.Close()
	}
}
