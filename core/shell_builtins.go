package core

import (
	"fmt"
	"strings"

	"josephlewis.net/minshell/core/shell"
)

// The builtins run inside the interpreter's own process. They never
// use stdin or stdout, so redirects and pipes do not apply to them,
// and they never affect sibling stages of the same pipeline.

// builtinExit signals the driver loop to stop. It is recognized by
// token kind in Executor.spawn; nothing is spawned for it.
func (e *Executor) builtinExit(shell.Command) Status {
	return StatusExit
}

// builtinCd changes the interpreter's working directory.
//
//	Usage: cd [path]
//	With no path or `~', go to $HOME.
//	`~something' is rejected: tilde expansion is not supported.
//	Anything else is taken literally.
func (e *Executor) builtinCd(cmd shell.Command) Status {
	args := cmd.Argv()

	path := "~"
	switch {
	case len(args) > 2:
		fmt.Fprintln(e.Stderr, "cd: too many arguments")
		return StatusFailed
	case len(args) == 2:
		path = args[1]
	}

	if strings.HasPrefix(path, "~") {
		if path != "~" {
			fmt.Fprintln(e.Stderr, "cd: tilde expansion is not supported")
			return StatusFailed
		}
		home, ok := e.LookupEnv("HOME")
		if !ok {
			fmt.Fprintln(e.Stderr, "cd: $HOME env variable is invalid")
			return StatusFailed
		}
		path = home
	}

	if err := e.Chdir(path); err != nil {
		fmt.Fprintf(e.Stderr, "cd: %s: %v\n", path, underlying(err))
		return StatusFailed
	}
	return StatusOK
}
