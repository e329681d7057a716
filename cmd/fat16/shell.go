package main

import (
	"fmt"

	"github.com/abiosoft/ishell"
)

// contextWriter prints to the shell of a command context.
type contextWriter struct {
	c *ishell.Context
}

func (w contextWriter) Write(p []byte) (int, error) {
	w.c.Print(string(p))
	return len(p), nil
}

func prompt(s *session) string {
	return s.cursor.PathString() + " > "
}

func expectArgs(args []string, min, max int) error {
	if len(args) < min || len(args) > max {
		if min == max {
			return fmt.Errorf("expected %d arguments, got %d", min, len(args))
		}
		return fmt.Errorf("expected %d to %d arguments, got %d", min, max, len(args))
	}
	return nil
}

func (a *app) newShell(s *session) *ishell.Shell {
	shell := ishell.New()
	shell.SetPrompt(prompt(s))

	// Errors only fail the command, the shell keeps running.
	run := func(fn func(c *ishell.Context) error) func(c *ishell.Context) {
		return func(c *ishell.Context) {
			if err := fn(c); err != nil {
				cliLogger.Warningf(nil, "shell command failed: %v", err)
				a.reportError(contextWriter{c}, err)
			}
		}
	}

	shell.AddCmd(&ishell.Cmd{
		Name: "ls",
		Help: "list a directory: ls [PATH]",
		Func: run(func(c *ishell.Context) error {
			if err := expectArgs(c.Args, 0, 1); err != nil {
				return err
			}
			path := "."
			if len(c.Args) == 1 {
				path = c.Args[0]
			}
			return s.ls(contextWriter{c}, path, false)
		}),
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "cd",
		Help: "change the working directory: cd [PATH]",
		Func: run(func(c *ishell.Context) error {
			if err := expectArgs(c.Args, 0, 1); err != nil {
				return err
			}
			path := "/"
			if len(c.Args) == 1 {
				path = c.Args[0]
			}

			err := s.cd(path)
			// A failed cd may still have moved.
			c.SetPrompt(prompt(s))
			return err
		}),
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "pwd",
		Help: "print the working directory",
		Func: run(func(c *ishell.Context) error {
			s.pwd(contextWriter{c})
			return nil
		}),
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "cat",
		Help: "print a file: cat PATH",
		Func: run(func(c *ishell.Context) error {
			if err := expectArgs(c.Args, 1, 1); err != nil {
				return err
			}
			err := s.cat(contextWriter{c}, c.Args[0])
			c.Println()
			return err
		}),
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "cpout",
		Help: "copy a file out of the volume: cpout SRC DST",
		Func: run(func(c *ishell.Context) error {
			if err := expectArgs(c.Args, 2, 2); err != nil {
				return err
			}
			return s.cpout(contextWriter{c}, c.Args[0], c.Args[1])
		}),
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "info",
		Help: "show the geometry and label of the volume",
		Func: run(func(c *ishell.Context) error {
			return s.info(contextWriter{c})
		}),
	})

	return shell
}
