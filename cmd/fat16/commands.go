package main

import (
	"github.com/spf13/cobra"
)

func (a *app) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info IMAGE",
		Short: "Show the geometry and label of a volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(args[0], func(s *session) error {
				return s.info(cmd.OutOrStdout())
			})
		},
	}
}

func (a *app) lsCommand() *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "ls IMAGE [PATH]",
		Short: "List a directory of a volume",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/"
			if len(args) == 2 {
				path = args[1]
			}

			return a.withSession(args[0], func(s *session) error {
				return s.ls(cmd.OutOrStdout(), path, long)
			})
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "show size and modification time")

	return cmd
}

func (a *app) catCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cat IMAGE PATH",
		Short: "Print a file of a volume",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(args[0], func(s *session) error {
				return s.cat(cmd.OutOrStdout(), args[1])
			})
		},
	}
}

func (a *app) cpoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cpout IMAGE SRC DST",
		Short: "Copy a file out of a volume",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(args[0], func(s *session) error {
				return s.cpout(cmd.OutOrStdout(), args[1], args[2])
			})
		},
	}
}

func (a *app) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell IMAGE",
		Short: "Browse a volume interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(args[0], func(s *session) error {
				a.newShell(s).Run()
				return nil
			})
		},
	}
}
