package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/aligator/fat16"
	"github.com/aligator/fat16/checkpoint"
	log "github.com/dsoprea/go-logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	cliLogger      = log.NewLogger("fat16.cli")
	consoleAdapter sync.Once
)

type app struct {
	// host is the filesystem images are read from and exported files are
	// written to.
	host afero.Fs

	debug bool
	trace bool

	root *cobra.Command
}

func newApp(host afero.Fs) *app {
	a := &app{host: host}

	a.root = &cobra.Command{
		Use:           "fat16",
		Short:         "Browse FAT16 volume images read-only",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			a.configureLogging()
		},
	}
	a.registerFlags(a.root.PersistentFlags())

	a.root.AddCommand(
		a.infoCommand(),
		a.lsCommand(),
		a.catCommand(),
		a.cpoutCommand(),
		a.shellCommand(),
	)

	return a
}

func (a *app) registerFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&a.debug,
		"debug",
		false,
		`log every volume access`)

	fs.BoolVar(&a.trace,
		"trace",
		false,
		`print the call sites an error passed through`)
}

func (a *app) configureLogging() {
	if !a.debug {
		return
	}

	consoleAdapter.Do(func() {
		log.AddAdapter("console", log.NewConsoleLogAdapter())
	})

	scp := log.NewStaticConfigurationProvider()
	scp.SetDefaultAdapterName("console")
	scp.SetLevelName(log.LevelNameDebug)
	log.LoadConfiguration(scp)
}

func (a *app) reportError(w io.Writer, err error) {
	if fat16.IsFatal(err) {
		fmt.Fprintf(w, "error: not a usable FAT16 volume: %v\n", err)
	} else {
		fmt.Fprintf(w, "error: %v\n", err)
	}

	if a.trace {
		for _, location := range checkpoint.Trace(err) {
			fmt.Fprintf(w, "\tat %s\n", location)
		}
	}
}

// open mounts image from the host filesystem. The returned function closes
// the image.
func (a *app) open(image string) (*session, func() error, error) {
	file, err := a.host.Open(image)
	if err != nil {
		return nil, nil, err
	}

	cursor, err := fat16.Mount(file)
	if err != nil {
		file.Close()
		return nil, nil, err
	}

	cliLogger.Debugf(nil, "mounted [%s]", image)
	return &session{cursor: cursor, host: a.host}, file.Close, nil
}

// withSession runs fn on the mounted image named by the first argument.
func (a *app) withSession(image string, fn func(s *session) error) error {
	s, closeImage, err := a.open(image)
	if err != nil {
		return err
	}
	defer closeImage()

	return fn(s)
}
