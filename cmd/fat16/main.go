// fat16 browses FAT16 volume images read-only.
//
//	fat16 info IMAGE
//	fat16 ls IMAGE [PATH] [-l]
//	fat16 cat IMAGE PATH
//	fat16 cpout IMAGE SRC DST
//	fat16 shell IMAGE
package main

import (
	"os"

	"github.com/spf13/afero"
)

func main() {
	a := newApp(afero.NewOsFs())
	if err := a.root.Execute(); err != nil {
		a.reportError(os.Stderr, err)
		os.Exit(1)
	}
}
