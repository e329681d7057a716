package main

import (
	"fmt"
	"os"

	"github.com/aligator/fat16/internal/imagetest"
	"github.com/spf13/afero"
)

// main writes the sample image used in the examples. Can be executed using
// 'go generate' from the project root.
func main() {
	dest := "testdata/sample.img"
	if len(os.Args) > 1 {
		dest = os.Args[1]
	}

	fs := afero.NewOsFs()
	if err := fs.MkdirAll("testdata", 0755); err != nil {
		panic(err)
	}

	if err := imagetest.Sample().WriteTo(fs, dest); err != nil {
		panic(err)
	}

	fmt.Println("wrote", dest)
}
