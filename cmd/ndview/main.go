// Command ndview converts nested sequences into n-dimensional arrays and
// runs conversion scenarios.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/ndview/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
