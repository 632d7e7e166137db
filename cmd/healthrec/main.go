// Command healthrec records patient health entries in a local SQLite file.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/healthrec/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
