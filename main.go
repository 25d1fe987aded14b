// Command dtslog is a local log of forwarded and received documents.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/dtslog/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
