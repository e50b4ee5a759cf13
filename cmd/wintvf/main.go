// Command wintvf checks windowing table function calls against relation
// schemas and prints their output row types.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/wintvf/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
