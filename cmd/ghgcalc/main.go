// Command ghgcalc is the GHG Protocol emissions calculator CLI.
package main

import (
	"os"

	"github.com/rshade/ghgcalc/internal/cli"
	"github.com/rshade/ghgcalc/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps errors to the process exit code.
// Split from main so tests can exercise it.
func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
