// Command numl runs the NUML interpreter from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/numl-lang/numl/cmd/numl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
