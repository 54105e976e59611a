// Command dsviz plays data structure scenarios as animated frames.
package main

import (
	"os"

	"github.com/go-drift/visualds/cmd/dsviz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
