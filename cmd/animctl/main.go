// Command animctl replays animation scenario files.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/webanim/cmd/animctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
