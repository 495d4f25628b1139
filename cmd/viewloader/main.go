package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-viewloader/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(cli.NewRootOptions()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "viewloader: %v\n", err)
		os.Exit(1)
	}
}
