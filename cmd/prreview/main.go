package main

import (
	"os"

	"github.com/avandres/prreview/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
