package main

import (
	"os"

	"github.com/phoenix-ai/apiprobe/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
