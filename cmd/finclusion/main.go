package main

import (
	"os"

	"github.com/finclusion-dev/finclusion/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
