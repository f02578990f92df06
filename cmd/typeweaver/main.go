package main

import (
	"os"

	"github.com/teranos/typeweaver/cmd/typeweaver/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(commands.ExitCode(err))
	}
}
