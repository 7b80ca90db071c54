package main

import (
	"os"

	"github.com/marlowequity/factorline/cmd/factorline/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
