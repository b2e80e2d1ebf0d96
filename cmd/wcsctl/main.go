package main

import (
	"os"

	"github.com/vladislavdragonenkov/windowcleaning/cmd/wcsctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
