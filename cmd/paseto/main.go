package main

import (
	"os"

	"github.com/oarkflow/paseto/v2/cmd/paseto/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
