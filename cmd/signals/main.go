package main

import (
	"os"

	"github.com/rustyeddy/signals/cmd/signals/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
