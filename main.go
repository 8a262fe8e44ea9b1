package main

import (
	"os"

	"github.com/nosakar/vocab-app/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
