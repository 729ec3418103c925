package main

import (
	"os"

	"github.com/abes-esr/qualimarc/cmd/qualimarc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
