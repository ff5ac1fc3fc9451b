package main

import (
	"os"

	"github.com/rgdevment/scam-scanner/cmd/scamscan/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
