package main

import (
	"os"

	"github.com/rustyeddy/tradervue-go/cmd/tvctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
