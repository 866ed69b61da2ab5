package main

import (
	"os"

	"github.com/quantrail/breakout/cmd/breakout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
