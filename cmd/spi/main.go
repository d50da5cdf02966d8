package main

import (
	"os"

	"github.com/arnavsurve/spi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
