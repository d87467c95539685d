package main

import (
	"os"

	"github.com/spigell/campus-match/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
