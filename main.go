package main

import (
	"os"

	"github.com/flicknest/flicknest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
