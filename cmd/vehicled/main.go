package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		color.Red("vehicled: %v", err)
		os.Exit(2)
	}
}
