package main

import (
	"os"

	"github.com/rithvikp/relnorm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
