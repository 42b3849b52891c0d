package main

import (
	"os"

	"github.com/yaleman/shrinky/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
