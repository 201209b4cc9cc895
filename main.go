package main

import (
	"os"

	"github.com/technokami/adept/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
