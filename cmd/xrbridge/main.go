package main

import (
	"os"

	"github.com/phanxgames/xrinput/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
