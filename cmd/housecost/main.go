package main

import (
	"os"

	"github.com/Simplici0/housecost/cmd/housecost/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
