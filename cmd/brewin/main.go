package main

import (
	"os"

	"github.com/ariyin/go-brewin/cmd/brewin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
