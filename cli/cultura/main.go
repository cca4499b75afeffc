package main

import (
	"os"

	culturacmder "github.com/papercomputeco/cultura/cmd/cultura"
)

func main() {
	cmd := culturacmder.NewCulturaCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
