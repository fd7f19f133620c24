package main

import (
	"os"

	"github.com/cassiomorais/checkout/cmd/paycli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
