package main

import (
	"fmt"
	"os"

	"github.com/alexshd/fuzzy/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fuzzy:", err)
		os.Exit(1)
	}
}
