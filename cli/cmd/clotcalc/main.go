package main

import (
	"fmt"
	"os"

	"github.com/clotmeter/clotmeter/cli/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
