package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/lvknap/internal/cli"
)

var version = "dev"

func main() {
	rootCmd := cli.NewRootCmd(version)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lvknap:", err)
		os.Exit(1)
	}
}
