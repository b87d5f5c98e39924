package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/spiffcs/teamping/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("#ERROR#"), err)
		os.Exit(1)
	}
}
