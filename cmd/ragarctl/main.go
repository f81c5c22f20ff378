package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ragar/ragarctl/internal/cli/commands"
	"github.com/ragar/ragarctl/internal/cli/ui"
)

func main() {
	if err := commands.Execute(); err != nil {
		if strings.Contains(err.Error(), "unknown command") {
			ui.PrintError("%s", err.Error())
			fmt.Println("\nRun 'ragarctl --help' for usage.")
		}
		os.Exit(1)
	}
}
