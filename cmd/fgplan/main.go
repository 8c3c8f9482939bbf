// Command fgplan compiles and runs frame descriptions written in HCL.
//
//	fgplan plan deferred.hcl --width 1920 --height 1080 --cull
//	fgplan run deferred.hcl --frames 60 --metrics
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		color.NoColor = true
	}

	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RGB(229, 50, 50).Sprint("Error:"), err)
		os.Exit(1)
	}
}
