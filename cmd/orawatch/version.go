package main

import (
	"fmt"
	"os"
)

// version output variables
var (
	commit  = "unknown"
	version = "unknown"
	date    = "unknown"
)

func printVersion() {
	fmt.Fprintf(os.Stderr, `
Version info:
  Version:       %s
  Git Commit:    %s
  Built:         %s

`, version, commit, date)
}
