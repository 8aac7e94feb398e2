// main is the entry point for the churnlens CLI.
package main

import (
	"github.com/huangsam/churnlens/cmd"
	"github.com/huangsam/churnlens/internal/contract"
	"github.com/huangsam/churnlens/internal/runstore"
)

func main() {
	err := cmd.Execute()
	runstore.CloseRunTracking()
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
