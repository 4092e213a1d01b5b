package main

import (
	"os"

	"github.com/vivla-tech/vivla-guides-sub001/internal/interface/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date, builtBy)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
