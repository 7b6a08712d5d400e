package main

import (
	"os"

	"github.com/yairfalse/wbcheck/cmd/wbcheck/commands"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	builtBy   = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, buildTime, builtBy)
	os.Exit(commands.Execute())
}
