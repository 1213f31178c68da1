package main

import (
	"os"

	"github.com/dastanaron/bookmarks-flatten/internal/cli"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	cli.SetVersion(version)
	os.Exit(cli.Execute(cli.NewRootCommand(os.Stdout, os.Stderr), os.Args[1:]))
}
