// Package main provides the entry point for the wildtrack CLI tool.
package main

import (
	"github.com/wildtrack/wildtrack/cmd/wildtrack/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
