package main

import (
	"github.com/seripap/Intellitip/internal/cli"
)

// Magic variables set by goreleaser
var version string
var commit string

func main() {
	cli.SetVersion(version, commit)
	cli.Execute()
}
