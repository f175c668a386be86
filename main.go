// Package main is the entry point for the framepeek application.
package main

import (
	"github.com/framepeek-cli/framepeek/cmd"
	"github.com/framepeek-cli/framepeek/config"
	"github.com/framepeek-cli/framepeek/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
