// Package main is the entry point of segskip.
package main

import (
	"github.com/samber/lo"
	"github.com/segskip/segskip/cmd"
	"github.com/segskip/segskip/config"
	"github.com/segskip/segskip/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
