package cmd

import (
	"github.com/Stroby241/svoray/log"
	"github.com/urfave/cli"
)

var logger = log.New("svoray")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
