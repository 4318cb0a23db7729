package main

import (
	"context"
	"log"
	"os"

	"github.com/omupade20/prop8/internal/version"
	"github.com/urfave/cli/v3"
)

const configFlag = "config"

func configFlagDef() cli.Flag {
	return &cli.StringFlag{
		Name:    configFlag,
		Aliases: []string{"c"},
		Usage:   "Path to the YAML `FILE`; PROP8_* environment variables override it",
		Sources: cli.EnvVars("PROP8_CONFIG"),
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "prop8",
		Usage:   "Intraday decision pipeline over streamed 1-minute bars",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			runCommand(),
			replayCommand(),
			schemaCommand(),
			versionCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
