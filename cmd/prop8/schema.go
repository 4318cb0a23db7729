package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/omupade20/prop8/internal/config"
	"github.com/omupade20/prop8/internal/version"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	schemaFile = "prop8.schema.json"
	sampleFile = "prop8.sample.yaml"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the configuration JSON schema, or write it with a sample config to a directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Usage: "Write " + schemaFile + " and " + sampleFile + " into `DIR`",
			},
		},
		Action: schemaAction,
	}
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	schema, err := config.Schema()
	if err != nil {
		return err
	}

	dir := cmd.String("out")
	if dir == "" {
		_, err := fmt.Fprintln(cmd.Root().Writer, schema)

		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, schemaFile), []byte(schema), 0o644); err != nil {
		return err
	}

	sample, err := yaml.Marshal(config.Default())
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, sampleFile), sample, 0o644)
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the build and snapshot format versions",
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintf(cmd.Root().Writer, "prop8 %s (snapshot format %s)\n", version.GetVersion(), version.SnapshotFormat)

			return err
		},
	}
}
