package main

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/omupade20/prop8/internal/barstore"
	"github.com/omupade20/prop8/internal/replay"
	"github.com/omupade20/prop8/internal/strategy"
	"github.com/omupade20/prop8/internal/types"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

func replayCommand() *cli.Command {
	return &cli.Command{
		Name:  "replay",
		Usage: "Replay a bar file through the pipeline and print the execute decisions",
		Flags: []cli.Flag{
			configFlagDef(),
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Bar `FILE` (.json or .parquet)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "instrument",
				Aliases:  []string{"i"},
				Usage:    "Instrument the bars belong to",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "strategy",
				Aliases: []string{"s"},
				Usage:   fmt.Sprintf("Override the configured strategy (%s, %s)", strategy.KindPullback, strategy.KindBreakout),
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Do not draw the progress bar",
			},
		},
		Action: replayAction,
	}
}

func replayAction(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if kind := cmd.String("strategy"); kind != "" {
		cfg.Strategy.Kind = kind
	}

	bars, dropped, err := replay.Load(cmd.String("file"))
	if err != nil {
		return err
	}

	// cooldown and dedup follow bar time, not wall time
	var clock atomic.Int64

	// snapshots are never written during a replay
	cfg.Store.SnapshotPath = ""

	p, err := newPipeline(cfg, log, barstore.WithClock(func() time.Time {
		return time.UnixMilli(clock.Load()).UTC()
	}))
	if err != nil {
		return err
	}

	p.store.RegisterOnBarClose(barstore.BarCloseListenerFunc(func(_ string, bar types.Bar) error {
		clock.Store(bar.Timestamp.Add(time.Minute).UnixMilli())

		return nil
	}))

	out := cmd.Root().Writer
	decisions := 0

	unregister := p.dispatch(ctx, strategy.DecisionHandlerFunc(func(_ context.Context, instrument string, d types.Decision) error {
		decisions++
		printDecision(out, time.UnixMilli(clock.Load()).UTC(), instrument, d)

		return nil
	}))
	defer unregister()

	var progress func()

	if !cmd.Bool("no-progress") {
		bar := progressbar.NewOptions(len(bars),
			progressbar.OptionSetDescription(fmt.Sprintf("Replaying %s", cmd.String("instrument"))),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWriter(cmd.Root().ErrWriter),
		)
		defer func() { _ = bar.Finish() }()

		progress = func() { _ = bar.Add(1) }
	}

	result, err := replay.Run(ctx, p.store, cmd.String("instrument"), bars, progress)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "replayed %d bars (%d rejected by the store, %d malformed rows skipped), %d execute decisions\n",
		result.Stored, result.Rejected, dropped, decisions)

	return nil
}

func printDecision(w io.Writer, at time.Time, instrument string, d types.Decision) {
	direction := "-"
	if dir, err := d.Direction.Take(); err == nil {
		direction = string(dir)
	}

	fmt.Fprintf(w, "%s %s %s %s score=%.2f reason=%q\n",
		at.Format(time.RFC3339), instrument, d.State, direction, d.Score, d.Reason)
}
