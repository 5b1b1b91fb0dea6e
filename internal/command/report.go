// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/apidiff/internal/config"
	"github.com/tfctl/apidiff/internal/log"
	"github.com/tfctl/apidiff/internal/meta"
	"github.com/tfctl/apidiff/internal/source"
)

// reportCommandAction is the action handler for the "report" subcommand. It
// replays a recorded difference stream from a file, stdin or S3 through the
// aggregator and renders the result.
func reportCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "report"

	input := source.Stdin
	if cmd.Args().Len() > 0 {
		input = cmd.Args().First()
	}

	agg, err := newAggregator(cmd)
	if err != nil {
		return err
	}

	format, err := source.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	r, err := source.Open(ctx, input, sourceOptions(cmd)...)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := source.Replay(r, format, agg); err != nil {
		return fmt.Errorf("failed to replay %s: %w", input, err)
	}

	return emit(cmd, m, agg)
}

// reportCommandBuilder constructs the "report" subcommand.
func reportCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "aggregate a recorded difference stream",
		UsageText: "apidiff report [input|-|s3://bucket/key]",
		Metadata:  map[string]any{"meta": meta},
		Flags: append(NewGlobalFlags("report", meta.ConfigFile),
			NewFormatFlag("report", meta.ConfigFile),
		),
		Action: reportCommandAction,
	}
}
