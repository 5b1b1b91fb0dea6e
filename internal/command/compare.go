// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/apidiff/internal/config"
	"github.com/tfctl/apidiff/internal/differ"
	"github.com/tfctl/apidiff/internal/log"
	"github.com/tfctl/apidiff/internal/meta"
	"github.com/tfctl/apidiff/internal/source"
)

// compareCommandAction is the action handler for the "compare" subcommand. It
// compares two JSON API surfaces with the aggregator registered as the
// listener and renders the result.
func compareCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "compare"

	if cmd.Args().Len() != 2 {
		return fmt.Errorf("compare needs exactly two surfaces: <old> <new>")
	}
	oldLoc, newLoc := cmd.Args().Get(0), cmd.Args().Get(1)

	agg, err := newAggregator(cmd)
	if err != nil {
		return err
	}

	opts := sourceOptions(cmd)
	before, err := source.ReadAll(ctx, oldLoc, opts...)
	if err != nil {
		return err
	}
	after, err := source.ReadAll(ctx, newLoc, opts...)
	if err != nil {
		return err
	}

	if err := differ.Compare(before, after, agg); err != nil {
		return fmt.Errorf("failed to compare %s and %s: %w", oldLoc, newLoc, err)
	}

	return emit(cmd, m, agg)
}

// compareCommandBuilder constructs the "compare" subcommand.
func compareCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "compare two JSON API surfaces",
		UsageText: "apidiff compare <old> <new>",
		Metadata:  map[string]any{"meta": meta},
		Flags:     NewGlobalFlags("compare", meta.ConfigFile),
		Action:    compareCommandAction,
	}
}
