// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/apidiff/internal/config"
	"github.com/tfctl/apidiff/internal/log"
	"github.com/tfctl/apidiff/internal/meta"
)

// InitApp builds the root command for args. Reports are written to os.Stdout.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	return initApp(ctx, args, meta.Meta{Out: os.Stdout})
}

func initApp(ctx context.Context, args []string, m meta.Meta) (*cli.Command, error) {
	// The arg[1] immediately following the binary (arg[0]) is the apidiff
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	// A missing config file is normal.
	cfg, err := config.Load(ns)
	if err != nil {
		log.Debugf("no config loaded: %v", err)
		cfg = config.Type{Namespace: ns}
		config.Config = cfg
	}
	cfgFile, _ := config.File()

	m.Args = args
	m.Config = cfg
	m.ConfigFile = cfgFile
	m.Context = ctx
	if m.Out == nil {
		m.Out = os.Stdout
	}

	app := &cli.Command{
		Name:  "apidiff",
		Usage: "API difference aggregator",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "apidiff version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		reportCommandBuilder(m),
		compareCommandBuilder(m),
		completionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
