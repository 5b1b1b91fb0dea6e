// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewGlobalFlags returns the flags shared by report and compare. params[0] is
// the command namespace and params[1], when given, the config file that
// string flags also read their values from.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	strFlags := []*cli.StringFlag{
		{
			Name:    "exclude",
			Aliases: []string{"x"},
			Usage:   "comma-separated list of severities to exclude",
			Validator: func(value string) error {
				return FlagValidators(value, SeverityListValidator)
			},
		},
		{
			Name:    "fail-on",
			Usage:   "fail when any difference is at or above this severity",
			Sources: cli.NewValueSourceChain(cli.EnvVar("APIDIFF_FAIL_ON")),
			Validator: func(value string) error {
				return FlagValidators(value, SeverityValidator)
			},
		},
		{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to differences",
		},
		{
			Name:    "ignore-file",
			Aliases: []string{"i"},
			Usage:   "YAML file of ignore rules",
		},
		{
			Name:    "min-severity",
			Aliases: []string{"m"},
			Usage:   "drop differences below this severity",
			Validator: func(value string) error {
				return FlagValidators(value, SeverityValidator)
			},
		},
		{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		{
			Name:    "profile",
			Usage:   "AWS profile for s3:// inputs",
			Sources: cli.NewValueSourceChain(cli.EnvVar("APIDIFF_AWS_PROFILE")),
		},
		{
			Name:    "region",
			Usage:   "AWS region for s3:// inputs",
			Sources: cli.NewValueSourceChain(cli.EnvVar("APIDIFF_AWS_REGION")),
		},
		{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of columns to sort the table by",
		},
	}

	for _, f := range strFlags {
		if len(params) == 2 && params[1] != "" {
			f = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], f)
		}
		flags = append(flags, f)
	}

	flags = append(flags,
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.BoolFlag{
			Name:  "no-summary",
			Usage: "omit the summary line from text output",
			Value: false,
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "column padding for text output",
			Value: 2,
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	)

	return
}

// NewFormatFlag constructs the --format flag naming the encoding of a
// recorded difference stream.
func NewFormatFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "format",
		Usage: "input stream format (auto, json, yaml)",
		Value: "auto",
		Validator: func(value string) error {
			return FlagValidators(value, FormatValidator)
		},
	}

	if len(params) == 2 && params[1] != "" {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
