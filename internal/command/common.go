// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/apidiff/internal/aggregator"
	"github.com/tfctl/apidiff/internal/cacheutil"
	"github.com/tfctl/apidiff/internal/config"
	"github.com/tfctl/apidiff/internal/filters"
	"github.com/tfctl/apidiff/internal/log"
	"github.com/tfctl/apidiff/internal/meta"
	"github.com/tfctl/apidiff/internal/output"
	"github.com/tfctl/apidiff/internal/severity"
	"github.com/tfctl/apidiff/internal/source"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// BuildFilters assembles the filter chain from config and flags. Order is
// ignore rules (config "ignore", then --ignore-file), --exclude,
// --min-severity and finally --filter expressions, so the cheap checks run
// first.
func BuildFilters(cmd *cli.Command) ([]filters.Filter, error) {
	var fs []filters.Filter

	var rules filters.IgnoreRules
	if err := config.Decode("ignore", &rules); err != nil && !errors.Is(err, config.ErrNotFound) {
		return nil, fmt.Errorf("invalid ignore rules in config: %w", err)
	}

	if path := cmd.String("ignore-file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open ignore file: %w", err)
		}
		more, err := filters.LoadIgnoreRules(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("invalid ignore file %s: %w", path, err)
		}
		rules = append(rules, more...)
	}

	if len(rules) > 0 {
		if err := rules.Validate(); err != nil {
			return nil, err
		}
		fs = append(fs, rules)
	}

	if exclude := cmd.String("exclude"); exclude != "" {
		sevs, err := parseSeverities(exclude)
		if err != nil {
			return nil, fmt.Errorf("invalid --exclude: %w", err)
		}
		fs = append(fs, filters.ExcludeSeverity(sevs...))
	}

	if floor := cmd.String("min-severity"); floor != "" {
		sev, err := severity.ParseSeverity(floor)
		if err != nil {
			return nil, fmt.Errorf("invalid --min-severity: %w", err)
		}
		fs = append(fs, filters.MinSeverity(sev))
	}

	exprs, err := filters.BuildFilters(cmd.String("filter"))
	if err != nil {
		return nil, err
	}
	for _, e := range exprs {
		fs = append(fs, e)
	}

	log.Debugf("filter chain: %v", fs)
	return fs, nil
}

// newAggregator returns an aggregator configured with the command's filters.
func newAggregator(cmd *cli.Command) (*aggregator.Aggregator, error) {
	fs, err := BuildFilters(cmd)
	if err != nil {
		return nil, err
	}
	return aggregator.New(fs...), nil
}

// sourceOptions returns the S3 options for inputs. The config keys
// s3.endpoint and s3.max-attempts tune the client. The cache is purged of
// entries older than the config key cache.clean (hours) before use.
func sourceOptions(cmd *cli.Command) []source.Option {
	endpoint, _ := config.GetString("s3.endpoint", "")
	attempts, _ := config.GetInt("s3.max-attempts", 0)
	opts := []source.Option{
		source.WithProfile(cmd.String("profile")),
		source.WithRegion(cmd.String("region")),
		source.WithEndpoint(endpoint),
		source.WithMaxAttempts(attempts),
	}

	cache, err := cacheutil.Open()
	if err != nil {
		log.WithError(err).Warnf("cache unavailable")
		return opts
	}
	if hours, _ := config.GetInt("cache.clean", 0); hours > 0 {
		if err := cache.Purge(time.Duration(hours) * time.Hour); err != nil {
			log.WithError(err).Warnf("cache purge failed")
		}
	}
	return append(opts, source.WithCache(cache))
}

// emit renders the finalized aggregator and applies --fail-on.
func emit(cmd *cli.Command, m meta.Meta, agg *aggregator.Aggregator) error {
	w := m.Out
	if w == nil {
		w = os.Stdout
	}

	counts := agg.Counts()
	opts := output.Options{
		Format:    cmd.String("output"),
		Color:     cmd.Bool("color"),
		Titles:    cmd.Bool("titles"),
		Padding:   cmd.Int("padding"),
		Sort:      cmd.String("sort"),
		NoSummary: cmd.Bool("no-summary"),
	}
	if err := output.Render(w, agg.Differences(), counts, opts); err != nil {
		return err
	}

	threshold, err := severity.ParseSeverity(cmd.String("fail-on"))
	if err != nil {
		return fmt.Errorf("invalid --fail-on: %w", err)
	}
	return output.CheckFailOn(counts, threshold)
}
