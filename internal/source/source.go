// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tfctl/apidiff/internal/log"
)

// Stdin is the location naming standard input.
const Stdin = "-"

// Open returns a reader for location, which is "-" for stdin, an
// s3://bucket/key URI, or a file path. The caller closes the reader.
func Open(ctx context.Context, location string, opts ...Option) (io.ReadCloser, error) {
	log.Debugf("opening source: %s", location)

	switch {
	case location == "" || location == Stdin:
		return io.NopCloser(os.Stdin), nil
	case strings.HasPrefix(location, "s3://"):
		return openS3(ctx, location, opts...)
	}

	info, err := os.Stat(location)
	if err != nil {
		return nil, fmt.Errorf("input does not exist: %s", location)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("input cannot be a directory: %s", location)
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, nil
}

// ReadAll opens location and returns its whole content.
func ReadAll(ctx context.Context, location string, opts ...Option) ([]byte, error) {
	r, err := Open(ctx, location, opts...)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return data, nil
}
