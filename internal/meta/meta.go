// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"
	"io"

	"github.com/tfctl/apidiff/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI
// arguments, loaded configuration, context, the config file used for flag
// sources and the writer reports go to.
type Meta struct {
	Args       []string
	Config     config.Type
	ConfigFile string
	Context    context.Context
	Out        io.Writer
}
