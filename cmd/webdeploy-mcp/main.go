// SPDX-License-Identifier: Apache-2.0

// Command webdeploy-mcp extracts Web Deploy parameter candidates from
// web.config files, either from the command line or as an MCP server over
// stdio.
package main

import (
	"context"
	"os"
	"os/signal"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
