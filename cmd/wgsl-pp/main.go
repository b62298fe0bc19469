package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mbullington/wgpu-pp/internal/command/expand"
)

func main() {
	app := &cli.Command{
		Name:  "wgsl-pp",
		Usage: "expand #include/#define/#undef directives in WGSL shaders",
		Commands: []*cli.Command{
			expand.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
