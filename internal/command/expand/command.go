// Package expand provides the expand subcommand, which preprocesses a
// root WGSL file and emits the fully expanded source.
package expand

import "github.com/urfave/cli/v3"

// Command preprocesses a WGSL file and all of its includes.
var Command = &cli.Command{
	Name:      "expand",
	Usage:     "preprocess a WGSL file and print the expanded source",
	ArgsUsage: "<file.wgsl>",
	Action:    action,
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "define",
			Aliases: []string{"D"},
			Usage:   "predefine NAME[=VALUE] before the root file is read",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "write the expanded source to a file instead of stdout",
		},
		&cli.StringFlag{
			Name:  "validator",
			Usage: "external command run over the expanded source (e.g. \"naga\")",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "config file path",
		},
	},
}
