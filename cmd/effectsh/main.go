// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command effectsh is a small demo binary exercising the
// algebraic-effects machine end-to-end: it runs one of seven built-in
// scenarios (identity resume, implicit abandonment, two-level forward,
// forward via re-yield, capture/resume, one-shot violation, unhandled
// effect), or all of them, against the synchronous driver and prints the
// outcome. It carries no machine
// semantics of its own — everything interesting happens in the root
// package and the driver/handlers packages this binary only wires
// together.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"code.hybscloud.com/algeff"
	"code.hybscloud.com/algeff/driver"
	"code.hybscloud.com/algeff/env"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "effectsh",
		Usage: "run a built-in algebraic-effects scenario end-to-end",
		Commands: []*cli.Command{
			listCommand(),
			runCommand(),
		},
	}
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list the built-in scenarios",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			for _, s := range scenarios() {
				fmt.Printf("%-10s %s\n", s.name, s.description)
			}
			return nil
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "run one scenario by name, or every scenario if none is given",
		ArgsUsage: "[scenario]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log driver step-loop milestones",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			var opts []driver.Option
			if cmd.Bool("verbose") {
				opts = append(opts, driver.WithLogger(log.New(os.Stderr)))
			}
			for _, s := range scenarios() {
				if name != "" && s.name != name {
					continue
				}
				if err := runScenario(ctx, s, opts); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func runScenario(ctx context.Context, s scenario, opts []driver.Option) error {
	value, err := driver.Run(ctx, s.program, s.handlerSet, env.New(), kont.NewStore(), opts...)
	if err != nil {
		var merr *kont.MachineError
		if errors.As(err, &merr) {
			fmt.Printf("%-10s Failed(%s): %v\n", s.name, merr.Kind, err)
			return nil
		}
		return err
	}
	fmt.Printf("%-10s Done(%v)\n", s.name, value)
	return nil
}
