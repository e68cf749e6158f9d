package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/glmkit/internal/modelspec"
)

func buildCmd() *cli.Command {
	var specPath string

	return &cli.Command{
		Name:  "build",
		Usage: "Build a model from a spec file and print its variables",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "spec",
				Aliases:     []string{"s"},
				Usage:       "path to a .yaml or .json model spec",
				Destination: &specPath,
				Required:    true,
			},
			jsonFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := newLogger()

			spec, err := modelspec.Load(specPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load spec %q: %v", specPath, err), 1)
			}
			m, lm, err := spec.Build(log)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: build model: %v", err), 1)
			}
			log.Info("model built", "name", m.Name(), "variables", len(m.Vars()))

			if asJSON {
				type varRow struct {
					Name     string `json:"name"`
					Summary  string `json:"summary"`
					Observed bool   `json:"observed"`
				}
				out := struct {
					Name   string   `json:"name"`
					Labels []string `json:"labels"`
					Vars   []varRow `json:"variables"`
				}{Name: m.Name(), Labels: lm.Labels}
				for _, rv := range m.Vars() {
					out.Vars = append(out.Vars, varRow{
						Name:     rv.Name,
						Summary:  rv.Summary(),
						Observed: rv.IsObserved(),
					})
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			fmt.Print(m.Describe())
			fmt.Printf("estimate: %s\n", lm.Estimate.String())
			return nil
		},
	}
}
