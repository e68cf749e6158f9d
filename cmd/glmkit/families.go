package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/glmkit/pkg/glm"
)

func familiesCmd() *cli.Command {
	return &cli.Command{
		Name:  "families",
		Usage: "List the registered GLM families",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			type row struct {
				Name       string `json:"name"`
				Likelihood string `json:"likelihood"`
				Parent     string `json:"parent"`
				Link       string `json:"link"`
			}
			rows := make([]row, 0, len(glm.Names()))
			for _, name := range glm.Names() {
				f, err := glm.New(name, glm.Config{})
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
				rows = append(rows, row{
					Name:       f.Name,
					Likelihood: string(f.Likelihood),
					Parent:     f.Parent,
					Link:       f.Link.Name,
				})
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			fmt.Printf("%-12s %-18s %-8s %s\n", "FAMILY", "LIKELIHOOD", "PARENT", "LINK")
			for _, r := range rows {
				fmt.Printf("%-12s %-18s %-8s %s\n", r.Name, r.Likelihood, r.Parent, r.Link)
			}
			return nil
		},
	}
}

func describeCmd() *cli.Command {
	return &cli.Command{
		Name:      "describe",
		Usage:     "Describe one GLM family",
		ArgsUsage: "<family>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return cli.Exit("error: family name required", 1)
			}
			f, err := glm.New(name, glm.Config{})
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			fmt.Print(f.Describe())
			return nil
		},
	}
}
