package main

import (
	"fmt"

	"github.com/logicossoftware/go-siq"
	"github.com/spf13/cobra"
)

func newNewCommand(a *app) *cobra.Command {
	var (
		name     string
		language string
		rounds   int
		themes   int
	)

	cmd := &cobra.Command{
		Use:   "new <file>",
		Short: "Create a package skeleton",
		Long: `Create a package with the given number of rounds, each holding themes
seeded with the default five-question price ladder.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rounds < 0 || themes < 0 {
				return fmt.Errorf("--rounds and --themes must not be negative")
			}
			p := skeleton(name, language, rounds, themes)
			if language != "" {
				if _, err := p.LanguageTag(); err != nil {
					return fmt.Errorf("--language %q: %w", language, err)
				}
			}
			if err := siq.WriteFile(args[0], p, siq.WithWriteLogger(a.logger)); err != nil {
				return fmt.Errorf("write %s: %w", args[0], err)
			}
			a.logger.Info("created package", "path", args[0], "id", p.ID, "rounds", rounds, "themes", themes)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "New Package", "package name")
	cmd.Flags().StringVar(&language, "language", "", "BCP 47 language tag")
	cmd.Flags().IntVar(&rounds, "rounds", 1, "number of rounds")
	cmd.Flags().IntVar(&themes, "themes", 1, "themes per round")
	return cmd
}

func skeleton(name, language string, rounds, themes int) *siq.Package {
	p := siq.NewPackage(name)
	p.Language = language
	for range rounds {
		r, _ := p.RoundLevel().Allocate(siq.Root{})
		for range themes {
			p.ThemeLevel().Allocate(r)
		}
	}
	return p
}
