package main

import (
	"fmt"

	"github.com/klauspost/compress/flate"
	"github.com/logicossoftware/go-siq"
	"github.com/spf13/cobra"
)

func newRepackCommand(a *app) *cobra.Command {
	var (
		compression string
		level       int
	)

	cmd := &cobra.Command{
		Use:   "repack <in> <out>",
		Short: "Load a package and save it in canonical form",
		Long: `Load a package and save it again. Older schema generations are migrated
and unknown members are dropped.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := parseCompression(compression)
			if err != nil {
				return err
			}
			dropped := 0
			p, err := siq.Open(args[0], siq.WithLogger(a.logger), siq.WithUnknownResourceHandler(func(*siq.UnknownResourceError) {
				dropped++
			}))
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			err = siq.WriteFile(args[1], p,
				siq.WithResourceCompression(comp),
				siq.WithCompressionLevel(level),
				siq.WithWriteLogger(a.logger),
			)
			if err != nil {
				return fmt.Errorf("write %s: %w", args[1], err)
			}
			a.logger.Info("repacked", "in", args[0], "out", args[1], "compression", comp, "dropped", dropped)
			return nil
		},
	}
	cmd.Flags().StringVarP(&compression, "compression", "c", "deflate", "resource compression: store, deflate or zstd")
	cmd.Flags().IntVar(&level, "level", flate.DefaultCompression, "deflate level")
	return cmd
}

func parseCompression(s string) (siq.Compression, error) {
	for _, c := range []siq.Compression{siq.CompStore, siq.CompDeflate, siq.CompZSTD} {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown compression %q", s)
}
