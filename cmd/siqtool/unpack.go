package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/logicossoftware/go-siq"
	"github.com/spf13/cobra"
)

const outlineFile = "outline.txt"

func newUnpackCommand(a *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "unpack <file>",
		Short: "Extract bundled resources and a tree outline",
		Long: `Extract every bundled resource into its category directory below --out,
using decoded file names, and write an outline of the question tree to
outline.txt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := siq.Open(args[0], siq.WithLogger(a.logger))
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			return unpack(a, p, outDir)
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "out", "output directory")
	return cmd
}

func unpack(a *app, p *siq.Package, outDir string) error {
	for _, key := range p.ResourceKeys() {
		path := filepath.Join(outDir, key.Category.Dir(), localName(key))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
		if err := os.WriteFile(path, p.Resources[key], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", key.Name, err)
		}
		fmt.Fprintf(a.out, "wrote %s\n", path)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	path := filepath.Join(outDir, outlineFile)
	if err := os.WriteFile(path, []byte(outline(p)), 0o644); err != nil {
		return fmt.Errorf("write outline: %w", err)
	}
	fmt.Fprintf(a.out, "wrote %s\n", path)
	return nil
}

// localName is the path of key below its category directory with every
// segment percent-decoded. Segments that do not decode to a plain file name
// are kept as stored.
func localName(key siq.ResourceKey) string {
	rel := strings.TrimPrefix(key.Name, key.Category.Dir()+"/")
	segs := strings.Split(rel, "/")
	for i, seg := range segs {
		name, err := url.PathUnescape(seg)
		if err != nil || name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			continue
		}
		segs[i] = name
	}
	return filepath.Join(segs...)
}

// outline renders one line per node in pre-order, indented by depth.
func outline(p *siq.Package) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.Name)
	for ri, r := range p.Rounds {
		rn := siq.RoundNode(siq.RoundIdx{Index: ri})
		fmt.Fprintf(&b, "  %s %s\n", rn, r.Name)
		for ti, t := range r.Themes {
			tn := siq.ThemeNode(siq.ThemeIdx{Round: ri, Index: ti})
			fmt.Fprintf(&b, "    %s %s\n", tn, t.Name)
			for qi, q := range t.Questions {
				qn := siq.QuestionNode(siq.QuestionIdx{Round: ri, Theme: ti, Index: qi})
				fmt.Fprintf(&b, "      %s %d %s\n", qn, q.Price, questionText(q))
			}
		}
	}
	return b.String()
}

func questionText(q siq.Question) string {
	var parts []string
	for _, a := range q.Scenario {
		if a.Kind == siq.AtomText {
			parts = append(parts, strings.TrimSpace(a.Body))
		} else {
			parts = append(parts, "["+string(a.Kind)+"]")
		}
	}
	return strings.Join(parts, " ")
}
