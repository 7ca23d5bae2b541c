package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/logicossoftware/go-siq"
	"github.com/spf13/cobra"
)

type summary struct {
	ID        string         `json:"id,omitempty"`
	Name      string         `json:"name"`
	Version   float64        `json:"version"`
	Date      string         `json:"date,omitempty"`
	Language  string         `json:"language,omitempty"`
	Rounds    int            `json:"rounds"`
	Themes    int            `json:"themes"`
	Questions int            `json:"questions"`
	Resources []resourceInfo `json:"resources"`
	Unused    []string       `json:"unused_resources,omitempty"`
	Missing   []missingInfo  `json:"missing_resources,omitempty"`
	Unknown   []string       `json:"unknown_members,omitempty"`
}

type resourceInfo struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Size     int    `json:"size"`
	SHA256   string `json:"sha256"`
}

type missingInfo struct {
	Question string `json:"question"`
	Name     string `json:"name"`
}

func newInspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print a JSON summary of a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var unknown []string
			p, err := siq.Open(args[0], siq.WithLogger(a.logger), siq.WithUnknownResourceHandler(func(e *siq.UnknownResourceError) {
				unknown = append(unknown, e.Path)
			}))
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			s := summarize(p)
			s.Unknown = unknown
			b, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, string(b))
			return err
		},
	}
}

func summarize(p *siq.Package) summary {
	s := summary{
		ID:        p.ID,
		Name:      p.Name,
		Version:   p.Version,
		Date:      p.Date,
		Language:  p.Language,
		Rounds:    p.RoundLevel().Count(siq.Root{}),
		Resources: []resourceInfo{},
	}
	for ri := range p.Rounds {
		r := siq.RoundIdx{Index: ri}
		s.Themes += p.ThemeLevel().Count(r)
		for ti := range p.Rounds[ri].Themes {
			s.Questions += p.QuestionLevel().Count(r.Theme(ti))
		}
	}
	for _, key := range p.ResourceKeys() {
		data := p.Resources[key]
		sum := sha256.Sum256(data)
		s.Resources = append(s.Resources, resourceInfo{
			Name:     key.FileName(),
			Category: key.Category.String(),
			Size:     len(data),
			SHA256:   hex.EncodeToString(sum[:]),
		})
	}
	for _, key := range p.UnusedResources() {
		s.Unused = append(s.Unused, key.Name)
	}
	for _, m := range p.MissingResources() {
		s.Missing = append(s.Missing, missingInfo{
			Question: siq.QuestionNode(m.Question).String(),
			Name:     m.Key.Name,
		})
	}
	return s
}
