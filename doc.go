// Package siq reads, edits and writes SIQ trivia packages.
//
// An SIQ file is a zip container holding:
//   - content.xml, the document tree (rounds, themes, questions) and its metadata
//   - [Content_Types].xml, a static declaration expected by authoring tools
//   - binary resources under Audio/, Images/, Video/ and Texts/
//
// Media atoms in questions refer to resources by placeholder: an atom of kind
// AtomImage with body "@logo.png" resolves to the member "Images/@logo.png".
// Bodies are percent-encoded (controls, space and non-ASCII bytes) before
// lookup, matching how member names are stored.
//
// # Basic Usage
//
// To create a package and save it:
//
//	p := siq.NewPackage("Quiz night")
//	r, _ := p.RoundLevel().Allocate(siq.Root{})
//	t, _ := p.ThemeLevel().Allocate(r)       // five questions, 100..500
//	q, _ := p.QuestionLevel().Get(t.Question(0))
//	q.Scenario = []siq.Atom{{Kind: siq.AtomImage, Body: "@logo.png"}}
//	if _, err := p.AddResource(siq.CategoryImage, "@logo.png", png); err != nil {
//		return err
//	}
//	err := siq.WriteFile("quiz.siq", p)
//
// To read one:
//
//	p, err := siq.Open("quiz.siq")
//
// # Editing the tree
//
// RoundLevel, ThemeLevel and QuestionLevel expose the same operations at each
// depth (Count, Contains, Get, Remove, Push, Insert, Duplicate, Allocate).
// PackageNode addresses any of the three levels; DuplicateNode, AllocateNode
// and RemoveNode dispatch on it. Indices are plain values: after a structural
// edit, indices at the same or a deeper level may point elsewhere.
//
// # Schema generations
//
// Documents up to version 4 are read as is and are the only generation
// written. Version 5 documents are migrated on load.
//
// Nothing in this package is safe for concurrent mutation.
package siq
