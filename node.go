package siq

import (
	"cmp"
	"fmt"
)

// Root addresses the package itself. It is the parent of every RoundIdx.
type Root struct{}

// RoundIdx addresses a round inside the package.
type RoundIdx struct {
	Index int
}

// ThemeIdx addresses a theme inside a round.
type ThemeIdx struct {
	Round int
	Index int
}

// QuestionIdx addresses a question inside a theme.
type QuestionIdx struct {
	Round int
	Theme int
	Index int
}

// Next returns the following round.
func (r RoundIdx) Next() RoundIdx { return RoundIdx{Index: r.Index + 1} }

// Theme returns the i-th theme of the round.
func (r RoundIdx) Theme(i int) ThemeIdx { return ThemeIdx{Round: r.Index, Index: i} }

// Compare orders round indices by position.
func (r RoundIdx) Compare(o RoundIdx) int { return cmp.Compare(r.Index, o.Index) }

func (r RoundIdx) parent() Root { return Root{} }
func (r RoundIdx) position() int { return r.Index }

// Parent returns the round that owns the theme.
func (t ThemeIdx) Parent() RoundIdx { return RoundIdx{Index: t.Round} }

// Next returns the following theme in the same round.
func (t ThemeIdx) Next() ThemeIdx { return ThemeIdx{Round: t.Round, Index: t.Index + 1} }

// Question returns the i-th question of the theme.
func (t ThemeIdx) Question(i int) QuestionIdx {
	return QuestionIdx{Round: t.Round, Theme: t.Index, Index: i}
}

// Compare orders theme indices lexicographically by (round, index).
func (t ThemeIdx) Compare(o ThemeIdx) int {
	if c := cmp.Compare(t.Round, o.Round); c != 0 {
		return c
	}
	return cmp.Compare(t.Index, o.Index)
}

func (t ThemeIdx) parent() RoundIdx { return t.Parent() }
func (t ThemeIdx) position() int { return t.Index }

// Parent returns the theme that owns the question.
func (q QuestionIdx) Parent() ThemeIdx { return ThemeIdx{Round: q.Round, Index: q.Theme} }

// Next returns the following question in the same theme.
func (q QuestionIdx) Next() QuestionIdx {
	return QuestionIdx{Round: q.Round, Theme: q.Theme, Index: q.Index + 1}
}

// Compare orders question indices lexicographically by (round, theme, index).
func (q QuestionIdx) Compare(o QuestionIdx) int {
	if c := cmp.Compare(q.Round, o.Round); c != 0 {
		return c
	}
	if c := cmp.Compare(q.Theme, o.Theme); c != 0 {
		return c
	}
	return cmp.Compare(q.Index, o.Index)
}

func (q QuestionIdx) parent() ThemeIdx { return q.Parent() }
func (q QuestionIdx) position() int { return q.Index }

// NodeKind tells which tree level a PackageNode addresses.
type NodeKind uint8

const (
	NodeRound NodeKind = iota + 1
	NodeTheme
	NodeQuestion
)

func (k NodeKind) String() string {
	switch k {
	case NodeRound:
		return "round"
	case NodeTheme:
		return "theme"
	case NodeQuestion:
		return "question"
	default:
		return fmt.Sprintf("NodeKind(%d)", uint8(k))
	}
}

// PackageNode is a coordinate of a round, theme or question. The zero value
// addresses nothing; build nodes with RoundNode, ThemeNode or QuestionNode.
//
// PackageNode is comparable and can be used as a map key.
type PackageNode struct {
	kind     NodeKind
	round    int
	theme    int
	question int
}

func RoundNode(r RoundIdx) PackageNode {
	return PackageNode{kind: NodeRound, round: r.Index}
}

func ThemeNode(t ThemeIdx) PackageNode {
	return PackageNode{kind: NodeTheme, round: t.Round, theme: t.Index}
}

func QuestionNode(q QuestionIdx) PackageNode {
	return PackageNode{kind: NodeQuestion, round: q.Round, theme: q.Theme, question: q.Index}
}

func (n PackageNode) Kind() NodeKind { return n.kind }

// Round reports the round index if n addresses a round.
func (n PackageNode) Round() (RoundIdx, bool) {
	if n.kind != NodeRound {
		return RoundIdx{}, false
	}
	return RoundIdx{Index: n.round}, true
}

// Theme reports the theme index if n addresses a theme.
func (n PackageNode) Theme() (ThemeIdx, bool) {
	if n.kind != NodeTheme {
		return ThemeIdx{}, false
	}
	return ThemeIdx{Round: n.round, Index: n.theme}, true
}

// Question reports the question index if n addresses a question.
func (n PackageNode) Question() (QuestionIdx, bool) {
	if n.kind != NodeQuestion {
		return QuestionIdx{}, false
	}
	return QuestionIdx{Round: n.round, Theme: n.theme, Index: n.question}, true
}

// Index returns the position of the node among its siblings.
func (n PackageNode) Index() int {
	switch n.kind {
	case NodeTheme:
		return n.theme
	case NodeQuestion:
		return n.question
	default:
		return n.round
	}
}

// Parent returns the node one level up. Round nodes have no parent.
func (n PackageNode) Parent() (PackageNode, bool) {
	switch n.kind {
	case NodeTheme:
		return RoundNode(RoundIdx{Index: n.round}), true
	case NodeQuestion:
		return ThemeNode(ThemeIdx{Round: n.round, Index: n.theme}), true
	default:
		return PackageNode{}, false
	}
}

// Next returns the following sibling of n.
func (n PackageNode) Next() PackageNode {
	switch n.kind {
	case NodeTheme:
		n.theme++
	case NodeQuestion:
		n.question++
	default:
		n.round++
	}
	return n
}

// path returns the coordinates of n from the root down.
func (n PackageNode) path() []int {
	switch n.kind {
	case NodeRound:
		return []int{n.round}
	case NodeTheme:
		return []int{n.round, n.theme}
	case NodeQuestion:
		return []int{n.round, n.theme, n.question}
	default:
		return nil
	}
}

// Compare orders nodes in tree pre-order: lexicographically by coordinates,
// with a node sorting before all of its descendants.
func (n PackageNode) Compare(o PackageNode) int {
	a, b := n.path(), o.path()
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func (n PackageNode) String() string {
	switch n.kind {
	case NodeRound:
		return fmt.Sprintf("round[%d]", n.round)
	case NodeTheme:
		return fmt.Sprintf("theme[%d.%d]", n.round, n.theme)
	case NodeQuestion:
		return fmt.Sprintf("question[%d.%d.%d]", n.round, n.theme, n.question)
	default:
		return "node[]"
	}
}
