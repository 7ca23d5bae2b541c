package siq

import "slices"

// Container is the capability every tree level provides: it resolves the
// child sequence owned by the entity at parent. The returned pointer stays
// valid until the next structural edit of a same-or-shallower level.
type Container[P, T any] interface {
	Children(parent P) (*[]T, bool)
}

type index[P any] interface {
	comparable
	parent() P
	position() int
}

// Level implements lookup and editing of one tree level on top of a
// Container. Every operation is total: an index or parent that does not
// exist yields false and leaves the tree untouched.
//
// Creating operations return the index of the new entity; use Get to reach
// the entity itself.
type Level[P any, I index[P], T any] struct {
	container Container[P, T]
	at        func(parent P, pos int) I
	newItem   func(siblings []T) T
	clone     func(T) T
}

// Count returns the number of children of parent, or 0 if parent does not exist.
func (l Level[P, I, T]) Count(parent P) int {
	seq, ok := l.container.Children(parent)
	if !ok {
		return 0
	}
	return len(*seq)
}

func (l Level[P, I, T]) Contains(i I) bool {
	_, ok := l.Get(i)
	return ok
}

func (l Level[P, I, T]) Get(i I) (*T, bool) {
	seq, ok := l.container.Children(i.parent())
	if !ok {
		return nil, false
	}
	pos := i.position()
	if pos < 0 || pos >= len(*seq) {
		return nil, false
	}
	return &(*seq)[pos], true
}

// Remove detaches the entity at i. Following siblings shift down by one.
func (l Level[P, I, T]) Remove(i I) (T, bool) {
	var zero T
	seq, ok := l.container.Children(i.parent())
	if !ok {
		return zero, false
	}
	pos := i.position()
	if pos < 0 || pos >= len(*seq) {
		return zero, false
	}
	v := (*seq)[pos]
	*seq = slices.Delete(*seq, pos, pos+1)
	return v, true
}

// Push appends v under parent.
func (l Level[P, I, T]) Push(parent P, v T) (I, bool) {
	seq, ok := l.container.Children(parent)
	if !ok {
		var zero I
		return zero, false
	}
	*seq = append(*seq, v)
	return l.at(parent, len(*seq)-1), true
}

// Insert places v at i, whose position must lie in [0, Count]. Inserting at
// Count appends. Following siblings shift up by one.
func (l Level[P, I, T]) Insert(i I, v T) (I, bool) {
	seq, ok := l.container.Children(i.parent())
	if !ok {
		return i, false
	}
	pos := i.position()
	if pos < 0 || pos > len(*seq) {
		return i, false
	}
	*seq = slices.Insert(*seq, pos, v)
	return i, true
}

// Duplicate inserts a deep copy of the entity at i right after it.
func (l Level[P, I, T]) Duplicate(i I) (I, bool) {
	v, ok := l.Get(i)
	if !ok {
		return i, false
	}
	return l.Insert(l.at(i.parent(), i.position()+1), l.clone(*v))
}

// Allocate appends a default entity under parent.
func (l Level[P, I, T]) Allocate(parent P) (I, bool) {
	seq, ok := l.container.Children(parent)
	if !ok {
		var zero I
		return zero, false
	}
	return l.Push(parent, l.newItem(*seq))
}

type packageRounds struct {
	p *Package
}

func (c packageRounds) Children(Root) (*[]Round, bool) {
	if c.p == nil {
		return nil, false
	}
	return &c.p.Rounds, true
}

type roundThemes struct {
	rounds Level[Root, RoundIdx, Round]
}

func (c roundThemes) Children(r RoundIdx) (*[]Theme, bool) {
	round, ok := c.rounds.Get(r)
	if !ok {
		return nil, false
	}
	return &round.Themes, true
}

type themeQuestions struct {
	themes Level[RoundIdx, ThemeIdx, Theme]
}

func (c themeQuestions) Children(t ThemeIdx) (*[]Question, bool) {
	theme, ok := c.themes.Get(t)
	if !ok {
		return nil, false
	}
	return &theme.Questions, true
}

// RoundLevel edits the rounds of p. New rounds are named "New Round".
func (p *Package) RoundLevel() Level[Root, RoundIdx, Round] {
	return Level[Root, RoundIdx, Round]{
		container: packageRounds{p: p},
		at:        func(_ Root, pos int) RoundIdx { return RoundIdx{Index: pos} },
		newItem:   func([]Round) Round { return NewRound() },
		clone:     Round.Clone,
	}
}

// ThemeLevel edits the themes of every round of p. New themes carry the
// five-question ladder.
func (p *Package) ThemeLevel() Level[RoundIdx, ThemeIdx, Theme] {
	return Level[RoundIdx, ThemeIdx, Theme]{
		container: roundThemes{rounds: p.RoundLevel()},
		at:        func(r RoundIdx, pos int) ThemeIdx { return r.Theme(pos) },
		newItem:   func([]Theme) Theme { return NewTheme() },
		clone:     Theme.Clone,
	}
}

// QuestionLevel edits the questions of every theme of p. New questions are
// priced with GuessNextPrice.
func (p *Package) QuestionLevel() Level[ThemeIdx, QuestionIdx, Question] {
	return Level[ThemeIdx, QuestionIdx, Question]{
		container: themeQuestions{themes: p.ThemeLevel()},
		at:        func(t ThemeIdx, pos int) QuestionIdx { return t.Question(pos) },
		newItem:   NewQuestion,
		clone:     Question.Clone,
	}
}

// ContainsNode reports whether n addresses an existing entity.
func (p *Package) ContainsNode(n PackageNode) bool {
	switch n.Kind() {
	case NodeRound:
		r, _ := n.Round()
		return p.RoundLevel().Contains(r)
	case NodeTheme:
		t, _ := n.Theme()
		return p.ThemeLevel().Contains(t)
	case NodeQuestion:
		q, _ := n.Question()
		return p.QuestionLevel().Contains(q)
	default:
		return false
	}
}

// DuplicateNode copies the entity at n next to it and returns the node of
// the copy.
func (p *Package) DuplicateNode(n PackageNode) (PackageNode, bool) {
	switch n.Kind() {
	case NodeRound:
		r, _ := n.Round()
		return nodeResult(RoundNode)(p.RoundLevel().Duplicate(r))
	case NodeTheme:
		t, _ := n.Theme()
		return nodeResult(ThemeNode)(p.ThemeLevel().Duplicate(t))
	case NodeQuestion:
		q, _ := n.Question()
		return nodeResult(QuestionNode)(p.QuestionLevel().Duplicate(q))
	default:
		return PackageNode{}, false
	}
}

// AllocateNode appends a default sibling of n to n's container: a new round
// for a round node, a new theme in the same round for a theme node, a new
// question in the same theme for a question node.
func (p *Package) AllocateNode(n PackageNode) (PackageNode, bool) {
	switch n.Kind() {
	case NodeRound:
		return nodeResult(RoundNode)(p.RoundLevel().Allocate(Root{}))
	case NodeTheme:
		t, _ := n.Theme()
		return nodeResult(ThemeNode)(p.ThemeLevel().Allocate(t.Parent()))
	case NodeQuestion:
		q, _ := n.Question()
		return nodeResult(QuestionNode)(p.QuestionLevel().Allocate(q.Parent()))
	default:
		return PackageNode{}, false
	}
}

// RemoveNode removes the entity at n together with its subtree.
func (p *Package) RemoveNode(n PackageNode) bool {
	switch n.Kind() {
	case NodeRound:
		r, _ := n.Round()
		_, ok := p.RoundLevel().Remove(r)
		return ok
	case NodeTheme:
		t, _ := n.Theme()
		_, ok := p.ThemeLevel().Remove(t)
		return ok
	case NodeQuestion:
		q, _ := n.Question()
		_, ok := p.QuestionLevel().Remove(q)
		return ok
	default:
		return false
	}
}

func nodeResult[I any](wrap func(I) PackageNode) func(I, bool) (PackageNode, bool) {
	return func(i I, ok bool) (PackageNode, bool) {
		if !ok {
			return PackageNode{}, false
		}
		return wrap(i), true
	}
}
