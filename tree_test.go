package siq

import (
	"reflect"
	"testing"
)

func themesNamed(names ...string) []Theme {
	ts := make([]Theme, len(names))
	for i, n := range names {
		ts[i] = Theme{Name: n}
	}
	return ts
}

func themeNames(ts []Theme) []string {
	var names []string
	for _, t := range ts {
		names = append(names, t.Name)
	}
	return names
}

func TestLevelBounds(t *testing.T) {
	p := &Package{Rounds: []Round{{Name: "r", Themes: themesNamed("a", "b")}}}
	themes := p.ThemeLevel()
	r := RoundIdx{Index: 0}

	if n := themes.Count(r); n != 2 {
		t.Fatalf("count %d", n)
	}
	if n := themes.Count(RoundIdx{Index: 7}); n != 0 {
		t.Fatalf("count of missing round %d", n)
	}

	for _, i := range []int{-1, 2, 3} {
		idx := r.Theme(i)
		if themes.Contains(idx) {
			t.Fatalf("contains %d", i)
		}
		if _, ok := themes.Get(idx); ok {
			t.Fatalf("get %d", i)
		}
		if _, ok := themes.Remove(idx); ok {
			t.Fatalf("remove %d", i)
		}
	}
	if _, ok := themes.Insert(r.Theme(3), Theme{Name: "x"}); ok {
		t.Fatal("insert past count must fail")
	}
	if _, ok := themes.Insert(r.Theme(-1), Theme{Name: "x"}); ok {
		t.Fatal("insert at negative position must fail")
	}
	idx, ok := themes.Insert(r.Theme(2), Theme{Name: "c"})
	if !ok || idx != r.Theme(2) {
		t.Fatalf("insert at count: %v %v", idx, ok)
	}
	if got := themeNames(p.Rounds[0].Themes); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("themes %v", got)
	}
	if _, ok := themes.Get(ThemeIdx{Round: 5, Index: 0}); ok {
		t.Fatal("get under missing round")
	}
}

func TestLevelInsertRemoveShift(t *testing.T) {
	p := &Package{Rounds: []Round{{Themes: themesNamed("a", "b", "c")}}}
	themes := p.ThemeLevel()

	if _, ok := themes.Insert(ThemeIdx{Index: 1}, Theme{Name: "x"}); !ok {
		t.Fatal("insert failed")
	}
	if got := themeNames(p.Rounds[0].Themes); !reflect.DeepEqual(got, []string{"a", "x", "b", "c"}) {
		t.Fatalf("after insert %v", got)
	}
	removed, ok := themes.Remove(ThemeIdx{Index: 0})
	if !ok || removed.Name != "a" {
		t.Fatalf("removed %+v %v", removed, ok)
	}
	if got := themeNames(p.Rounds[0].Themes); !reflect.DeepEqual(got, []string{"x", "b", "c"}) {
		t.Fatalf("after remove %v", got)
	}
	th, ok := themes.Get(ThemeIdx{Index: 1})
	if !ok || th.Name != "b" {
		t.Fatalf("get after shift %+v", th)
	}
	th.Name = "B"
	if p.Rounds[0].Themes[1].Name != "B" {
		t.Fatal("Get must return the stored entity")
	}
}

func TestLevelPush(t *testing.T) {
	p := &Package{}
	idx, ok := p.RoundLevel().Push(Root{}, Round{Name: "first"})
	if !ok || idx != (RoundIdx{Index: 0}) {
		t.Fatalf("push %v %v", idx, ok)
	}
	idx, _ = p.RoundLevel().Push(Root{}, Round{Name: "second"})
	if idx != (RoundIdx{Index: 1}) || p.Rounds[1].Name != "second" {
		t.Fatalf("push second %v %+v", idx, p.Rounds)
	}
	if _, ok := p.ThemeLevel().Push(RoundIdx{Index: 2}, Theme{}); ok {
		t.Fatal("push under missing round")
	}
	var nilPkg *Package
	if _, ok := nilPkg.RoundLevel().Push(Root{}, Round{}); ok {
		t.Fatal("push into nil package")
	}
}

func TestDuplicateThemeShiftsFollowing(t *testing.T) {
	p := &Package{Rounds: []Round{{Themes: themesNamed("t0", "t1", "t2")}}}
	p.Rounds[0].Themes[1].Questions = priced(100, 200)

	idx, ok := p.ThemeLevel().Duplicate(ThemeIdx{Round: 0, Index: 1})
	if !ok || idx != (ThemeIdx{Round: 0, Index: 2}) {
		t.Fatalf("duplicate %v %v", idx, ok)
	}
	if got := themeNames(p.Rounds[0].Themes); !reflect.DeepEqual(got, []string{"t0", "t1", "t1", "t2"}) {
		t.Fatalf("themes %v", got)
	}
	moved, _ := p.ThemeLevel().Get(ThemeIdx{Round: 0, Index: 3})
	if moved.Name != "t2" {
		t.Fatalf("theme formerly at 2 is %q", moved.Name)
	}

	p.Rounds[0].Themes[2].Questions[0].Price = 999
	if p.Rounds[0].Themes[1].Questions[0].Price != 100 {
		t.Fatal("duplicate shares questions with its source")
	}

	if _, ok := p.ThemeLevel().Duplicate(ThemeIdx{Round: 0, Index: 9}); ok {
		t.Fatal("duplicate of missing theme")
	}
	if len(p.Rounds[0].Themes) != 4 {
		t.Fatal("failed duplicate changed the tree")
	}
}

func TestAllocate(t *testing.T) {
	p := &Package{}
	r, ok := p.RoundLevel().Allocate(Root{})
	if !ok || p.Rounds[0].Name != defaultRoundName || len(p.Rounds[0].Themes) != 0 {
		t.Fatalf("allocate round %v %+v", ok, p.Rounds)
	}
	th, ok := p.ThemeLevel().Allocate(r)
	if !ok || th != r.Theme(0) {
		t.Fatalf("allocate theme %v %v", th, ok)
	}
	var prices []int
	for _, q := range p.Rounds[0].Themes[0].Questions {
		prices = append(prices, q.Price)
	}
	if !reflect.DeepEqual(prices, []int{100, 200, 300, 400, 500}) {
		t.Fatalf("ladder %v", prices)
	}
	q, ok := p.QuestionLevel().Allocate(th)
	if !ok || q != th.Question(5) {
		t.Fatalf("allocate question %v %v", q, ok)
	}
	got, _ := p.QuestionLevel().Get(q)
	if got.Price != 600 {
		t.Fatalf("guessed price %d", got.Price)
	}
	if _, ok := p.QuestionLevel().Allocate(ThemeIdx{Round: 0, Index: 3}); ok {
		t.Fatal("allocate under missing theme")
	}
	if _, ok := p.ThemeLevel().Allocate(RoundIdx{Index: 1}); ok {
		t.Fatal("allocate under missing round")
	}
}

func TestNodeOperations(t *testing.T) {
	p := &Package{}
	if _, ok := p.AllocateNode(RoundNode(RoundIdx{})); !ok {
		t.Fatal("allocate round node")
	}
	if _, ok := p.ThemeLevel().Allocate(RoundIdx{}); !ok {
		t.Fatal("allocate theme")
	}

	tn := ThemeNode(ThemeIdx{Round: 0, Index: 0})
	added, ok := p.AllocateNode(tn)
	if !ok || added != ThemeNode(ThemeIdx{Round: 0, Index: 1}) {
		t.Fatalf("allocate sibling theme %v %v", added, ok)
	}
	qn := QuestionNode(QuestionIdx{Round: 0, Theme: 1, Index: 2})
	added, ok = p.AllocateNode(qn)
	if !ok || added != QuestionNode(QuestionIdx{Round: 0, Theme: 1, Index: 5}) {
		t.Fatalf("allocate sibling question %v %v", added, ok)
	}
	if !p.ContainsNode(added) {
		t.Fatal("allocated node missing")
	}

	dup, ok := p.DuplicateNode(RoundNode(RoundIdx{Index: 0}))
	if !ok || dup != RoundNode(RoundIdx{Index: 1}) {
		t.Fatalf("duplicate round %v %v", dup, ok)
	}
	if !reflect.DeepEqual(p.Rounds[0], p.Rounds[1]) {
		t.Fatal("duplicate differs from source")
	}
	dup, ok = p.DuplicateNode(QuestionNode(QuestionIdx{Round: 1, Theme: 0, Index: 0}))
	if !ok || dup != QuestionNode(QuestionIdx{Round: 1, Theme: 0, Index: 1}) {
		t.Fatalf("duplicate question %v %v", dup, ok)
	}
	if got := len(p.Rounds[1].Themes[0].Questions); got != 6 {
		t.Fatalf("questions after duplicate %d", got)
	}

	if !p.RemoveNode(ThemeNode(ThemeIdx{Round: 1, Index: 0})) {
		t.Fatal("remove theme")
	}
	if len(p.Rounds[1].Themes) != 1 {
		t.Fatalf("themes after remove %d", len(p.Rounds[1].Themes))
	}
	if p.RemoveNode(QuestionNode(QuestionIdx{Round: 4, Theme: 0, Index: 0})) {
		t.Fatal("remove missing question")
	}
	if !p.RemoveNode(RoundNode(RoundIdx{Index: 1})) || len(p.Rounds) != 1 {
		t.Fatal("remove round")
	}

	var zero PackageNode
	if p.ContainsNode(zero) || p.RemoveNode(zero) {
		t.Fatal("zero node addresses nothing")
	}
	if _, ok := p.DuplicateNode(zero); ok {
		t.Fatal("duplicate zero node")
	}
	if _, ok := p.AllocateNode(zero); ok {
		t.Fatal("allocate zero node")
	}
	if _, ok := p.AllocateNode(QuestionNode(QuestionIdx{Round: 3})); ok {
		t.Fatal("allocate under missing theme")
	}
}
