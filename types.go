package siq

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// CanonicalVersion is the schema generation written by Encode.
const CanonicalVersion float64 = 4

const (
	// ContentMember is the container member holding the document tree.
	ContentMember = "content.xml"
	// ContentTypesMember is the static content-types declaration.
	ContentTypesMember = "[Content_Types].xml"
)

const (
	defaultRoundName = "New Round"
	defaultThemeName = "New Theme"

	dateLayout = "02.01.2006"

	ladderSize = 5
	priceStep  = 100
)

// Function variables for testing injection.
var (
	now   = time.Now
	newID = uuid.NewString
)

// Package is the root of a trivia package. It owns its rounds and the
// binary resources bundled with them.
type Package struct {
	ID          string
	Name        string
	Version     float64
	Date        string
	Difficulty  int
	Language    string
	Logo        string
	Publisher   string
	Restriction string
	Rounds      []Round
	Tags        []string
	Info        Info
	Resources   map[ResourceKey][]byte
}

type Round struct {
	Name   string
	Kind   string // free-form, e.g. "final"
	Info   Info
	Themes []Theme
}

type Theme struct {
	Name      string
	Info      Info
	Questions []Question
}

type Question struct {
	Price    int
	Type     *QuestionType
	Scenario []Atom
	Right    []Answer
	Wrong    []Answer
	Info     Info
}

// QuestionType marks a question with special rules ("auction", "cat", ...).
type QuestionType struct {
	Name   string
	Params []QuestionParam
}

type QuestionParam struct {
	Name  string
	Value string
}

// Answer is one accepted or rejected answer. An empty Text is an answer slot
// that exists but carries no text.
type Answer struct {
	Text string
}

// AtomKind tells how the body of an Atom is interpreted. Kinds other than the
// predefined ones are kept as read and never resolve to a resource.
type AtomKind string

const (
	AtomText  AtomKind = "text"
	AtomImage AtomKind = "image"
	AtomAudio AtomKind = "voice"
	AtomVideo AtomKind = "video"
)

// Atom is one unit of question content. For AtomText the body is display
// text; for media kinds it is a resource placeholder.
type Atom struct {
	Time *float64 // seconds
	Kind AtomKind
	Body string
}

// Info is optional free-text metadata. The zero value means "no info".
type Info struct {
	Comments  string
	Extension string
	Authors   []string
	Sources   []string
}

// NewPackage returns an empty package with a fresh ID, the canonical version
// and today's date.
func NewPackage(name string) *Package {
	return &Package{
		ID:        newID(),
		Name:      name,
		Version:   CanonicalVersion,
		Date:      now().Format(dateLayout),
		Resources: make(map[ResourceKey][]byte),
	}
}

// NewRound returns a round with the default name and no themes.
func NewRound() Round {
	return Round{Name: defaultRoundName}
}

// NewTheme returns a theme seeded with the default five-question ladder.
func NewTheme() Theme {
	t := Theme{Name: defaultThemeName}
	for range ladderSize {
		t.Questions = append(t.Questions, NewQuestion(t.Questions))
	}
	return t
}

// NewQuestion returns an empty question priced to follow siblings.
func NewQuestion(siblings []Question) Question {
	return Question{Price: GuessNextPrice(siblings)}
}

// GuessNextPrice suggests the price of a question appended after questions.
//
// With two or more questions the step is the absolute difference between the
// last two prices, so a decreasing tail still yields a price above the last
// one. A single question steps by 100; an empty theme starts at 100.
func GuessNextPrice(questions []Question) int {
	switch n := len(questions); n {
	case 0:
		return priceStep
	case 1:
		return questions[0].Price + priceStep
	default:
		last, prev := questions[n-1].Price, questions[n-2].Price
		step := last - prev
		if step < 0 {
			step = -step
		}
		return last + step
	}
}

// GuessNextPrice is GuessNextPrice over the theme's questions.
func (t *Theme) GuessNextPrice() int {
	return GuessNextPrice(t.Questions)
}

// LanguageTag parses Language as a BCP 47 tag.
func (p *Package) LanguageTag() (language.Tag, error) {
	return language.Parse(p.Language)
}

func (i Info) IsZero() bool {
	return i.Comments == "" && i.Extension == "" && len(i.Authors) == 0 && len(i.Sources) == 0
}

func (i Info) Clone() Info {
	i.Authors = slices.Clone(i.Authors)
	i.Sources = slices.Clone(i.Sources)
	return i
}

func (a Atom) Clone() Atom {
	if a.Time != nil {
		t := *a.Time
		a.Time = &t
	}
	return a
}

func (q Question) Clone() Question {
	if q.Type != nil {
		t := QuestionType{Name: q.Type.Name, Params: slices.Clone(q.Type.Params)}
		q.Type = &t
	}
	if q.Scenario != nil {
		scenario := make([]Atom, len(q.Scenario))
		for i, a := range q.Scenario {
			scenario[i] = a.Clone()
		}
		q.Scenario = scenario
	}
	q.Right = slices.Clone(q.Right)
	q.Wrong = slices.Clone(q.Wrong)
	q.Info = q.Info.Clone()
	return q
}

func (t Theme) Clone() Theme {
	if t.Questions != nil {
		questions := make([]Question, len(t.Questions))
		for i, q := range t.Questions {
			questions[i] = q.Clone()
		}
		t.Questions = questions
	}
	t.Info = t.Info.Clone()
	return t
}

func (r Round) Clone() Round {
	if r.Themes != nil {
		themes := make([]Theme, len(r.Themes))
		for i, t := range r.Themes {
			themes[i] = t.Clone()
		}
		r.Themes = themes
	}
	r.Info = r.Info.Clone()
	return r
}

// Clone returns a deep copy of p, resource payloads included.
func (p *Package) Clone() *Package {
	c := *p
	if p.Rounds != nil {
		c.Rounds = make([]Round, len(p.Rounds))
		for i, r := range p.Rounds {
			c.Rounds[i] = r.Clone()
		}
	}
	c.Tags = slices.Clone(p.Tags)
	c.Info = p.Info.Clone()
	if p.Resources != nil {
		c.Resources = make(map[ResourceKey][]byte, len(p.Resources))
		for k, v := range p.Resources {
			c.Resources[k] = slices.Clone(v)
		}
	}
	return &c
}
