package siq

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html/charset"
)

// contentNamespace is the default namespace of the package element.
const contentNamespace = "http://vladimirkhil.com/ygpkg10.xsd"

// contentTypes is the static [Content_Types].xml written on every save.
const contentTypes = `<?xml version="1.0" encoding="utf-8"?>` +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="xml" ContentType="si/xml" />` +
	`</Types>`

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// The xml* types mirror content.xml. Fields tagged "version 5" are only
// populated when reading documents of that generation.

type xmlPackage struct {
	XMLName     xml.Name   `xml:"package"`
	Name        string     `xml:"name,attr,omitempty"`
	Version     float64    `xml:"version,attr,omitempty"`
	ID          string     `xml:"id,attr,omitempty"`
	Date        string     `xml:"date,attr,omitempty"`
	Publisher   string     `xml:"publisher,attr,omitempty"`
	Difficulty  int        `xml:"difficulty,attr,omitempty"`
	Language    string     `xml:"language,attr,omitempty"`
	Logo        string     `xml:"logo,attr,omitempty"`
	Restriction string     `xml:"restriction,attr,omitempty"`
	Namespace   string     `xml:"xmlns,attr,omitempty"`
	Tags        []xmlText  `xml:"tags>tag,omitempty"`
	Info        *xmlInfo   `xml:"info,omitempty"`
	Rounds      []xmlRound `xml:"rounds>round,omitempty"`
}

type xmlInfo struct {
	Authors   []xmlText `xml:"authors>author,omitempty"`
	Sources   []xmlText `xml:"sources>source,omitempty"`
	Comments  string    `xml:"comments,omitempty"`
	Extension string    `xml:"extension,omitempty"`
}

type xmlRound struct {
	Name   string     `xml:"name,attr,omitempty"`
	Type   string     `xml:"type,attr,omitempty"`
	Info   *xmlInfo   `xml:"info,omitempty"`
	Themes []xmlTheme `xml:"themes>theme,omitempty"`
}

type xmlTheme struct {
	Name      string        `xml:"name,attr,omitempty"`
	Info      *xmlInfo      `xml:"info,omitempty"`
	Questions []xmlQuestion `xml:"questions>question,omitempty"`
}

type xmlQuestion struct {
	Price    int              `xml:"price,attr"`
	TypeName string           `xml:"type,attr,omitempty"` // version 5
	Info     *xmlInfo         `xml:"info,omitempty"`
	Type     *xmlQuestionType `xml:"type,omitempty"`
	Params   []xmlParam       `xml:"params>param,omitempty"` // version 5
	Scenario []xmlAtom        `xml:"scenario>atom,omitempty"`
	Right    []xmlText        `xml:"right>answer,omitempty"`
	Wrong    []xmlText        `xml:"wrong>answer,omitempty"`
}

type xmlQuestionType struct {
	Name   string         `xml:"name,attr"`
	Params []xmlTypeParam `xml:"param,omitempty"`
}

type xmlTypeParam struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type xmlAtom struct {
	Time *float64 `xml:"time,attr,omitempty"`
	Type string   `xml:"type,attr,omitempty"`
	Body string   `xml:",chardata"`
}

// xmlText is a text-only element. Elements are structs so that empty text
// still produces an element inside non-empty collections.
type xmlText struct {
	Value string `xml:",chardata"`
}

// unmarshalContent maps content.xml onto the document model, migrating
// older generations to the canonical one.
func unmarshalContent(data []byte, logger *log.Logger) (*Package, error) {
	dec := xml.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	dec.CharsetReader = charset.NewReaderLabel
	var x xmlPackage
	if err := dec.Decode(&x); err != nil {
		return nil, err
	}
	m := migrationFor(x.Version)
	logger.Debug("reading content", "version", x.Version, "generation", m.name)
	return m.apply(&x, logger)
}

// marshalContent renders p as a canonical content.xml, prolog included.
func marshalContent(p *Package) ([]byte, error) {
	b, err := xml.Marshal(packageToXML(p))
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", ContentMember, err)
	}
	return append([]byte(xml.Header), b...), nil
}

func packageToXML(p *Package) *xmlPackage {
	x := &xmlPackage{
		Name:        p.Name,
		Version:     p.Version,
		ID:          p.ID,
		Date:        p.Date,
		Publisher:   p.Publisher,
		Difficulty:  p.Difficulty,
		Language:    p.Language,
		Logo:        p.Logo,
		Restriction: p.Restriction,
		Namespace:   contentNamespace,
		Tags:        textsToXML(p.Tags),
		Info:        infoToXML(p.Info),
	}
	for _, r := range p.Rounds {
		x.Rounds = append(x.Rounds, roundToXML(r))
	}
	return x
}

func roundToXML(r Round) xmlRound {
	x := xmlRound{Name: r.Name, Type: r.Kind, Info: infoToXML(r.Info)}
	for _, t := range r.Themes {
		x.Themes = append(x.Themes, themeToXML(t))
	}
	return x
}

func themeToXML(t Theme) xmlTheme {
	x := xmlTheme{Name: t.Name, Info: infoToXML(t.Info)}
	for _, q := range t.Questions {
		x.Questions = append(x.Questions, questionToXML(q))
	}
	return x
}

func questionToXML(q Question) xmlQuestion {
	x := xmlQuestion{
		Price: q.Price,
		Info:  infoToXML(q.Info),
		Right: answersToXML(q.Right),
		Wrong: answersToXML(q.Wrong),
	}
	if q.Type != nil {
		x.Type = &xmlQuestionType{Name: q.Type.Name}
		for _, prm := range q.Type.Params {
			x.Type.Params = append(x.Type.Params, xmlTypeParam{Name: prm.Name, Value: prm.Value})
		}
	}
	for _, a := range q.Scenario {
		xa := xmlAtom{Time: a.Time, Body: a.Body}
		if a.Kind != AtomText {
			xa.Type = string(a.Kind)
		}
		x.Scenario = append(x.Scenario, xa)
	}
	return x
}

func infoToXML(i Info) *xmlInfo {
	if i.IsZero() {
		return nil
	}
	return &xmlInfo{
		Authors:   textsToXML(i.Authors),
		Sources:   textsToXML(i.Sources),
		Comments:  i.Comments,
		Extension: i.Extension,
	}
}

func textsToXML(values []string) []xmlText {
	if len(values) == 0 {
		return nil
	}
	out := make([]xmlText, len(values))
	for i, v := range values {
		out[i] = xmlText{Value: v}
	}
	return out
}

func answersToXML(answers []Answer) []xmlText {
	if len(answers) == 0 {
		return nil
	}
	out := make([]xmlText, len(answers))
	for i, a := range answers {
		out[i] = xmlText{Value: a.Text}
	}
	return out
}

// packageFromXML maps the generation-independent parts of the document. The
// question mapping is supplied by the migration in effect.
func packageFromXML(x *xmlPackage, question func(QuestionIdx, xmlQuestion) Question) *Package {
	p := &Package{
		ID:          x.ID,
		Name:        x.Name,
		Version:     x.Version,
		Date:        x.Date,
		Difficulty:  x.Difficulty,
		Language:    x.Language,
		Logo:        x.Logo,
		Publisher:   x.Publisher,
		Restriction: x.Restriction,
		Tags:        textsFromXML(x.Tags),
		Info:        infoFromXML(x.Info),
	}
	for ri, xr := range x.Rounds {
		r := Round{Name: xr.Name, Kind: xr.Type, Info: infoFromXML(xr.Info)}
		for ti, xt := range xr.Themes {
			t := Theme{Name: xt.Name, Info: infoFromXML(xt.Info)}
			for qi, xq := range xt.Questions {
				t.Questions = append(t.Questions, question(QuestionIdx{Round: ri, Theme: ti, Index: qi}, xq))
			}
			r.Themes = append(r.Themes, t)
		}
		p.Rounds = append(p.Rounds, r)
	}
	return p
}

// questionFromXML maps a canonical question.
func questionFromXML(x xmlQuestion) Question {
	q := Question{
		Price: x.Price,
		Info:  infoFromXML(x.Info),
		Right: answersFromXML(x.Right),
		Wrong: answersFromXML(x.Wrong),
	}
	if x.Type != nil {
		q.Type = &QuestionType{Name: x.Type.Name}
		for _, prm := range x.Type.Params {
			q.Type.Params = append(q.Type.Params, QuestionParam{Name: prm.Name, Value: prm.Value})
		}
	}
	for _, xa := range x.Scenario {
		q.Scenario = append(q.Scenario, Atom{Time: xa.Time, Kind: atomKindFromXML(xa.Type), Body: xa.Body})
	}
	return q
}

func atomKindFromXML(s string) AtomKind {
	switch s {
	case "", string(AtomText):
		return AtomText
	case "audio":
		return AtomAudio
	default:
		return AtomKind(s)
	}
}

func infoFromXML(x *xmlInfo) Info {
	if x == nil {
		return Info{}
	}
	return Info{
		Comments:  x.Comments,
		Extension: x.Extension,
		Authors:   textsFromXML(x.Authors),
		Sources:   textsFromXML(x.Sources),
	}
}

func textsFromXML(values []xmlText) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.Value
	}
	return out
}

func answersFromXML(values []xmlText) []Answer {
	if len(values) == 0 {
		return nil
	}
	out := make([]Answer, len(values))
	for i, v := range values {
		out[i] = Answer{Text: v.Value}
	}
	return out
}
