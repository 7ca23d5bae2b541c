package siq

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// A migration reads one schema generation into the canonical model.
//
// Readable generations:
//   - up to 4: questions carry scenario>atom; this is the canonical shape.
//   - 5: question content lives in params>param[name=question]>item and the
//     question type is an attribute. Such documents are migrated and their
//     version becomes CanonicalVersion.
type migration struct {
	name  string
	apply func(x *xmlPackage, logger *log.Logger) (*Package, error)
}

var (
	canonicalMigration = migration{name: "v4", apply: readCanonical}
	v5Migration        = migration{name: "v5", apply: readV5}
)

// migrationFor probes the declared version.
func migrationFor(version float64) migration {
	if version >= 5 {
		return v5Migration
	}
	return canonicalMigration
}

func readCanonical(x *xmlPackage, _ *log.Logger) (*Package, error) {
	return packageFromXML(x, func(_ QuestionIdx, xq xmlQuestion) Question {
		return questionFromXML(xq)
	}), nil
}

const (
	v5QuestionParam = "question"
	v5ContentType   = "content"
	v5SimpleType    = "simple"
)

// readV5 warns once per question that loses content params, since saving the
// result drops them for good.
func readV5(x *xmlPackage, logger *log.Logger) (*Package, error) {
	p := packageFromXML(x, func(idx QuestionIdx, xq xmlQuestion) Question {
		q, dropped := questionFromV5(xq)
		if len(dropped) > 0 {
			logger.Warn("dropping version 5 content params",
				"question", QuestionNode(idx).String(),
				"params", strings.Join(dropped, ","))
		}
		return q
	})
	p.Version = CanonicalVersion
	return p, nil
}

// questionFromV5 maps a version 5 question and returns the names of content
// params other than the question body, which have no canonical home.
func questionFromV5(x xmlQuestion) (Question, []string) {
	q := questionFromXML(x)
	if x.TypeName != "" && x.TypeName != v5SimpleType && q.Type == nil {
		q.Type = &QuestionType{Name: x.TypeName}
	}
	var dropped []string
	for _, prm := range x.Params {
		switch {
		case prm.Name == v5QuestionParam && prm.Type == v5ContentType:
			for _, it := range prm.Items {
				q.Scenario = append(q.Scenario, it.atom())
			}
		case prm.Type != "" || len(prm.Items) > 0:
			dropped = append(dropped, prm.Name)
		case q.Type != nil:
			q.Type.Params = append(q.Type.Params, QuestionParam{
				Name:  prm.Name,
				Value: strings.TrimSpace(prm.Value),
			})
		}
	}
	return q, dropped
}

type xmlParam struct {
	Name  string    `xml:"name,attr"`
	Type  string    `xml:"type,attr,omitempty"`
	Items []xmlItem `xml:"item"`
	Value string    `xml:",chardata"`
}

type xmlItem struct {
	Type     string `xml:"type,attr,omitempty"`
	IsRef    string `xml:"isRef,attr,omitempty"`
	Duration string `xml:"duration,attr,omitempty"`
	Body     string `xml:",chardata"`
}

// atom converts a content item. Referenced items keep the file name as the
// body, which resolves to the member stored under the category directory.
func (it xmlItem) atom() Atom {
	a := Atom{Kind: atomKindFromXML(it.Type), Body: it.Body}
	if secs, ok := parseClock(it.Duration); ok {
		a.Time = &secs
	}
	return a
}

// parseClock parses "hh:mm:ss[.fff]", "mm:ss" or plain seconds.
func parseClock(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	var total float64
	for _, part := range strings.Split(s, ":") {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 {
			return 0, false
		}
		total = total*60 + v
	}
	return total, true
}
