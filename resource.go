package siq

import (
	"cmp"
	"fmt"
	"net/url"
	"path"
	"slices"
	"strings"
)

// ResourceCategory is the kind of a bundled binary resource. Each category
// lives under its own top-level directory in the container.
type ResourceCategory uint8

const (
	CategoryAudio ResourceCategory = iota + 1
	CategoryVideo
	CategoryImage
	CategoryText
)

// categoryDirs is the path-prefix table used to classify container members.
var categoryDirs = []struct {
	dir      string
	category ResourceCategory
}{
	{"Audio", CategoryAudio},
	{"Images", CategoryImage},
	{"Video", CategoryVideo},
	{"Texts", CategoryText},
}

// Dir returns the container directory holding resources of c.
func (c ResourceCategory) Dir() string {
	for _, e := range categoryDirs {
		if e.category == c {
			return e.dir
		}
	}
	return ""
}

func (c ResourceCategory) String() string {
	switch c {
	case CategoryAudio:
		return "audio"
	case CategoryVideo:
		return "video"
	case CategoryImage:
		return "image"
	case CategoryText:
		return "text"
	default:
		return fmt.Sprintf("ResourceCategory(%d)", uint8(c))
	}
}

// ResourceKey identifies a bundled resource. Name is the full container
// member path, for example "Images/@logo.png".
type ResourceKey struct {
	Category ResourceCategory
	Name     string
}

// FileName returns the percent-decoded base name of the resource. Names that
// are not valid escapes are returned undecoded.
func (k ResourceKey) FileName() string {
	base := path.Base(k.Name)
	if dec, err := url.PathUnescape(base); err == nil {
		return dec
	}
	return base
}

func (k ResourceKey) String() string {
	return k.Category.String() + ":" + k.Name
}

// ClassifyResource maps a container member path to a resource key. The path
// is kept verbatim as the key name. Members outside the category directories
// are not resources.
func ClassifyResource(memberPath string) (ResourceKey, bool) {
	for _, e := range categoryDirs {
		if strings.HasPrefix(memberPath, e.dir+"/") {
			return ResourceKey{Category: e.category, Name: memberPath}, true
		}
	}
	return ResourceKey{}, false
}

// resourceKeyFor builds the key under which a placeholder body of category c
// is stored.
func resourceKeyFor(c ResourceCategory, body string) ResourceKey {
	return ResourceKey{Category: c, Name: c.Dir() + "/" + EncodeResourceName(body)}
}

// Category returns the resource category referenced by atoms of kind k.
func (k AtomKind) Category() (ResourceCategory, bool) {
	switch k {
	case AtomImage:
		return CategoryImage, true
	case AtomAudio, "audio":
		return CategoryAudio, true
	case AtomVideo:
		return CategoryVideo, true
	default:
		return 0, false
	}
}

// ResourceKey resolves the resource a media atom refers to. The body is
// percent-encoded the same way member names are stored; a leading '@' is
// part of the name. Text atoms and unknown kinds refer to nothing.
func (a Atom) ResourceKey() (ResourceKey, bool) {
	c, ok := a.Kind.Category()
	if !ok {
		return ResourceKey{}, false
	}
	return resourceKeyFor(c, a.Body), true
}

const upperhex = "0123456789ABCDEF"

// EncodeResourceName percent-encodes control characters, DEL, space and
// every non-ASCII byte of name. All other bytes are kept.
func EncodeResourceName(name string) string {
	n := 0
	for i := 0; i < len(name); i++ {
		if shouldEscape(name[i]) {
			n++
		}
	}
	if n == 0 {
		return name
	}
	var b strings.Builder
	b.Grow(len(name) + 2*n)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if shouldEscape(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0F])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func shouldEscape(c byte) bool {
	return c <= ' ' || c >= 0x7F
}

// Resource returns the payload referenced by a.
func (p *Package) Resource(a Atom) ([]byte, bool) {
	key, ok := a.ResourceKey()
	if !ok {
		return nil, false
	}
	data, ok := p.Resources[key]
	return data, ok
}

// AddResource bundles data under fileName and returns its key. An atom of
// the matching kind with fileName as body resolves to the returned key.
// An existing resource with the same key is replaced.
//
// The key must be writable as a container member; otherwise AddResource
// returns an error matching ErrValidation and leaves p unchanged.
func (p *Package) AddResource(c ResourceCategory, fileName string, data []byte) (ResourceKey, error) {
	key := resourceKeyFor(c, fileName)
	if err := validateResourceKey(key); err != nil {
		return ResourceKey{}, fmt.Errorf("%w: resource %q: %v", ErrValidation, key.Name, err)
	}
	if p.Resources == nil {
		p.Resources = make(map[ResourceKey][]byte)
	}
	p.Resources[key] = data
	return key, nil
}

func (p *Package) RemoveResource(key ResourceKey) bool {
	if _, ok := p.Resources[key]; !ok {
		return false
	}
	delete(p.Resources, key)
	return true
}

// ResourceKeys returns the keys of all bundled resources sorted by name.
func (p *Package) ResourceKeys() []ResourceKey {
	keys := make([]ResourceKey, 0, len(p.Resources))
	for k := range p.Resources {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}

// Atoms calls fn for every atom of every question, in tree order, until fn
// returns false.
func (p *Package) Atoms(fn func(QuestionIdx, Atom) bool) {
	for ri, r := range p.Rounds {
		for ti, t := range r.Themes {
			for qi, q := range t.Questions {
				for _, a := range q.Scenario {
					if !fn(QuestionIdx{Round: ri, Theme: ti, Index: qi}, a) {
						return
					}
				}
			}
		}
	}
}

// UnusedResources returns bundled resources no atom refers to.
func (p *Package) UnusedResources() []ResourceKey {
	used := make(map[ResourceKey]struct{})
	p.Atoms(func(_ QuestionIdx, a Atom) bool {
		if key, ok := a.ResourceKey(); ok {
			used[key] = struct{}{}
		}
		return true
	})
	var unused []ResourceKey
	for k := range p.Resources {
		if _, ok := used[k]; !ok {
			unused = append(unused, k)
		}
	}
	sortKeys(unused)
	return unused
}

// MissingResource is a media atom whose resource is not bundled.
type MissingResource struct {
	Question QuestionIdx
	Key      ResourceKey
}

// MissingResources lists media atoms that refer to resources absent from p.
func (p *Package) MissingResources() []MissingResource {
	var missing []MissingResource
	p.Atoms(func(q QuestionIdx, a Atom) bool {
		key, ok := a.ResourceKey()
		if !ok {
			return true
		}
		if _, ok := p.Resources[key]; !ok {
			missing = append(missing, MissingResource{Question: q, Key: key})
		}
		return true
	})
	return missing
}

func sortKeys(keys []ResourceKey) {
	slices.SortFunc(keys, func(a, b ResourceKey) int { return cmp.Compare(a.Name, b.Name) })
}
