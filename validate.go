package siq

import (
	"fmt"
	"path"
	"strings"
)

// Validate checks that every resource key can be written as a container
// member: a normalized relative path under its category directory that does
// not collide with a reserved member.
func (p *Package) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: package is nil", ErrValidation)
	}
	for _, key := range p.ResourceKeys() {
		if err := validateResourceKey(key); err != nil {
			return fmt.Errorf("%w: resource %q: %v", ErrValidation, key.Name, err)
		}
	}
	return nil
}

func validateResourceKey(key ResourceKey) error {
	dir := key.Category.Dir()
	if dir == "" {
		return fmt.Errorf("unknown category %v", key.Category)
	}
	if !strings.HasPrefix(key.Name, dir+"/") {
		return fmt.Errorf("name must be under %s/", dir)
	}
	return validateContainerPath(key.Name)
}

func validateContainerPath(p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(p, "/") {
		return fmt.Errorf("path must not be absolute")
	}
	if strings.Contains(p, "\\") {
		return fmt.Errorf("path must use forward slashes")
	}
	clean := path.Clean(p)
	if clean != p {
		return fmt.Errorf("path must be normalized: %q", clean)
	}
	if clean == "." {
		return fmt.Errorf("path must not be current directory")
	}
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("path must not escape")
	}
	if clean == ContentMember || clean == ContentTypesMember {
		return fmt.Errorf("path is reserved")
	}
	return nil
}
