package siq

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Function variables for testing injection.
var readFile = os.ReadFile

// Open reads the package stored at name.
func Open(name string, opts ...ReadOption) (*Package, error) {
	data, err := readFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchive, err)
	}
	return DecodeBytes(data, opts...)
}

// Decode reads a whole package from r.
//
// The decoding process:
//  1. Reads the container into memory and opens it
//  2. Buffers every resource member into the resource map, skipping
//     directories, the two reserved members and unknown members
//  3. Parses content.xml, migrating older generations
//
// Unknown members are logged at warning level and passed to the handler set
// with WithUnknownResourceHandler; they never abort the load.
//
// Decode returns an error matching ErrArchive if the container cannot be
// read, content.xml is missing or a member exceeds the configured Limits
// (also matching ErrLimitExceeded), and ErrParse if content.xml does not map
// onto the document model.
func Decode(r io.Reader, opts ...ReadOption) (*Package, error) {
	cfg := newReadConfig(opts)
	data, err := readAll(io.LimitReader(r, overLimit(cfg.limits.MaxArchiveSize)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchive, err)
	}
	return decode(data, cfg)
}

// DecodeBytes is Decode over an in-memory container.
func DecodeBytes(data []byte, opts ...ReadOption) (*Package, error) {
	return decode(data, newReadConfig(opts))
}

func decode(data []byte, cfg readConfig) (*Package, error) {
	limits := cfg.limits
	if uint64(len(data)) > limits.MaxArchiveSize {
		return nil, fmt.Errorf("%w: %w: container exceeds %d bytes", ErrArchive, ErrLimitExceeded, limits.MaxArchiveSize)
	}
	zr, err := newZipReader(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchive, err)
	}
	if len(zr.File) > limits.MaxMembers {
		return nil, fmt.Errorf("%w: %w: %d members", ErrArchive, ErrLimitExceeded, len(zr.File))
	}

	var content []byte
	found := false
	resources := make(map[ResourceKey][]byte)
	var total uint64
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() || strings.HasSuffix(zf.Name, "/") {
			continue
		}
		switch zf.Name {
		case ContentTypesMember:
			continue
		case ContentMember:
			b, err := readMember(zf, limits.MaxContentSize)
			if err != nil {
				return nil, fmt.Errorf("%w: read %s: %w", ErrArchive, ContentMember, err)
			}
			content, found = b, true
			total += uint64(len(b))
			continue
		}
		key, ok := ClassifyResource(zf.Name)
		if !ok || validateContainerPath(zf.Name) != nil {
			unknown := &UnknownResourceError{Path: zf.Name}
			cfg.logger.Warn("skipping unknown resource", "path", zf.Name)
			if cfg.onUnknown != nil {
				cfg.onUnknown(unknown)
			}
			continue
		}
		b, err := readMember(zf, limits.MaxResourceSize)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrArchive, zf.Name, err)
		}
		total += uint64(len(b))
		if total > limits.MaxTotalSize {
			return nil, fmt.Errorf("%w: %w: members exceed %d bytes", ErrArchive, ErrLimitExceeded, limits.MaxTotalSize)
		}
		resources[key] = b
		cfg.logger.Debug("loaded resource", "name", key.Name, "category", key.Category, "size", len(b))
	}
	if !found {
		return nil, fmt.Errorf("%w: missing %s", ErrArchive, ContentMember)
	}

	p, err := unmarshalContent(content, cfg.logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	p.Resources = resources
	return p, nil
}
