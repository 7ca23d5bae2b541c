package siq

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Function variables for testing injection.
var writeFile = os.WriteFile

// EncodeBytes renders p as a complete container.
//
// Members are written in this order: content.xml, [Content_Types].xml, then
// every resource sorted by name. The XML members are always deflated;
// resources use the method chosen with WithResourceCompression (deflate by
// default).
//
// EncodeBytes fails only if p does not pass Validate.
func EncodeBytes(p *Package, opts ...WriteOption) ([]byte, error) {
	cfg := newWriteConfig(opts)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	switch cfg.compression {
	case CompStore, CompDeflate, CompZSTD:
	default:
		return nil, fmt.Errorf("%w: unsupported compression %v", ErrValidation, cfg.compression)
	}

	content, err := marshalContent(p)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := newZipWriter(&buf, cfg)
	if err := writeMember(zw, ContentMember, CompDeflate, content); err != nil {
		_ = zipClose(zw)
		return nil, err
	}
	if err := writeMember(zw, ContentTypesMember, CompDeflate, []byte(contentTypes)); err != nil {
		_ = zipClose(zw)
		return nil, err
	}
	for _, key := range p.ResourceKeys() {
		if err := writeMember(zw, key.Name, cfg.compression, p.Resources[key]); err != nil {
			_ = zipClose(zw)
			return nil, err
		}
		cfg.logger.Debug("wrote resource", "name", key.Name, "compression", cfg.compression)
	}
	if err := zipClose(zw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes the container rendered by EncodeBytes to w.
func Encode(w io.Writer, p *Package, opts ...WriteOption) error {
	b, err := EncodeBytes(p, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// WriteFile saves p to name, replacing any existing file.
func WriteFile(name string, p *Package, opts ...WriteOption) error {
	b, err := EncodeBytes(p, opts...)
	if err != nil {
		return err
	}
	return writeFile(name, b, 0o644)
}
