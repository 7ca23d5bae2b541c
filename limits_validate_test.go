package siq

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/zip"
)

func TestLimitsWithDefaults(t *testing.T) {
	l := (Limits{}).withDefaults()
	if l != defaultLimits() {
		t.Fatalf("expected defaults, got %+v", l)
	}

	custom := Limits{MaxMembers: 7}
	custom = custom.withDefaults()
	if custom.MaxMembers != 7 {
		t.Fatalf("expected custom MaxMembers, got %d", custom.MaxMembers)
	}
	if custom.MaxContentSize != defaultLimits().MaxContentSize {
		t.Fatal("expected default MaxContentSize")
	}
}

func TestDecode_LimitsExceeded(t *testing.T) {
	b, err := EncodeBytes(samplePackage())
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]Limits{
		"archive":  {MaxArchiveSize: uint64(len(b)) - 1},
		"members":  {MaxMembers: 3},
		"content":  {MaxContentSize: 16},
		"resource": {MaxResourceSize: 4999},
		"total":    {MaxTotalSize: 64},
	}
	for name, l := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeBytes(b, quiet(), WithReadLimits(l))
			if !errors.Is(err, ErrLimitExceeded) || !errors.Is(err, ErrArchive) {
				t.Fatalf("expected ErrLimitExceeded, got %v", err)
			}
		})
	}

	// the 5000 byte video is the largest resource
	if _, err := DecodeBytes(b, quiet(), WithReadLimits(Limits{MaxResourceSize: 5000})); err != nil {
		t.Fatalf("resource at the limit: %v", err)
	}
}

func TestDecode_ReaderLongerThanArchiveLimit(t *testing.T) {
	b, err := EncodeBytes(samplePackage())
	if err != nil {
		t.Fatal(err)
	}
	_, err = Decode(bytes.NewReader(b), quiet(), WithReadLimits(Limits{MaxArchiveSize: 100}))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
}

func TestValidateContainerPath(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"Images/logo.png", true},
		{"Images/@a%20b.png", true},
		{"", false},
		{"/abs", false},
		{"a\\b", false},
		{"a//b", false},
		{"a/./b", false},
		{"a/../b", false},
		{".", false},
		{"..", false},
		{"../x", false},
		{"a/", false},
		{ContentMember, false},
		{ContentTypesMember, false},
	}
	for _, tc := range cases {
		err := validateContainerPath(tc.in)
		if tc.want && err != nil {
			t.Fatalf("%q: expected ok, got %v", tc.in, err)
		}
		if !tc.want && err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestValidateResourceKeys(t *testing.T) {
	cases := map[string]ResourceKey{
		"unknown category": {Category: 0, Name: "Images/a.png"},
		"wrong directory":  {Category: CategoryAudio, Name: "Images/a.png"},
		"no directory":     {Category: CategoryImage, Name: "a.png"},
		"escapes":          {Category: CategoryImage, Name: "Images/../a.png"},
		"bare directory":   {Category: CategoryImage, Name: "Images/"},
	}
	for name, key := range cases {
		t.Run(name, func(t *testing.T) {
			p := NewPackage("v")
			p.Resources[key] = []byte("x")
			if err := p.Validate(); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if _, err := EncodeBytes(p); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation from encode, got %v", err)
			}
		})
	}

	if err := samplePackage().Validate(); err != nil {
		t.Fatalf("sample package: %v", err)
	}
}

func TestCompressionNameUnknown(t *testing.T) {
	if got := Compression(99).String(); got != "Compression(99)" {
		t.Fatalf("got %q", got)
	}
	if CompZSTD.String() != "zstd" || CompStore.String() != "store" || CompDeflate.String() != "deflate" {
		t.Fatal("unexpected compression names")
	}
	if got := ResourceCategory(9).String(); got != "ResourceCategory(9)" {
		t.Fatalf("got %q", got)
	}
}

func TestWithCompressionLevel(t *testing.T) {
	p := samplePackage()
	fast, err := EncodeBytes(p, WithCompressionLevel(1))
	if err != nil {
		t.Fatal(err)
	}
	stored, err := EncodeBytes(p, WithCompressionLevel(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) <= len(fast) {
		t.Fatalf("level 0 (%d bytes) not larger than level 1 (%d bytes)", len(stored), len(fast))
	}
	for _, b := range [][]byte{fast, stored} {
		zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
		if err != nil {
			t.Fatal(err)
		}
		if zr.File[0].Method != zip.Deflate {
			t.Fatalf("content method %d", zr.File[0].Method)
		}
		got, err := DecodeBytes(b, quiet())
		if err != nil || got.Name != p.Name {
			t.Fatalf("decode: %v", err)
		}
	}
}
