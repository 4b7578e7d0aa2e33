package types

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// TestFileDescriptorJSON tests the tagged descriptor encoding
func TestFileDescriptorJSON(t *testing.T) {
	tests := []struct {
		name string
		desc FileDescriptor
		json string
	}{
		{
			name: "attached",
			desc: Attached(FileEntry{Name: "a.pdf", Size: "1.00 MB", Date: "10/15/2026", Type: KindDocument}),
			json: `{"kind":"attached","file":{"name":"a.pdf","size":"1.00 MB","date":"10/15/2026","type":"document"}}`,
		},
		{
			name: "link only",
			desc: LinkOnly("https://ref"),
			json: `{"kind":"link_only","link":"https://ref"}`,
		},
		{
			name: "empty link",
			desc: LinkOnly(""),
			json: `{"kind":"link_only","link":""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.desc)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if string(data) != tt.json {
				t.Errorf("Expected %s, got %s", tt.json, data)
			}

			var decoded FileDescriptor
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if decoded != tt.desc {
				t.Errorf("Expected %+v after decoding, got %+v", tt.desc, decoded)
			}
		})
	}
}

// TestFileDescriptorInvalid tests rejected descriptors
func TestFileDescriptorInvalid(t *testing.T) {
	for _, input := range []string{
		`{"kind":"attached"}`,
		`{"kind":"attached","file":{"type":"document"}}`,
		`{"kind":"attached","file":{"name":"","size":"1.00 MB"}}`,
		`{"kind":"stream","link":"x"}`,
		`{}`,
	} {
		var d FileDescriptor
		if err := json.Unmarshal([]byte(input), &d); !errors.Is(err, ErrInvalidDescriptor) {
			t.Errorf("Expected ErrInvalidDescriptor for %s, got %v", input, err)
		}
	}

	var d FileDescriptor
	if err := json.Unmarshal([]byte(`[]`), &d); err == nil {
		t.Errorf("Expected error for a non-object descriptor")
	}

	if _, err := json.Marshal(FileDescriptor{}); err == nil {
		t.Errorf("Expected error marshalling a descriptor without variant")
	}

	var missing FileDescriptor
	if err := json.Unmarshal([]byte(`{"kind":"link_only"}`), &missing); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if missing.Link() != "" || missing.Kind() != DescriptorLinkOnly {
		t.Errorf("Missing link should decode as empty link-only, got %+v", missing)
	}
}

// TestFileDescriptorAccessors tests the variant accessors
func TestFileDescriptorAccessors(t *testing.T) {
	file := FileEntry{Name: "v.mp4", Link: "https://v"}
	attached := Attached(file)
	if got, ok := attached.File(); !ok || got != file {
		t.Errorf("Expected attached file, got %+v, %v", got, ok)
	}
	if attached.Link() != "https://v" {
		t.Errorf("Attached link should come from the file, got %q", attached.Link())
	}

	if _, ok := LinkOnly("x").File(); ok {
		t.Errorf("Link-only descriptors carry no file")
	}
}

// TestKind tests kind parsing and labels
func TestKind(t *testing.T) {
	if k, err := ParseKind("video"); err != nil || k != KindVideo {
		t.Errorf("Expected video, got %q, %v", k, err)
	}
	if _, err := ParseKind("audio"); err == nil {
		t.Errorf("Expected error for unknown kind")
	}
	if KindVideo.Verb() != "Watch" || KindDocument.Verb() != "Read" {
		t.Errorf("Unexpected verbs")
	}
	if KindVideo.Accept() != "video/*" || KindDocument.Accept() != ".pdf" {
		t.Errorf("Unexpected accept filters")
	}
}

// TestScopeString tests scope formatting
func TestScopeString(t *testing.T) {
	if s := (Scope{Standard: "9th", Board: "CBSE"}).String(); s != "9th/CBSE" {
		t.Errorf("Expected 9th/CBSE, got %s", s)
	}
	if s := (Scope{Standard: "neet"}).String(); s != "neet" {
		t.Errorf("Expected neet, got %s", s)
	}
}

// TestDurationJSON tests duration strings and nanosecond numbers
func TestDurationJSON(t *testing.T) {
	var d Duration
	if err := json.Unmarshal([]byte(`"90s"`), &d); err != nil || d.Duration != 90*time.Second {
		t.Errorf("Expected 90s, got %v, %v", d, err)
	}
	if err := json.Unmarshal([]byte(`1000000000`), &d); err != nil || d.Duration != time.Second {
		t.Errorf("Expected 1s, got %v, %v", d, err)
	}
	if err := json.Unmarshal([]byte(`"later"`), &d); err == nil {
		t.Errorf("Expected error for invalid duration")
	}

	data, err := json.Marshal(Duration{Duration: 5 * time.Minute})
	if err != nil || string(data) != `"5m0s"` {
		t.Errorf("Expected \"5m0s\", got %s, %v", data, err)
	}
}
