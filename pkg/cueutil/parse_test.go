// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Settings: close({
	name?:  string
	width?: int & >0
	tags?: [...string]
})
`

type settings struct {
	Name  string   `json:"name"`
	Width int      `json:"width"`
	Tags  []string `json:"tags"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	res, err := ParseAndDecode[settings]([]byte(testSchema), []byte(`{"name": "a", "width": 3, "tags": ["x"]}`), "#Settings")
	if err != nil {
		t.Fatalf("ParseAndDecode() error: %v", err)
	}
	if res.Value.Name != "a" || res.Value.Width != 3 || len(res.Value.Tags) != 1 {
		t.Errorf("decoded %+v", res.Value)
	}
	if !res.Unified.Exists() {
		t.Error("unified value should be set")
	}

	res, err = ParseAndDecode[settings]([]byte(testSchema), []byte(`name: "b"`), "#Settings")
	if err != nil {
		t.Fatalf("CUE input: %v", err)
	}
	if res.Value.Name != "b" || res.Value.Width != 0 {
		t.Errorf("decoded %+v", res.Value)
	}
}

func TestParseAndDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		opts []Option
		want string
	}{
		{"constraint", `width: 0`, []Option{WithFilename("doc.tps")}, "width"},
		{"closed", `colour: "red"`, nil, "<input>"},
		{"syntax", `name: `, []Option{WithFilename("x.cue")}, "x.cue"},
		{"size", `name: "long"`, []Option{WithMaxFileSize(4)}, "exceeds maximum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseAndDecode[settings]([]byte(testSchema), []byte(tt.data), "#Settings", tt.opts...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	_, err := ParseAndDecode[settings]([]byte(testSchema), []byte(`{}`), "#Missing")
	if err == nil || !strings.Contains(err.Error(), "internal error") {
		t.Errorf("missing definition: got %v", err)
	}

	_, err = ParseAndDecode[settings]([]byte(testSchema), []byte(`{}`), "#Settings", WithMaxFileSize(1))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestParseAndDecode_Concrete(t *testing.T) {
	t.Parallel()

	schema := `#S: {name: string}`
	if _, err := ParseAndDecode[settings]([]byte(schema), []byte(`{}`), "#S", WithConcrete()); err == nil {
		t.Error("expected incomplete value error with WithConcrete")
	}
}
