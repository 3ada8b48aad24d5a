package mdorg

import (
	"bytes"
	"strings"
	"testing"
	"testing/iotest"
)

func renderString(t *testing.T, src string, opts ...RenderOption) string {
	t.Helper()
	var out bytes.Buffer
	err := Render(RenderRequest{
		Reader:  strings.NewReader(src),
		Writer:  &out,
		Options: opts,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out.String()
}

func TestRenderOmitsFrontMatterAtStreamStart(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		src      string
		contains []string
		omits    []string
	}{
		{
			name: "yaml",
			src:  "---\ntitle: Post\ndate: 2026-02-09\n---\n\n# Hello\n\nBody.\n",
			contains: []string{
				"* Hello",
				"Body.",
			},
			omits: []string{
				"title: Post",
				"date: 2026-02-09",
			},
		},
		{
			name: "toml",
			src:  "+++\ntitle = \"Post\"\n+++\n\n# Hello\n",
			contains: []string{
				"* Hello",
			},
			omits: []string{
				"title = \"Post\"",
			},
		},
		{
			name: "json",
			src:  ";;;\n{\"title\": \"Post\"}\n;;;\n\n# Hello\n",
			contains: []string{
				"* Hello",
			},
			omits: []string{
				"\"title\": \"Post\"",
			},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out := renderString(t, tc.src)
			for _, want := range tc.contains {
				if !strings.Contains(out, want) {
					t.Fatalf("missing %q in output: %q", want, out)
				}
			}
			for _, bad := range tc.omits {
				if strings.Contains(out, bad) {
					t.Fatalf("unexpected %q in output: %q", bad, out)
				}
			}
		})
	}
}

func TestFrontMatterFilterSurvivesSmallChunks(t *testing.T) {
	src := "---\ntitle: Post\n---\n# Hello\n"
	var out bytes.Buffer
	err := Render(RenderRequest{
		Reader: iotest.OneByteReader(strings.NewReader(src)),
		Writer: &out,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got, want := out.String(), "* Hello\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestThematicBreakIsNotFrontMatter(t *testing.T) {
	src := "---\n\nnot metadata\n"
	out := renderString(t, src)
	if !strings.Contains(out, "---") {
		t.Fatalf("thematic break swallowed: %q", out)
	}
	if !strings.Contains(out, "not metadata") {
		t.Fatalf("body swallowed: %q", out)
	}
}

func TestUnterminatedFrontMatterFlushesAtEOF(t *testing.T) {
	src := "---\ntitle: Post\nno closing delimiter\n"
	out := renderString(t, src)
	if !strings.Contains(out, "title: Post") {
		t.Fatalf("unterminated front matter dropped: %q", out)
	}
}

func TestFrontMatterKeptWhenFilterDisabled(t *testing.T) {
	src := "---\ntitle: Post\n---\n# Hello\n"
	out := renderString(t, src, WithFrontMatterFilter(false))
	if !strings.Contains(out, "title: Post") {
		t.Fatalf("front matter stripped despite disabled filter: %q", out)
	}
	if !strings.Contains(out, "* Hello") {
		t.Fatalf("body not converted: %q", out)
	}
}

func TestDocumentWithoutFrontMatterPassesThrough(t *testing.T) {
	src := "# Hello\n\nBody.\n"
	out := renderString(t, src)
	if got, want := out, "* Hello\n\nBody.\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
