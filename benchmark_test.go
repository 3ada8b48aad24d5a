package mdorg

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func syntheticDocument(sections int) string {
	var b strings.Builder
	for i := 0; i < sections; i++ {
		b.WriteString("# Section heading\n\n")
		b.WriteString("A paragraph with *emphasis*, **strong** text and `inline code`.\n\n")
		b.WriteString("* first item\n* second item with a `span`\n\n")
		b.WriteString("```go\nfunc main() {\n\tprintln(\"hi\")\n}\n```\n\n")
	}
	return b.String()
}

func BenchmarkConvert(b *testing.B) {
	doc := syntheticDocument(64)
	b.SetBytes(int64(len(doc)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Convert(doc)
	}
}

func BenchmarkRender(b *testing.B) {
	doc := []byte(syntheticDocument(64))
	b.SetBytes(int64(len(doc)))
	b.ReportAllocs()
	reader := bytes.NewReader(doc)
	for i := 0; i < b.N; i++ {
		reader.Reset(doc)
		_ = Render(RenderRequest{
			Reader: reader,
			Writer: io.Discard,
		})
	}
}

func BenchmarkSessionSmallChunks(b *testing.B) {
	doc := syntheticDocument(16)
	chunks := make([]string, 0, len(doc)/3+1)
	for i := 0; i < len(doc); i += 3 {
		end := i + 3
		if end > len(doc) {
			end = len(doc)
		}
		chunks = append(chunks, doc[i:end])
	}
	b.SetBytes(int64(len(doc)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := NewSession("bench")
		for _, chunk := range chunks {
			_ = s.Feed(chunk)
		}
		_ = s.Finalize()
	}
}
