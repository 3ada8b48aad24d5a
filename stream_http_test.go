package mdorg

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPRenderConvertsFetchedDocument(t *testing.T) {
	doc := "# Remote\n\n*streamed* body with `code`.\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(doc))
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := HTTPRender(context.Background(), HTTPRenderRequest{
		URL:    srv.URL,
		Client: srv.Client(),
		Writer: &out,
	})
	if err != nil {
		t.Fatalf("http render: %v", err)
	}
	if want := Convert(doc); out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestHTTPRenderRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := HTTPRender(context.Background(), HTTPRenderRequest{
		URL:    srv.URL,
		Client: srv.Client(),
		Writer: &out,
	})
	if err == nil {
		t.Fatalf("expected status error")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Fatalf("error does not carry status: %v", err)
	}
}

func TestHTTPRenderRejectsUnsupportedScheme(t *testing.T) {
	var out bytes.Buffer
	err := HTTPRender(context.Background(), HTTPRenderRequest{
		URL:    "ftp://example.com/doc.md",
		Writer: &out,
	})
	if err == nil || !strings.Contains(err.Error(), "scheme") {
		t.Fatalf("expected scheme error, got %v", err)
	}
}

func TestHTTPRenderRequiresURLAndWriter(t *testing.T) {
	if err := HTTPRender(context.Background(), HTTPRenderRequest{Writer: &bytes.Buffer{}}); err == nil {
		t.Fatalf("expected error for empty URL")
	}
	if err := HTTPRender(context.Background(), HTTPRenderRequest{URL: "http://localhost/doc.md"}); err == nil {
		t.Fatalf("expected error for nil Writer")
	}
}
