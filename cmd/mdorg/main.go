package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/mdorg"
	"pkt.systems/version"
)

const (
	defaultChunkSize = 3
	defaultDelay     = 20 * time.Millisecond
	fallbackWidth    = 80
)

func init() {
	version.SetDefaultModule("pkt.systems/mdorg")
}

func main() {
	var (
		simulate      bool
		simChunkSize  int
		simDelay      time.Duration
		widthFlag     int
		outPath       string
		keepFront     bool
		validateInput bool
	)

	flags := pflag.NewFlagSet("mdorg", pflag.ExitOnError)
	flags.BoolVar(&simulate, "simulate", false, "Stream simulator (use default delay and chunk size)")
	flags.IntVar(&simChunkSize, "simulate-chunk", defaultChunkSize, "Runes per stream chunk")
	flags.DurationVar(&simDelay, "simulate-delay", defaultDelay, "Delay per stream chunk")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Wrap converted output (0 disables, negative uses terminal width)")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVar(&keepFront, "keep-frontmatter", false, "Pass front matter through instead of stripping it")
	flags.BoolVar(&validateInput, "validate", false, "Reject non-UTF-8 or binary input before converting")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: mdorg [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	reader, closer, err := openInputs(flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	writer, closeOut, err := resolveOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	if validateInput {
		reader, err = validated(reader)
		if err != nil {
			fmt.Fprintf(os.Stderr, "validate input: %v\n", err)
			os.Exit(1)
		}
	}

	options := []mdorg.RenderOption{mdorg.WithFrontMatterFilter(!keepFront)}

	if simulate {
		if err := mdorg.StreamSimulate(mdorg.StreamSimulateRequest{
			Reader:    reader,
			Writer:    writer,
			ChunkSize: simChunkSize,
			Delay:     simDelay,
			Options:   options,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
			os.Exit(1)
		}
		return
	}

	width := resolveWidth(widthFlag)
	if width > 0 {
		// Wrapping needs the complete document; buffer the conversion.
		var buf bytes.Buffer
		if err := mdorg.Render(mdorg.RenderRequest{Reader: reader, Writer: &buf, Options: options}); err != nil {
			fmt.Fprintf(os.Stderr, "convert: %v\n", err)
			os.Exit(1)
		}
		if _, err := io.WriteString(writer, wordwrap.String(buf.String(), width)); err != nil {
			fmt.Fprintf(os.Stderr, "write: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := mdorg.Render(mdorg.RenderRequest{Reader: reader, Writer: writer, Options: options}); err != nil {
		fmt.Fprintf(os.Stderr, "convert: %v\n", err)
		os.Exit(1)
	}
}

func validated(r io.Reader) (io.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if err := mdorg.ValidateInput(data); err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

func resolveWidth(width int) int {
	if width >= 0 {
		return width
	}
	return terminalWidth(fallbackWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconvAtoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(args []string) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return os.Stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	return &multiInputReader{sources: sources}, nil, nil
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	clean := normalizePath(path)
	f, err := os.Open(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func strconvAtoi(value string) (int, error) {
	if value == "" {
		return 0, fmt.Errorf("invalid int")
	}
	var n int
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, fmt.Errorf("invalid int")
		}
		n = n*10 + int(value[i]-'0')
	}
	return n, nil
}
