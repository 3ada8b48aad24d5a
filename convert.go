package mdorg

import (
	"bufio"
	"fmt"
	"io"
	"sync"
)

var sessionPool = sync.Pool{
	New: func() any {
		return &Session{}
	},
}

var readerPool = sync.Pool{
	New: func() any {
		return bufio.NewReaderSize(nil, 4096)
	},
}

// Convert converts a complete Markdown document to Org in one call. It is
// the reference for the streaming path: feeding the same text in any chunk
// division and finalizing yields exactly this output.
func Convert(src string) string {
	if src == "" {
		return ""
	}
	s := sessionPool.Get().(*Session)
	s.reset("")
	s.scratch = append(s.scratch, src...)
	s.advance(true)
	if s.cursor < len(s.scratch) {
		s.cursor = len(s.scratch)
	}
	out := string(s.scratch[:s.cursor])
	s.reset("")
	sessionPool.Put(s)
	return out
}

// RenderRequest configures Render.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Options []RenderOption
}

// Render reads Markdown from a stream and writes Org output incrementally:
// each read's decidable prefix is written before the next read blocks.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	cfg := renderConfig{}
	for _, opt := range req.Options {
		if opt != nil {
			opt(&cfg)
		}
	}
	sess := sessionPool.Get().(*Session)
	sess.reset("")
	reader := readerPool.Get().(*bufio.Reader)
	reader.Reset(req.Reader)
	var fm frontMatterFilter
	fm.reset()
	buf := sess.readBufArr[:]
	var retErr error
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if !cfg.noFrontMatter {
				chunk = fm.process(chunk)
			}
			if len(chunk) > 0 {
				if werr := writeAll(req.Writer, sess.feedBytes(chunk)); werr != nil {
					retErr = fmt.Errorf("render: write: %w", werr)
					goto done
				}
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			retErr = fmt.Errorf("render: read: %w", err)
			goto done
		}
	}
	if trailing := fm.finish(); len(trailing) > 0 {
		if werr := writeAll(req.Writer, sess.feedBytes(trailing)); werr != nil {
			retErr = fmt.Errorf("render: write: %w", werr)
			goto done
		}
	}
	if werr := writeAll(req.Writer, sess.finalBytes()); werr != nil {
		retErr = fmt.Errorf("render: write: %w", werr)
	}
done:
	sess.reset("")
	sessionPool.Put(sess)
	reader.Reset(nil)
	readerPool.Put(reader)
	return retErr
}

func writeAll(w io.Writer, b []byte) error {
	if len(b) == 0 {
		return nil
	}
	_, err := w.Write(b)
	return err
}
