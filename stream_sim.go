package mdorg

import (
	"bufio"
	"fmt"
	"io"
	"time"
	"unicode/utf8"
)

// StreamSimulateRequest configures StreamSimulate.
type StreamSimulateRequest struct {
	Reader    io.Reader
	Writer    io.Writer
	ChunkSize int
	Delay     time.Duration
	Options   []RenderOption
}

// StreamSimulate feeds the input through a session in fixed-size rune
// chunks with an optional delay per chunk. This reproduces the arrival
// pattern of an inference stream over static input, which makes the
// hold-back behavior observable interactively.
func StreamSimulate(req StreamSimulateRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("stream simulate: Reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("stream simulate: Writer is nil")
	}
	if req.ChunkSize <= 0 {
		return fmt.Errorf("stream simulate: ChunkSize must be > 0")
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
	var chunkArr [256]byte
	chunk := chunkArr[:0]
	runes := 0
	var retErr error
	for {
		r, size, err := reader.ReadRune()
		if err != nil {
			if err == io.EOF {
				break
			}
			retErr = fmt.Errorf("stream simulate: read: %w", err)
			goto done
		}
		if r == utf8.RuneError && size == 1 {
			continue
		}
		if isControlRune(r) {
			continue
		}
		chunk = append(chunk, string(r)...)
		runes++
		if runes >= req.ChunkSize {
			if err := simulateFeed(req.Writer, sess, &fm, &cfg, chunk, req.Delay); err != nil {
				retErr = err
				goto done
			}
			chunk = chunk[:0]
			runes = 0
		}
	}
	if len(chunk) > 0 {
		if err := simulateFeed(req.Writer, sess, &fm, &cfg, chunk, req.Delay); err != nil {
			retErr = err
			goto done
		}
	}
	if !cfg.noFrontMatter {
		if trailing := fm.finish(); len(trailing) > 0 {
			if err := writeAll(req.Writer, sess.feedBytes(trailing)); err != nil {
				retErr = fmt.Errorf("stream simulate: write: %w", err)
				goto done
			}
		}
	}
	if err := writeAll(req.Writer, sess.finalBytes()); err != nil {
		retErr = fmt.Errorf("stream simulate: write: %w", err)
	}
done:
	sess.reset("")
	sessionPool.Put(sess)
	reader.Reset(nil)
	readerPool.Put(reader)
	return retErr
}

func simulateFeed(w io.Writer, sess *Session, fm *frontMatterFilter, cfg *renderConfig, chunk []byte, delay time.Duration) error {
	if delay > 0 {
		time.Sleep(delay)
	}
	if !cfg.noFrontMatter {
		chunk = fm.process(chunk)
	}
	if err := writeAll(w, sess.feedBytes(chunk)); err != nil {
		return fmt.Errorf("stream simulate: write: %w", err)
	}
	return nil
}
