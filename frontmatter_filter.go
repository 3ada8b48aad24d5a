package mdorg

import "bytes"

// Front matter has no Org rendition, so Render drops it at the head of the
// stream. The filter buffers input only while the document could still open
// with a front matter block, and gives up past a fixed probe limit.

const maxFrontMatterProbe = 64 * 1024

var frontMatterDelims = [][]byte{
	[]byte("---"),
	[]byte("+++"),
	[]byte(";;;"),
}

type frontMatterFilter struct {
	passthrough bool
	head        []byte
	headArr     [4096]byte
}

func (f *frontMatterFilter) reset() {
	f.passthrough = false
	f.head = f.headArr[:0]
}

// process returns the bytes of chunk that should flow to the converter. It
// returns nil while the front matter question is still open.
func (f *frontMatterFilter) process(chunk []byte) []byte {
	if f.passthrough || len(chunk) == 0 {
		return chunk
	}
	f.head = append(f.head, chunk...)
	if out, decided := f.decide(false); decided {
		return out
	}
	if len(f.head) > maxFrontMatterProbe {
		return f.giveUp()
	}
	return nil
}

// finish flushes whatever the probe buffered when the stream ends undecided.
func (f *frontMatterFilter) finish() []byte {
	if f.passthrough || len(f.head) == 0 {
		return nil
	}
	out, _ := f.decide(true)
	return out
}

func (f *frontMatterFilter) decide(eof bool) ([]byte, bool) {
	opening, next, ok := headLine(f.head, 0, eof)
	if !ok {
		return nil, false
	}
	delim := openingDelimiter(opening)
	if delim == nil {
		return f.giveUp(), true
	}
	second, next, ok := headLine(f.head, next, eof)
	if !ok {
		return nil, false
	}
	if !metadataLikely(second) {
		return f.giveUp(), true
	}
	for {
		var line []byte
		line, next, ok = headLine(f.head, next, eof)
		if !ok {
			if eof {
				return f.giveUp(), true
			}
			return nil, false
		}
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			out := f.head[next:]
			f.passthrough = true
			f.head = f.head[:0]
			return out, true
		}
		if next >= len(f.head) {
			if eof {
				return f.giveUp(), true
			}
			return nil, false
		}
	}
}

func (f *frontMatterFilter) giveUp() []byte {
	out := f.head
	f.passthrough = true
	f.head = f.head[:0]
	return out
}

// headLine returns the line starting at start without its terminator, and
// the offset of the following line. A line is only complete once its newline
// arrived, or at eof.
func headLine(src []byte, start int, eof bool) ([]byte, int, bool) {
	if start >= len(src) {
		if eof && start == len(src) {
			return nil, start, true
		}
		return nil, 0, false
	}
	i := bytes.IndexByte(src[start:], '\n')
	if i < 0 {
		if !eof {
			return nil, 0, false
		}
		return trimCR(src[start:]), len(src), true
	}
	return trimCR(src[start : start+i]), start + i + 1, true
}

func openingDelimiter(line []byte) []byte {
	trimmed := bytes.TrimSpace(trimBOM(line))
	for _, delim := range frontMatterDelims {
		if bytes.Equal(trimmed, delim) {
			return delim
		}
	}
	return nil
}

// metadataLikely reports whether the line after the opening delimiter looks
// like metadata rather than document text, to avoid eating a thematic break.
func metadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return true
	}
	return bytes.IndexByte(trimmed, ':') >= 0 || bytes.IndexByte(trimmed, '=') >= 0
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}
