package mdorg

// Session converts one ordered stream of Markdown chunks to Org. It is owned
// by exactly one producer: Feed and Finalize must not be called
// concurrently. Distinct sessions share no mutable state.
//
// The scratch buffer keeps every byte received for the session. Bytes before
// the committed cursor have been returned to the caller and are never
// mutated or re-scanned; the suffix from the hold mark onward is still
// undecided and is retained until more input arrives or the stream ends.
type Session struct {
	id      string
	scratch []byte
	cursor  int
	holdAt  int
	held    bool
	st      convState
	done    bool
	reg     *Registry

	scratchArr [4096]byte
	readBufArr [4096]byte
}

// NewSession creates a standalone session. Use a Registry when sessions must
// be addressable by id for out-of-band cancellation.
func NewSession(id string) *Session {
	s := &Session{}
	s.reset(id)
	return s
}

func (s *Session) reset(id string) {
	s.id = id
	s.scratch = s.scratchArr[:0]
	s.cursor = 0
	s.holdAt = 0
	s.held = false
	s.st = convState{}
	s.done = false
	s.reg = nil
}

// ID returns the opaque identity the session was created with.
func (s *Session) ID() string {
	return s.id
}

// Pending returns the number of buffered bytes not yet committed.
func (s *Session) Pending() int {
	return len(s.scratch) - s.cursor
}

// Feed appends chunk and returns the newly finalized Org output, which may
// be empty when the whole suffix is still undecided. Empty output is a
// normal outcome, not an error or end of stream. Returned text is never
// re-emitted or revised by later calls.
func (s *Session) Feed(chunk string) string {
	if s.done || chunk == "" {
		return ""
	}
	s.scratch = append(s.scratch, chunk...)
	prev := s.cursor
	s.advance(false)
	return string(s.scratch[prev:s.cursor])
}

// Finalize resolves any held suffix with end-of-stream semantics, returns
// the final slice, and releases the session. Further Feed and Finalize
// calls return empty output.
func (s *Session) Finalize() string {
	if s.done {
		return ""
	}
	prev := s.cursor
	s.advance(true)
	if s.cursor < len(s.scratch) {
		// Unresolvable ambiguity flushes as literal text; nothing is dropped.
		s.cursor = len(s.scratch)
	}
	out := string(s.scratch[prev:s.cursor])
	s.release()
	return out
}

// feedBytes is the io path used by Render: same contract as Feed, but the
// returned slice is a view into scratch valid until the next call.
func (s *Session) feedBytes(chunk []byte) []byte {
	if s.done || len(chunk) == 0 {
		return nil
	}
	s.scratch = append(s.scratch, chunk...)
	prev := s.cursor
	s.advance(false)
	return s.scratch[prev:s.cursor]
}

func (s *Session) finalBytes() []byte {
	if s.done {
		return nil
	}
	prev := s.cursor
	s.advance(true)
	if s.cursor < len(s.scratch) {
		s.cursor = len(s.scratch)
	}
	out := s.scratch[prev:s.cursor]
	s.done = true
	return out
}

// advance re-enters the rule engine from the committed cursor and applies
// decisions until a hold or the end of scratch. Edits splice in place; the
// committed prefix keeps stable offsets throughout.
func (s *Session) advance(eof bool) {
	s.held = false
	for s.cursor < len(s.scratch) {
		d, st := nextDecision(s.scratch, s.cursor, s.st, eof)
		switch d.kind {
		case outcomeHold:
			s.held = true
			s.holdAt = d.start
			return
		case outcomeRewrite:
			s.scratch = splice(s.scratch, d.start, d.end, d.repl)
			s.st = st
			s.cursor = d.start + len(d.repl)
		default:
			s.st = st
			s.cursor = d.end
		}
	}
}

func (s *Session) release() {
	s.done = true
	if s.reg != nil {
		s.reg.drop(s.id, s)
		s.reg = nil
	}
}

// splice replaces buf[start:end) with repl, moving the tail as needed.
// copy is memmove-safe in both directions.
func splice(buf []byte, start, end int, repl string) []byte {
	old := end - start
	switch {
	case len(repl) == old:
		copy(buf[start:end], repl)
		return buf
	case len(repl) < old:
		n := copy(buf[start:], repl)
		m := copy(buf[start+n:], buf[end:])
		return buf[:start+n+m]
	}
	grow := len(repl) - old
	prev := len(buf)
	buf = append(buf, repl[:grow]...)
	copy(buf[end+grow:], buf[end:prev])
	copy(buf[start:], repl)
	return buf
}
