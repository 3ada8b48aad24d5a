package mdorg

// Org tokens emitted for the Markdown constructs the converter handles.
// This table is the wire contract with downstream Org consumers.
const (
	orgBlockOpen = "#+begin_src"
	// orgBlockOpenMarker is the emitted form; the trailing space separates a
	// Markdown info string (```python) into an Org language tag.
	orgBlockOpenMarker = "#+begin_src "
	orgBlockClose      = "#+end_src"
	orgInlineCode      = "="
	orgEmphasis        = "/"
	orgStrong          = "*"
	orgBullet          = "-"
)

var headingStars = [...]string{
	"",
	"*",
	"**",
	"***",
	"****",
	"*****",
	"******",
}

type fenceState uint8

const (
	fenceNone fenceState = iota
	// fenceCode: inside a backtick fence; openTicks holds the opening run length.
	fenceCode
	// fenceAwaitClose: inside a producer-emitted #+begin_src block, passing
	// content through until a line-leading #+end_src.
	fenceAwaitClose
)

type convState struct {
	fence     fenceState
	openTicks int
}

type outcomeKind uint8

const (
	outcomePass outcomeKind = iota
	outcomeRewrite
	outcomeHold
)

// decision is one rule engine outcome over buf[start:end). For outcomeHold
// only start is meaningful: it is the earliest position that must be retained
// until more input arrives.
type decision struct {
	kind  outcomeKind
	start int
	end   int
	repl  string
}

// nextDecision classifies the next candidate token at or after cursor. It is
// a pure function of (buf, cursor, state, eof); with eof set it always
// returns a terminal decision so that batch conversion and
// streaming-plus-finalize agree byte for byte.
func nextDecision(buf []byte, cursor int, st convState, eof bool) (decision, convState) {
	i := cursor
	j := i
	for j < len(buf) && !isCandidate(buf, j, st) {
		j++
	}
	if j > i {
		return decision{kind: outcomePass, start: i, end: j}, st
	}
	switch buf[i] {
	case '`':
		return decideBackticks(buf, i, st, eof)
	case '#':
		if st.fence == fenceAwaitClose {
			return decideBlockClose(buf, i, st, eof)
		}
		return decideHashes(buf, i, st, eof)
	default:
		return decideStar(buf, i, st, eof)
	}
}

func isCandidate(buf []byte, i int, st convState) bool {
	switch st.fence {
	case fenceCode:
		return buf[i] == '`'
	case fenceAwaitClose:
		return buf[i] == '#' && atLineStart(buf, i)
	}
	switch buf[i] {
	case '`', '*':
		return true
	case '#':
		return atLineStart(buf, i)
	}
	return false
}

// decideBackticks applies the fence and inline-code rules. A run that ends
// the available input is undecidable: more backticks, or the character that
// settles the classification, may still arrive. At end of stream such a run
// degrades to literal text rather than a guessed open or close.
func decideBackticks(buf []byte, i int, st convState, eof bool) (decision, convState) {
	n := i
	for n < len(buf) && buf[n] == '`' {
		n++
	}
	if n == len(buf) {
		if eof {
			return decision{kind: outcomePass, start: i, end: n}, st
		}
		return decision{kind: outcomeHold, start: i}, st
	}
	run := n - i
	if st.fence == fenceCode {
		if run == st.openTicks {
			st.fence = fenceNone
			st.openTicks = 0
			return decision{kind: outcomeRewrite, start: i, end: n, repl: orgBlockClose}, st
		}
		return decision{kind: outcomePass, start: i, end: n}, st
	}
	if lineLeading(buf, i) {
		st.fence = fenceCode
		st.openTicks = run
		return decision{kind: outcomeRewrite, start: i, end: n, repl: orgBlockOpenMarker}, st
	}
	if run <= 2 {
		return decision{kind: outcomeRewrite, start: i, end: n, repl: orgInlineCode}, st
	}
	return decision{kind: outcomePass, start: i, end: n}, st
}

// decideHashes handles a line-leading # run: a heading marker when followed
// by whitespace, a producer-emitted Org source block when followed by
// +begin_src, literal text otherwise.
func decideHashes(buf []byte, i int, st convState, eof bool) (decision, convState) {
	n := i
	for n < len(buf) && buf[n] == '#' {
		n++
	}
	run := n - i
	if n == len(buf) {
		if eof {
			return decision{kind: outcomePass, start: i, end: n}, st
		}
		return decision{kind: outcomeHold, start: i}, st
	}
	if run == 1 && buf[n] == '+' {
		switch matchAt(buf, i, orgBlockOpen) {
		case matchFull:
			st.fence = fenceAwaitClose
			return decision{kind: outcomePass, start: i, end: i + len(orgBlockOpen)}, st
		case matchPartial:
			if !eof {
				return decision{kind: outcomeHold, start: i}, st
			}
		}
		return decision{kind: outcomePass, start: i, end: n}, st
	}
	switch buf[n] {
	case ' ', '\t', '\n':
		return decision{kind: outcomeRewrite, start: i, end: n, repl: stars(run)}, st
	}
	return decision{kind: outcomePass, start: i, end: n}, st
}

// decideBlockClose scans for the end of a passed-through Org source block.
func decideBlockClose(buf []byte, i int, st convState, eof bool) (decision, convState) {
	switch matchAt(buf, i, orgBlockClose) {
	case matchFull:
		st.fence = fenceNone
		return decision{kind: outcomePass, start: i, end: i + len(orgBlockClose)}, st
	case matchPartial:
		if !eof {
			return decision{kind: outcomeHold, start: i}, st
		}
	}
	return decision{kind: outcomePass, start: i, end: i + 1}, st
}

// decideStar disambiguates strong emphasis, emphasis, and bullet markers
// with a fixed-width look-behind/look-ahead window. Only the closing side of
// a ** pair collapses; the opening marker is identical in both dialects.
func decideStar(buf []byte, i int, st convState, eof bool) (decision, convState) {
	if i+1 == len(buf) && !eof {
		return decision{kind: outcomeHold, start: i}, st
	}
	if i+1 < len(buf) && buf[i+1] == '*' {
		if i > 0 && isWordOrPunct(buf[i-1]) {
			return decision{kind: outcomeRewrite, start: i, end: i + 2, repl: orgStrong}, st
		}
		return decision{kind: outcomePass, start: i, end: i + 2}, st
	}
	if i+1 == len(buf) {
		// Trailing star at end of stream: end of input is a closing boundary.
		if i > 0 && isWordOrPunct(buf[i-1]) {
			return decision{kind: outcomeRewrite, start: i, end: i + 1, repl: orgEmphasis}, st
		}
		return decision{kind: outcomePass, start: i, end: i + 1}, st
	}
	next := buf[i+1]
	if atLineStart(buf, i) && next == ' ' {
		return decision{kind: outcomeRewrite, start: i, end: i + 1, repl: orgBullet}, st
	}
	var prev byte
	if i > 0 {
		prev = buf[i-1]
	}
	opening := (i == 0 || prev == '\n' || isBlank(prev)) && isWord(next)
	closing := i > 0 && isWordOrPunct(prev) && (isBlank(next) || next == '\n' || isPunct(next))
	if opening || closing {
		return decision{kind: outcomeRewrite, start: i, end: i + 1, repl: orgEmphasis}, st
	}
	return decision{kind: outcomePass, start: i, end: i + 1}, st
}

type matchResult uint8

const (
	matchNone matchResult = iota
	matchPartial
	matchFull
)

// matchAt compares buf[i:] against want; matchPartial means buf ran out
// while still agreeing with want.
func matchAt(buf []byte, i int, want string) matchResult {
	for k := 0; k < len(want); k++ {
		if i+k == len(buf) {
			return matchPartial
		}
		if buf[i+k] != want[k] {
			return matchNone
		}
	}
	return matchFull
}

func atLineStart(buf []byte, i int) bool {
	return i == 0 || buf[i-1] == '\n'
}

// lineLeading reports whether only blanks and tabs precede position i on its
// line.
func lineLeading(buf []byte, i int) bool {
	for i > 0 {
		switch buf[i-1] {
		case ' ', '\t':
			i--
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

func stars(n int) string {
	if n < len(headingStars) {
		return headingStars[n]
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = '*'
	}
	return string(out)
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}

func isWord(b byte) bool {
	if b >= '0' && b <= '9' {
		return true
	}
	if b >= 'a' && b <= 'z' {
		return true
	}
	if b >= 'A' && b <= 'Z' {
		return true
	}
	return b == '_' || b >= 0x80
}

func isPunct(b byte) bool {
	switch {
	case b >= '!' && b <= '/':
		return true
	case b >= ':' && b <= '@':
		return true
	case b >= '[' && b <= '`':
		return true
	case b >= '{' && b <= '~':
		return true
	}
	return false
}

func isWordOrPunct(b byte) bool {
	return isWord(b) || isPunct(b)
}
