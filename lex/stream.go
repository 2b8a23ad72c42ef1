package lex

import (
	"bufio"
	"io"
	"regexp"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/sixc"
)

func tracer() tracing.Trace {
	return tracing.Select("sixc.lex")
}

// Stream is a line-oriented input source with a (line, column) cursor. It
// is the contract the lexer and, transitively, the parser runtime consume.
type Stream struct {
	sourceID string
	lines    []string
	line     int // 0-based index of the current line
	col      int // 0-based rune offset within the current line
	atEOF    bool
	lastTok  sixc.Token // most recently produced token, for a single rewind
}

// NewStream builds a Stream over r, reading the whole input up front and
// splitting it into lines. This mirrors the reference lexer's line-oriented
// contract: rules match against "the current line text" at "a column
// cursor".
func NewStream(sourceID string, r io.Reader) (*Stream, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return &Stream{sourceID: sourceID, lines: lines}, nil
}

// SourceID returns the name this stream was constructed with (a file name
// or similar), for use in diagnostics.
func (s *Stream) SourceID() string { return s.sourceID }

// AtEOF reports whether the stream has no more lines left to offer.
func (s *Stream) AtEOF() bool {
	return s.atEOF || s.line >= len(s.lines)
}

// currentLine returns the text of the current line, advancing past blank
// trailing lines is the caller's job (AssureLine does that).
func (s *Stream) currentLine() string {
	if s.line >= len(s.lines) {
		return ""
	}
	return s.lines[s.line]
}

// AssureLine advances to the next non-exhausted line if the current line is
// fully consumed. Returns io.EOF once there is no more input.
func (s *Stream) AssureLine() error {
	for !s.AtEOF() && s.col >= len(s.currentLine()) {
		s.line++
		s.col = 0
	}
	if s.AtEOF() {
		s.atEOF = true
		return io.EOF
	}
	return nil
}

// Position returns the span of the stream's current cursor (a zero-width
// span at (line,col)), used for diagnostics.
func (s *Stream) Position() sixc.Span {
	l, c := s.line+1, s.col+1
	return sixc.NewSpan(l, c, l, c)
}

// Match tries re against the current line starting at the current column,
// anchored at that position. It returns the matched text and true on
// success, without advancing the cursor (see Produce).
func (s *Stream) Match(re *regexp.Regexp) (string, bool) {
	if s.AtEOF() {
		return "", false
	}
	line := s.currentLine()
	loc := re.FindStringIndex(line[s.col:])
	if loc == nil || loc[0] != 0 {
		return "", false
	}
	return line[s.col : s.col+loc[1]], true
}

// Produce advances the cursor past text and returns a Token spanning the
// consumed run, on the given channel.
func (s *Stream) Produce(typ sixc.TokType, text string, channel sixc.Channel, value interface{}) sixc.Token {
	startLine, startCol := s.line+1, s.col+1
	for _, r := range text {
		if r == '\n' {
			// lines already split without terminators; not expected, kept
			// defensively for callers that pass embedded newlines.
			s.line++
			s.col = 0
			continue
		}
		s.col++
	}
	tok := token{
		typ: typ, text: text, channel: channel, value: value,
		span: sixc.NewSpan(startLine, startCol, s.line+1, s.col+1),
	}
	s.lastTok = tok
	tracer().Debugf("produced %v %q on channel %d", typ, text, channel)
	return tok
}

// ProduceEOF produces a synthetic end-of-input token on ChannelAll.
func (s *Stream) ProduceEOF(typ sixc.TokType) sixc.Token {
	p := s.Position()
	tok := token{typ: typ, channel: sixc.ChannelAll, span: p}
	s.lastTok = tok
	return tok
}

// Rewind undoes the most recent Produce, moving the cursor back to the
// token's start. It is an error (and panics, mirroring an assertion
// failure in the reference implementation) to rewind any token other than
// the one most recently produced, or to rewind twice in a row.
func (s *Stream) Rewind(tok sixc.Token) {
	if s.lastTok == nil || tok.Span() != s.lastTok.Span() || tok.Text() != s.lastTok.Text() {
		panic("lex: rewind of a token that was not the most recently produced one")
	}
	sp := tok.Span()
	s.line, s.col = sp.StartLine-1, sp.StartCol-1
	s.atEOF = false
	s.lastTok = nil
}

// --- Tokens ---------------------------------------------------------------

type token struct {
	typ     sixc.TokType
	text    string
	channel sixc.Channel
	span    sixc.Span
	value   interface{}
}

var _ sixc.Token = token{}

func (t token) Type() sixc.TokType    { return t.typ }
func (t token) Text() string          { return t.text }
func (t token) Channel() sixc.Channel { return t.channel }
func (t token) Span() sixc.Span       { return t.span }
func (t token) Value() interface{}    { return t.value }

// NewToken builds a Token directly; useful for auxiliary lexers/adapters
// that do not go through a Stream (e.g. the lexmachine adapter).
func NewToken(typ sixc.TokType, text string, channel sixc.Channel, span sixc.Span, value interface{}) sixc.Token {
	return token{typ: typ, text: text, channel: channel, span: span, value: value}
}
