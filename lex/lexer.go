package lex

import (
	"regexp"

	"github.com/npillmayer/sixc"
)

// Mode is an integer label on lexer rules, selecting which rule set
// applies at a given parser state. NormalMode is the default.
type Mode int32

// NormalMode is the default lexer mode.
const NormalMode Mode = 0

// Rule is a single lexer rule: in mode Mode, if Pattern matches at the
// current cursor, produce a token of type Type on Channel.
type Rule struct {
	Mode    Mode
	Pattern *regexp.Regexp
	Type    sixc.TokType
	Channel sixc.Channel
}

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// WithRule adds a single rule matching pattern, producing tokens of type
// typ on channel, active in the given lexer mode.
func WithRule(mode Mode, pattern string, typ sixc.TokType, channel sixc.Channel) Option {
	re := regexp.MustCompile(pattern)
	return func(l *Lexer) {
		l.modeRules[mode] = append(l.modeRules[mode], Rule{Mode: mode, Pattern: re, Type: typ, Channel: channel})
	}
}

// Lexer holds rules grouped by mode and an EOF token type to emit once a
// stream is exhausted.
type Lexer struct {
	eof       sixc.TokType
	modeRules map[Mode][]Rule
}

// NewLexer creates a Lexer. eof is the token type produced once the stream
// is exhausted (on ChannelAll, matching every channel filter).
func NewLexer(eof sixc.TokType, opts ...Option) *Lexer {
	l := &Lexer{eof: eof, modeRules: make(map[Mode][]Rule)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Next reads one token from stream under the given mode. Rules for that
// mode are tried in the order they were added; the first match wins and
// advances the stream's cursor. If the stream is exhausted, a synthetic
// EOF token is returned. If the stream is not exhausted and no rule
// matches, Next returns a LexError.
func (l *Lexer) Next(stream *Stream, mode Mode) (sixc.Token, error) {
	if err := stream.AssureLine(); err != nil {
		return stream.ProduceEOF(l.eof), nil
	}
	for _, rule := range l.modeRules[mode] {
		if text, ok := stream.Match(rule.Pattern); ok {
			return stream.Produce(rule.Type, text, rule.Channel, nil), nil
		}
	}
	return nil, &LexError{Pos: stream.Position(), Mode: mode}
}
