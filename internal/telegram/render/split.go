package render

import (
	"strings"
	"unicode/utf8"
)

// MaxMessageLength is the Telegram limit for one message, in characters.
const MaxMessageLength = 4096

// entityMaxLen bounds the length of an HTML entity such as &#39; or &quot;.
const entityMaxLen = 10

// SplitMessage splits the HTML message s into parts of at most limit
// characters. It cuts on blank lines outside of any tag, so formatting blocks
// stay whole. A single block longer than limit is cut between characters:
// tags open at the cut are closed at the end of the part and reopened at the
// start of the next one, and entities are never broken.
func SplitMessage(s string, limit int) []string {
	if utf8.RuneCountInString(s) <= limit {
		return []string{s}
	}

	var parts []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			parts = append(parts, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, block := range topLevelBlocks(s) {
		blockLen := utf8.RuneCountInString(block)

		if blockLen > limit {
			flush()
			parts = append(parts, cutBlock(block, limit)...)
			continue
		}

		sepLen := 0
		if currentLen > 0 {
			sepLen = 2
		}
		if currentLen+sepLen+blockLen > limit {
			flush()
			sepLen = 0
		}
		if sepLen > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(block)
		currentLen += sepLen + blockLen
	}
	flush()

	return parts
}

// topLevelBlocks splits s on blank lines that are not inside a tag.
func topLevelBlocks(s string) []string {
	var blocks []string
	depth, start := 0, 0

	for i := 0; i < len(s); {
		switch {
		case s[i] == '<':
			end := strings.IndexByte(s[i:], '>')
			if end < 0 {
				i++
				continue
			}
			if s[i+1] == '/' {
				depth--
			} else {
				depth++
			}
			i += end + 1
		case depth <= 0 && strings.HasPrefix(s[i:], "\n\n"):
			blocks = append(blocks, s[start:i])
			i += 2
			start = i
		default:
			i++
		}
	}

	return append(blocks, s[start:])
}

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenOpen
	tokenClose
)

// token is a unit that is never cut: a character, an entity or a tag.
type token struct {
	kind tokenKind
	text string
	name string
}

func tokenize(s string) []token {
	var tokens []token

	for i := 0; i < len(s); {
		switch s[i] {
		case '<':
			if end := strings.IndexByte(s[i:], '>'); end > 0 {
				tag := s[i : i+end+1]
				if strings.HasPrefix(tag, "</") {
					tokens = append(tokens, token{kind: tokenClose, text: tag, name: tagName(tag[2:])})
				} else {
					tokens = append(tokens, token{kind: tokenOpen, text: tag, name: tagName(tag[1:])})
				}
				i += end + 1
				continue
			}
		case '&':
			window := s[i:min(len(s), i+entityMaxLen)]
			if end := strings.IndexByte(window, ';'); end > 0 {
				tokens = append(tokens, token{kind: tokenText, text: s[i : i+end+1]})
				i += end + 1
				continue
			}
		}

		_, size := utf8.DecodeRuneInString(s[i:])
		tokens = append(tokens, token{kind: tokenText, text: s[i : i+size]})
		i += size
	}

	return tokens
}

func tagName(s string) string {
	end := strings.IndexAny(s, " >")
	if end < 0 {
		return s
	}
	return s[:end]
}

// cutBlock cuts one oversized block into parts of at most limit characters,
// each with balanced tags.
func cutBlock(block string, limit int) []string {
	var parts []string
	var open []token
	var current strings.Builder
	currentLen := 0
	hasText, written := false, false

	start := func() {
		current.Reset()
		currentLen = 0
		hasText, written = false, false
		for _, t := range open {
			current.WriteString(t.text)
			currentLen += utf8.RuneCountInString(t.text)
		}
	}
	finish := func() {
		for i := len(open) - 1; i >= 0; i-- {
			current.WriteString("</" + open[i].name + ">")
		}
		parts = append(parts, current.String())
	}

	start()
	for _, t := range tokenize(block) {
		after := applyToken(open, t)
		needed := currentLen + utf8.RuneCountInString(t.text) + closersLen(after)
		if needed > limit && hasText {
			finish()
			start()
			after = applyToken(open, t)
		}

		current.WriteString(t.text)
		currentLen += utf8.RuneCountInString(t.text)
		written = true
		if t.kind == tokenText {
			hasText = true
		}
		open = after
	}
	if written {
		finish()
	}

	return parts
}

func applyToken(open []token, t token) []token {
	switch t.kind {
	case tokenOpen:
		return append(open[:len(open):len(open)], t)
	case tokenClose:
		for i := len(open) - 1; i >= 0; i-- {
			if open[i].name == t.name {
				return open[:i:i]
			}
		}
	}
	return open
}

func closersLen(open []token) int {
	n := 0
	for _, t := range open {
		n += len(t.name) + 3
	}
	return n
}
