package requirement

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenType classifies tokens of the requirement mini-language.
type tokenType int

const (
	tokenEOF tokenType = iota
	// tokenCode is a course code: 2-4 uppercase letters, optional space,
	// digits, optional trailing letter ("MAT 102E").
	tokenCode
	// tokenMin is the literal grade-threshold keyword "MIN".
	tokenMin
	// tokenWord is an uppercase letter run, a letter-grade candidate.
	tokenWord
	tokenOr
	tokenAnd
	tokenLParen
	tokenRParen
	// tokenJunk is a run the lexer could not classify.
	tokenJunk
)

// token is one lexed unit with its byte offset in the source field.
type token struct {
	kind tokenType
	text string
	pos  int
}

var (
	codeTokenPattern = regexp.MustCompile(`^[A-Z]{2,4}\s*\d+[A-Z]?`)
	wordTokenPattern = regexp.MustCompile(`^[A-Z]+`)
	lettersPattern   = regexp.MustCompile(`^[A-Z]+`)
)

// lexExpression tokenizes requirement text. The scan is total: unclassifiable
// runs come back as junk tokens so the parser can record them as skipped
// fragments. The returned slice always ends with an EOF token.
func lexExpression(text string) []token {
	var tokens []token
	pos := 0
	for pos < len(text) {
		rest := text[pos:]
		r, size := utf8.DecodeRuneInString(rest)

		switch {
		case unicode.IsSpace(r):
			pos += size

		case r == '(':
			tokens = append(tokens, token{kind: tokenLParen, text: "(", pos: pos})
			pos++

		case r == ')':
			tokens = append(tokens, token{kind: tokenRParen, text: ")", pos: pos})
			pos++

		case matchKeyword(rest, orKeyword):
			tokens = append(tokens, token{kind: tokenOr, text: orKeyword, pos: pos})
			pos += len(orKeyword)

		case matchKeyword(rest, andKeyword):
			tokens = append(tokens, token{kind: tokenAnd, text: andKeyword, pos: pos})
			pos += len(andKeyword)

		default:
			matched, kind := matchUppercaseToken(rest)
			if matched == "" {
				matched = junkRun(rest)
				kind = tokenJunk
			}
			tokenText := matched
			if kind == tokenCode {
				tokenText = strings.ReplaceAll(matched, " ", "")
			}
			tokens = append(tokens, token{kind: kind, text: tokenText, pos: pos})
			pos += len(matched)
		}
	}
	tokens = append(tokens, token{kind: tokenEOF, pos: len(text)})
	return tokens
}

// matchKeyword reports whether text starts with the keyword followed by a
// token boundary. The boundary check lets glued forms like "DDveya" lex as
// two tokens while leaving longer words ("veyahut") alone.
func matchKeyword(text, keyword string) bool {
	if !strings.HasPrefix(text, keyword) {
		return false
	}
	return startsNewToken(text[len(keyword):])
}

// matchUppercaseToken matches a course code, the MIN keyword, or a bare
// uppercase word at the start of text. Returns "" when none applies.
func matchUppercaseToken(text string) (string, tokenType) {
	if matched := codeTokenPattern.FindString(text); matched != "" {
		// "MIN 5" would scan as a code; the keyword wins.
		if lettersPattern.FindString(matched) != "MIN" && startsNewToken(text[len(matched):]) {
			return matched, tokenCode
		}
	}
	if matched := wordTokenPattern.FindString(text); matched != "" && startsNewToken(text[len(matched):]) {
		if matched == "MIN" {
			return matched, tokenMin
		}
		return matched, tokenWord
	}
	return "", tokenJunk
}

// startsNewToken reports whether the remainder begins a fresh token: end of
// input, a non-letter, or a glued separator keyword.
func startsNewToken(rest string) bool {
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsLetter(r) {
		return true
	}
	return strings.HasPrefix(rest, orKeyword) || strings.HasPrefix(rest, andKeyword)
}

// junkRun consumes an unclassifiable run up to the next space or parenthesis.
func junkRun(text string) string {
	for i, r := range text {
		if unicode.IsSpace(r) || r == '(' || r == ')' {
			return text[:i]
		}
	}
	return text
}
