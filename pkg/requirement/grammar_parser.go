package requirement

import "strings"

// GrammarParser parses requirement fields by recursive descent over the
// grammar
//
//	Expr   := Group (AND Group)*
//	Group  := "(" OrList ")" | OrList
//	OrList := Pair (OR Pair)*
//	Pair   := CODE "MIN" GRADE
//
// It is the stricter replacement for SplitParser: there is no trailing
// rescan, so no group is ever emitted twice, and an AND keyword works with
// or without parentheses. Recovery is lenient: tokens that fit nowhere are
// recorded as skipped fragments, an unclosed final parenthesis is tolerated,
// and adjacent groups without a separating AND are accepted.
type GrammarParser struct{}

// NewGrammarParser creates a grammar parser.
func NewGrammarParser() *GrammarParser {
	return &GrammarParser{}
}

// Name returns the parser name.
func (p *GrammarParser) Name() string {
	return "grammar"
}

// Parse parses a raw requirement field.
func (p *GrammarParser) Parse(field string) Result {
	text, ok := Normalize(field)
	if !ok {
		return emptyResult()
	}

	parse := &expressionParse{tokens: lexExpression(text)}
	result := emptyResult()
	result.Expression = parse.expression()
	result.Skipped = parse.skipped
	return result
}

// expressionParse holds the token cursor and skipped fragments for one parse.
type expressionParse struct {
	tokens  []token
	cursor  int
	skipped []string
}

// expression parses Group (AND Group)* with lenient recovery. Stray tokens
// between groups are skipped; a missing AND between groups is accepted.
func (p *expressionParse) expression() PrerequisiteExpression {
	groups := PrerequisiteExpression{}
	for !p.at(tokenEOF) {
		switch {
		case p.at(tokenLParen), p.at(tokenCode):
			courses := p.group()
			if len(courses) > 0 {
				groups = append(groups, RequirementGroup{
					Index:   len(groups) + 1,
					Courses: courses,
				})
			}
		case p.accept(tokenAnd):
			// Group separator; the next iteration parses the group itself.
		case p.at(tokenWord), p.at(tokenMin), p.at(tokenJunk):
			p.skipNoise()
		default:
			p.skipFragment()
		}
	}
	return groups
}

// group parses "(" OrList ")" or a bare OrList. The closing parenthesis is
// optional so that an unclosed final group still parses.
func (p *expressionParse) group() []CourseRequirement {
	if p.accept(tokenLParen) {
		courses := p.orList()
		p.accept(tokenRParen)
		return courses
	}
	return p.orList()
}

// orList parses Pair (OR Pair)*. Noise between a pair and the next OR
// keyword is skipped so that a stray annotation does not break the list.
func (p *expressionParse) orList() []CourseRequirement {
	var courses []CourseRequirement
	for {
		if course, ok := p.pair(); ok {
			courses = append(courses, course)
		}
		p.skipNoise()
		if !p.accept(tokenOr) {
			return courses
		}
	}
}

// pair parses CODE "MIN" GRADE. On failure it records what it consumed as a
// skipped fragment and reports false.
func (p *expressionParse) pair() (CourseRequirement, bool) {
	if !p.at(tokenCode) {
		return CourseRequirement{}, false
	}
	code := p.take().text

	if !p.accept(tokenMin) {
		p.skipped = append(p.skipped, code)
		return CourseRequirement{}, false
	}
	if !p.at(tokenWord) {
		p.skipped = append(p.skipped, code+" MIN")
		return CourseRequirement{}, false
	}
	grade := p.take().text

	return CourseRequirement{Code: code, MinGrade: grade}, true
}

// skipNoise consumes word, MIN, and junk tokens up to the next structural
// token (OR, AND, parenthesis, course code, or end of input), recording the
// run as one skipped fragment.
func (p *expressionParse) skipNoise() {
	var noise []string
	for p.at(tokenWord) || p.at(tokenMin) || p.at(tokenJunk) {
		noise = append(noise, p.take().text)
	}
	if len(noise) > 0 {
		p.skipped = append(p.skipped, strings.Join(noise, " "))
	}
}

// skipFragment consumes a single unusable token and records it.
func (p *expressionParse) skipFragment() {
	fragment := p.take()
	if fragment.text != "" {
		p.skipped = append(p.skipped, fragment.text)
	}
}

// at reports whether the current token has the given type.
func (p *expressionParse) at(kind tokenType) bool {
	return p.tokens[p.cursor].kind == kind
}

// accept consumes the current token when it has the given type.
func (p *expressionParse) accept(kind tokenType) bool {
	if !p.at(kind) {
		return false
	}
	p.cursor++
	return true
}

// take consumes and returns the current token. EOF is never consumed, so the
// cursor stays in range.
func (p *expressionParse) take() token {
	current := p.tokens[p.cursor]
	if current.kind != tokenEOF {
		p.cursor++
	}
	return current
}
