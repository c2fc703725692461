package requirement

import (
	"regexp"
	"strings"
)

// SplitParser parses requirement fields by sequential string splitting and
// pattern matching, the way the catalog's historical converter did:
//
//   - the grouped form "(A MIN DD veya B MIN DD)ve (C MIN DD)" is split on
//     the AND-plus-parenthesis marker, each segment read up to its first
//     closing parenthesis;
//   - each group body is split on the OR keyword and each piece matched
//     against the course/grade pattern; non-matching pieces are dropped;
//   - after all segments, the text following the last closing parenthesis is
//     rescanned and, when it still contains the OR keyword, appended as one
//     final group.
//
// The trailing rescan can emit a group that duplicates the last
// parenthesized one (an unclosed final parenthesis makes its body reappear
// after the last ")"). That behavior is observable in existing output, so
// this parser reproduces it; GrammarParser is the stricter replacement.
type SplitParser struct {
	groupSplitPattern *regexp.Regexp
	pairPattern       *regexp.Regexp
}

// NewSplitParser creates a split parser with compiled patterns.
func NewSplitParser() *SplitParser {
	return &SplitParser{
		groupSplitPattern: regexp.MustCompile(`ve\s*\(`),
		pairPattern:       regexp.MustCompile(`([A-Z]{2,4}\s+\d+[A-Z]?)\s+MIN\s+([A-Z]+)`),
	}
}

// Name returns the parser name.
func (p *SplitParser) Name() string {
	return "split"
}

// Parse parses a raw requirement field.
func (p *SplitParser) Parse(field string) Result {
	text, ok := Normalize(field)
	if !ok {
		return emptyResult()
	}

	result := emptyResult()
	if HasGroupedForm(text) {
		p.parseGrouped(text, &result)
	} else {
		p.parseUngrouped(text, &result)
	}
	return result
}

// parseGrouped handles the parenthesized multi-group form.
func (p *SplitParser) parseGrouped(text string, result *Result) {
	segments := p.groupSplitPattern.Split(text, -1)

	for i, segment := range segments {
		if i == 0 {
			// The first segment keeps its opening parenthesis after the split.
			segment = strings.TrimPrefix(segment, "(")
		}

		body := segment
		if closeIndex := strings.Index(segment, ")"); closeIndex >= 0 {
			body = segment[:closeIndex]
		}

		courses := p.extractPairs(body, result)
		if len(courses) > 0 {
			result.Expression = append(result.Expression, RequirementGroup{
				Index:   len(result.Expression) + 1,
				Courses: courses,
			})
		}
	}

	// Rescan whatever follows the last closing parenthesis. This re-reads
	// text the segment loop may already have consumed; see the type comment.
	pieces := strings.Split(text, ")")
	remaining := strings.TrimSpace(pieces[len(pieces)-1])
	if remaining != "" && strings.Contains(remaining, orKeyword) {
		courses := p.extractPairs(remaining, result)
		if len(courses) > 0 {
			result.Expression = append(result.Expression, RequirementGroup{
				Index:   len(result.Expression) + 1,
				Courses: courses,
			})
		}
	}
}

// parseUngrouped handles the single implicit group form.
func (p *SplitParser) parseUngrouped(text string, result *Result) {
	courses := p.extractPairs(text, result)
	if len(courses) > 0 {
		result.Expression = append(result.Expression, RequirementGroup{
			Index:   1,
			Courses: courses,
		})
	}
}

// extractPairs splits a group body on the OR keyword and extracts one
// course/grade pair per matching piece. Pieces without a match are recorded
// as skipped.
func (p *SplitParser) extractPairs(body string, result *Result) []CourseRequirement {
	var courses []CourseRequirement
	for _, alternative := range SplitAlternatives(body) {
		match := p.pairPattern.FindStringSubmatch(alternative)
		if match == nil {
			if alternative != "" {
				result.Skipped = append(result.Skipped, alternative)
			}
			continue
		}
		courses = append(courses, CourseRequirement{
			Code:     strings.ReplaceAll(match[1], " ", ""),
			MinGrade: match[2],
		})
	}
	return courses
}
