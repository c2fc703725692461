// Package requirement parses the course catalog's requirement mini-language:
// elective-slot placeholders, prerequisite expressions built from "veya" (OR)
// and "ve" (AND) joined course/grade pairs, and the free-text special
// conditions that ride along in the prerequisite and corequisite fields.
package requirement

import (
	"fmt"
	"strings"
)

// CourseRequirement is one (course code, minimum grade) pair. The code is
// stored with internal whitespace removed ("MAT 102" becomes "MAT102").
type CourseRequirement struct {
	Code     string `json:"code"`
	MinGrade string `json:"min"`
}

// String renders the pair in catalog notation.
func (c CourseRequirement) String() string {
	return fmt.Sprintf("%s MIN %s", c.Code, c.MinGrade)
}

// RequirementGroup is an OR-list of course requirements: any one member
// satisfies the group. Index is 1-based in left-to-right discovery order and
// is only an ordinal within a single parse, never a stable identifier.
type RequirementGroup struct {
	Index   int                 `json:"group"`
	Courses []CourseRequirement `json:"courses"`
}

// PrerequisiteExpression is a logical AND across its groups. An empty
// expression means "no prerequisite".
type PrerequisiteExpression []RequirementGroup

// IsEmpty reports whether the expression carries no usable requirement.
func (e PrerequisiteExpression) IsEmpty() bool {
	return len(e) == 0
}

// String renders the expression in canonical catalog notation, one
// parenthesized group per AND term.
func (e PrerequisiteExpression) String() string {
	if len(e) == 0 {
		return ""
	}
	groupTexts := make([]string, 0, len(e))
	for _, group := range e {
		memberTexts := make([]string, 0, len(group.Courses))
		for _, course := range group.Courses {
			memberTexts = append(memberTexts, course.String())
		}
		groupTexts = append(groupTexts, "("+strings.Join(memberTexts, " veya ")+")")
	}
	return strings.Join(groupTexts, " ve ")
}
