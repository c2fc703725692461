package requirement

import (
	"regexp"
	"strings"
)

// OtherConditionsTag is the catalog's free-text marker for requirements it
// does not express structurally ("other conditions").
const OtherConditionsTag = "Diğer Şartlar"

// yearStandingPattern matches year-standing tags such as "4.Sınıf".
var yearStandingPattern = regexp.MustCompile(`\d+\.Sınıf`)

// ExtractConditions scans raw prerequisite and corequisite text for
// categorical annotations that ride outside the boolean expression:
//
//   - every year-standing tag in the corequisite text, in source order,
//     when that text is non-empty and not the null token;
//   - the other-conditions marker, once, when the prerequisite text
//     contains it.
//
// Corequisite-derived tags come first. Duplicates in the source are kept.
// The scan is pure and idempotent.
func ExtractConditions(prereqText, coreqText string) []string {
	conditions := []string{}

	if trimmed := strings.TrimSpace(coreqText); trimmed != "" && trimmed != NullToken {
		conditions = append(conditions, yearStandingPattern.FindAllString(coreqText, -1)...)
	}
	if strings.Contains(prereqText, OtherConditionsTag) {
		conditions = append(conditions, OtherConditionsTag)
	}
	return conditions
}
