// Package plan parses curriculum plan files. A flat plan lists one semester
// per line, with course codes and elective slots separated by "=". A plan
// document nests the same semester lines under markdown-style faculty,
// program and period headings.
package plan

import (
	"encoding/json"
	"strings"

	"github.com/selimdilsadercan/foritu-data/pkg/requirement"
)

// EntryType discriminates semester entries.
type EntryType string

const (
	// EntryCourse is a plain course code.
	EntryCourse EntryType = "course"
	// EntryElective is an elective slot with its option list.
	EntryElective EntryType = "elective"
)

// Entry is one item on a semester line: a course code or an elective slot.
// Exactly one of Code and Slot is set, according to Type.
type Entry struct {
	Type EntryType
	Code string
	Slot *requirement.ElectiveSlot
}

// MarshalJSON emits course entries as {"type":"course","code":...} and
// elective entries flat as {"type":"elective","name":...,"category":...,
// "options":[...]}. Category is present even when the slot has none.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Type == EntryElective && e.Slot != nil {
		return json.Marshal(struct {
			Type     EntryType `json:"type"`
			Name     string    `json:"name"`
			Category string    `json:"category"`
			Options  []string  `json:"options"`
		}{EntryElective, e.Slot.Name, e.Slot.Category, e.Slot.Options})
	}
	return json.Marshal(struct {
		Type EntryType `json:"type"`
		Code string    `json:"code"`
	}{EntryCourse, e.Code})
}

// Semester is the ordered list of entries on one plan line.
type Semester []Entry

// ParseSemesterLine parses one "=" separated plan line. Empty items are
// dropped. Bracketed items are parsed as elective slots and skipped when
// malformed; everything else becomes a course entry.
func ParseSemesterLine(line string) Semester {
	semester := Semester{}
	for _, item := range strings.Split(line, "=") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.HasPrefix(item, "[") && strings.HasSuffix(item, "]") {
			slot, err := requirement.ParseElective(item)
			if err != nil {
				continue
			}
			semester = append(semester, Entry{Type: EntryElective, Slot: slot})
			continue
		}
		semester = append(semester, Entry{Type: EntryCourse, Code: item})
	}
	return semester
}

// ParsePlan parses a flat plan, one semester per non-blank line.
func ParsePlan(text string) []Semester {
	semesters := []Semester{}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		semesters = append(semesters, ParseSemesterLine(line))
	}
	return semesters
}
