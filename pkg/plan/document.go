package plan

import (
	"encoding/json"
	"strings"
)

// Faculty is a top-level "# " heading with its degree programs.
type Faculty struct {
	Name     string     `json:"name"`
	Programs []*Program `json:"programs"`
}

// Program is a "## " heading with its catalog periods.
type Program struct {
	Name    string    `json:"name"`
	Periods []*Period `json:"periods"`
}

// Period is a "### " heading, one catalog term of a program.
type Period struct {
	Name      string              `json:"name"`
	Semesters []*DocumentSemester `json:"semesters"`
}

// DocumentSemester wraps one semester line of a period.
type DocumentSemester struct {
	Courses []DocumentEntry `json:"courses"`
}

// DocumentEntry is an Entry in document form, where elective fields nest
// under a "data" object instead of sitting flat next to "type".
type DocumentEntry struct {
	Entry
}

func (e DocumentEntry) MarshalJSON() ([]byte, error) {
	if e.Type == EntryElective && e.Slot != nil {
		type slotData struct {
			Name     string   `json:"name"`
			Category string   `json:"category"`
			Options  []string `json:"options"`
		}
		return json.Marshal(struct {
			Type EntryType `json:"type"`
			Data slotData  `json:"data"`
		}{EntryElective, slotData{e.Slot.Name, e.Slot.Category, e.Slot.Options}})
	}
	return json.Marshal(struct {
		Type EntryType `json:"type"`
		Code string    `json:"code"`
	}{EntryCourse, e.Code})
}

// Document is a parsed multi-faculty plan file.
type Document struct {
	Faculties []*Faculty `json:"faculties"`
}

// Summary counts every nesting level of a document.
type Summary struct {
	Faculties int
	Programs  int
	Periods   int
	Semesters int
}

// Summary walks the document and counts its faculties, programs, periods
// and semesters.
func (d *Document) Summary() Summary {
	summary := Summary{Faculties: len(d.Faculties)}
	for _, faculty := range d.Faculties {
		summary.Programs += len(faculty.Programs)
		for _, program := range faculty.Programs {
			summary.Periods += len(program.Periods)
			for _, period := range program.Periods {
				summary.Semesters += len(period.Semesters)
			}
		}
	}
	return summary
}

// ParseDocument parses a plan document. "# " lines open a faculty, "## " a
// program and "### " a period; lines containing "=" that do not start with
// "#" are semester lines appended to the current period. Headings and
// semester lines with no open parent are dropped silently.
func ParseDocument(text string) *Document {
	doc := &Document{Faculties: []*Faculty{}}

	var faculty *Faculty
	var program *Program
	var period *Period

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "# "):
			faculty = &Faculty{Name: strings.TrimSpace(line[2:]), Programs: []*Program{}}
			doc.Faculties = append(doc.Faculties, faculty)
			program = nil
			period = nil
		case strings.HasPrefix(line, "## "):
			program = &Program{Name: strings.TrimSpace(line[3:]), Periods: []*Period{}}
			if faculty != nil {
				faculty.Programs = append(faculty.Programs, program)
			}
			period = nil
		case strings.HasPrefix(line, "### "):
			period = &Period{Name: strings.TrimSpace(line[4:]), Semesters: []*DocumentSemester{}}
			if program != nil {
				program.Periods = append(program.Periods, period)
			}
		case strings.Contains(line, "=") && !strings.HasPrefix(line, "#"):
			if period == nil {
				continue
			}
			semester := ParseSemesterLine(line)
			entries := make([]DocumentEntry, len(semester))
			for i, entry := range semester {
				entries[i] = DocumentEntry{entry}
			}
			period.Semesters = append(period.Semesters, &DocumentSemester{Courses: entries})
		}
	}

	return doc
}
