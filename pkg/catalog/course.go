// Package catalog converts the university's PSV catalog exports (courses,
// lessons, final exams) into structured JSON. Each converter takes decoded
// records, returns the structured slice plus a ConvertReport, and routes
// line-level diagnostics through an Observer.
package catalog

import (
	"fmt"

	"github.com/selimdilsadercan/foritu-data/pkg/psv"
	"github.com/selimdilsadercan/foritu-data/pkg/requirement"
)

// Course is one catalog course line. Field order matches the export's
// column order, which is also the JSON key order consumers expect.
type Course struct {
	Code              string                             `json:"code"`
	Name              string                             `json:"name"`
	Language          string                             `json:"language"`
	Credits           string                             `json:"credits"`
	ECTSCredits       string                             `json:"ects_credits"`
	Prerequisites     requirement.PrerequisiteExpression `json:"prerequisites"`
	SpecialConditions []string                           `json:"special_conditions"`
	Corequisites      string                             `json:"corequisites"`
	Description       string                             `json:"description"`
}

// SimpleCourse is the reduced projection used by the public dataset: no
// language, ECTS, corequisite, or description fields.
type SimpleCourse struct {
	Code              string                             `json:"code"`
	Name              string                             `json:"name"`
	Credits           string                             `json:"credits"`
	Prerequisites     requirement.PrerequisiteExpression `json:"prerequisites"`
	SpecialConditions []string                           `json:"special_conditions"`
}

// courseFieldCount is the column count of the courses export: code, name,
// language, credits, ects, prerequisites, corequisites, description.
const courseFieldCount = 8

// CourseConverter converts course PSV records.
type CourseConverter struct {
	parser  requirement.ExpressionParser
	observe Observer
}

// NewCourseConverter creates a course converter. A nil parser selects the
// grammar parser; a nil observer drops diagnostics.
func NewCourseConverter(parser requirement.ExpressionParser, observe Observer) *CourseConverter {
	if parser == nil {
		parser = requirement.NewGrammarParser()
	}
	return &CourseConverter{parser: parser, observe: observe}
}

// Convert converts PSV records into courses. Lines with the wrong field
// count are skipped and recorded in the report.
func (c *CourseConverter) Convert(records []psv.Record) ([]Course, *ConvertReport) {
	report := NewConvertReport()
	courses := make([]Course, 0, len(records))

	for _, record := range records {
		fields := record.Fields()
		if len(fields) != courseFieldCount {
			reason := fmt.Sprintf("expected %d fields, got %d", courseFieldCount, len(fields))
			c.observe.notify(record.Line, reason)
			report.RecordSkip(record.Line, reason)
			continue
		}

		prereqField := fields[5]
		coreqField := fields[6]

		parsed := c.parser.Parse(prereqField)
		for _, fragment := range parsed.Skipped {
			c.observe.notify(record.Line, fmt.Sprintf("unmatched requirement fragment %q", fragment))
		}

		courses = append(courses, Course{
			Code:              fields[0],
			Name:              fields[1],
			Language:          fields[2],
			Credits:           fields[3],
			ECTSCredits:       fields[4],
			Prerequisites:     parsed.Expression,
			SpecialConditions: requirement.ExtractConditions(prereqField, coreqField),
			Corequisites:      coreqField,
			Description:       fields[7],
		})
		report.Converted++
	}

	return courses, report
}

// ConvertFile decodes a PSV file through the encoding fallback chain and
// converts its records.
func (c *CourseConverter) ConvertFile(path string) ([]Course, *ConvertReport, error) {
	text, encoding, err := psv.DecodeFile(path)
	if err != nil {
		return nil, nil, err
	}
	courses, report := c.Convert(psv.Records(text))
	report.SourceFile = path
	report.Encoding = encoding
	return courses, report, nil
}

// SimpleCourses projects courses onto the reduced dataset shape.
func SimpleCourses(courses []Course) []SimpleCourse {
	simple := make([]SimpleCourse, 0, len(courses))
	for _, course := range courses {
		simple = append(simple, SimpleCourse{
			Code:              course.Code,
			Name:              course.Name,
			Credits:           course.Credits,
			Prerequisites:     course.Prerequisites,
			SpecialConditions: course.SpecialConditions,
		})
	}
	return simple
}
