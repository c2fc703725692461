package catalog

import (
	"fmt"
	"strings"

	"github.com/selimdilsadercan/foritu-data/pkg/psv"
)

// Session is one weekly meeting of a lesson.
type Session struct {
	Location string `json:"location"`
	Day      string `json:"day"`
	Time     string `json:"time"`
	Room     string `json:"room"`
}

// Lesson is one scheduled section of a course.
type Lesson struct {
	LessonID        string    `json:"lesson_id"`
	CourseCode      string    `json:"course_code"`
	DeliveryMode    string    `json:"delivery_mode"`
	Instructor      string    `json:"instructor"`
	Sessions        []Session `json:"sessions"`
	Capacity        string    `json:"capacity"`
	Enrolled        string    `json:"enrolled"`
	AllowedPrograms []string  `json:"allowed_programs"`
}

// LessonsMetadata describes one lessons conversion in the output document.
type LessonsMetadata struct {
	SourceFile      string `json:"source_file"`
	TotalLessons    int    `json:"total_lessons"`
	ConversionNotes string `json:"conversion_notes"`
}

// LessonsDocument is the output shape: a metadata block plus the lessons.
type LessonsDocument struct {
	Metadata LessonsMetadata `json:"metadata"`
	Lessons  []Lesson        `json:"lessons"`
}

// lessonConversionNotes documents the session derivation in the output.
const lessonConversionNotes = "Location, days, times, and room fields parsed into sessions array"

// lessonFieldCount is the column count of the lessons export: lesson id,
// course code, delivery mode, instructor, location, days, times, room,
// capacity, enrolled, allowed programs.
const lessonFieldCount = 11

// LessonConverter converts lesson PSV records.
type LessonConverter struct {
	observe Observer
}

// NewLessonConverter creates a lesson converter.
func NewLessonConverter(observe Observer) *LessonConverter {
	return &LessonConverter{observe: observe}
}

// Convert converts PSV records into lessons. Lines with the wrong field
// count are skipped and recorded in the report.
func (c *LessonConverter) Convert(records []psv.Record) ([]Lesson, *ConvertReport) {
	report := NewConvertReport()
	lessons := make([]Lesson, 0, len(records))

	for _, record := range records {
		fields := record.Fields()
		if len(fields) != lessonFieldCount {
			reason := fmt.Sprintf("expected %d fields, got %d", lessonFieldCount, len(fields))
			c.observe.notify(record.Line, reason)
			report.RecordSkip(record.Line, reason)
			continue
		}

		lessons = append(lessons, Lesson{
			LessonID:        fields[0],
			CourseCode:      fields[1],
			DeliveryMode:    fields[2],
			Instructor:      fields[3],
			Sessions:        buildSessions(fields[4], fields[5], fields[6], fields[7]),
			Capacity:        fields[8],
			Enrolled:        fields[9],
			AllowedPrograms: splitPrograms(fields[10]),
		})
		report.Converted++
	}

	return lessons, report
}

// ConvertFile decodes a PSV file and converts its records, wrapping the
// lessons in the metadata document shape.
func (c *LessonConverter) ConvertFile(path string) (*LessonsDocument, *ConvertReport, error) {
	text, encoding, err := psv.DecodeFile(path)
	if err != nil {
		return nil, nil, err
	}
	lessons, report := c.Convert(psv.Records(text))
	report.SourceFile = path
	report.Encoding = encoding
	return &LessonsDocument{
		Metadata: LessonsMetadata{
			SourceFile:      path,
			TotalLessons:    len(lessons),
			ConversionNotes: lessonConversionNotes,
		},
		Lessons: lessons,
	}, report, nil
}

// buildSessions zips the space-separated location, day, time, and room
// fields into session objects. Shorter lists are padded by repeating their
// own last value, so a lesson meeting twice in the same room needs the room
// written only once. An entirely empty field pads with empty strings.
func buildSessions(location, days, times, room string) []Session {
	locations := strings.Fields(location)
	dayList := strings.Fields(days)
	timeList := strings.Fields(times)
	rooms := strings.Fields(room)

	count := len(locations)
	for _, list := range [][]string{dayList, timeList, rooms} {
		if len(list) > count {
			count = len(list)
		}
	}

	sessions := make([]Session, 0, count)
	for i := 0; i < count; i++ {
		sessions = append(sessions, Session{
			Location: padded(locations, i),
			Day:      padded(dayList, i),
			Time:     padded(timeList, i),
			Room:     padded(rooms, i),
		})
	}
	return sessions
}

// padded returns list[i], the last element when i runs past the end, or ""
// for an empty list.
func padded(list []string, i int) string {
	if len(list) == 0 {
		return ""
	}
	if i >= len(list) {
		return list[len(list)-1]
	}
	return list[i]
}

// splitPrograms splits the comma-separated allowed-programs field, dropping
// empty entries.
func splitPrograms(field string) []string {
	programs := []string{}
	for _, program := range strings.Split(field, ",") {
		if trimmed := strings.TrimSpace(program); trimmed != "" {
			programs = append(programs, trimmed)
		}
	}
	return programs
}
