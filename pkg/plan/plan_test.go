package plan

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/selimdilsadercan/foritu-data/pkg/requirement"
)

func TestParseSemesterLine(t *testing.T) {
	cases := []struct {
		name string
		line string
		want Semester
	}{
		{
			name: "courses_only",
			line: "FIZ 101=KIM 101=BIL 101E",
			want: Semester{
				{Type: EntryCourse, Code: "FIZ 101"},
				{Type: EntryCourse, Code: "KIM 101"},
				{Type: EntryCourse, Code: "BIL 101E"},
			},
		},
		{
			name: "items_trimmed",
			line: " FIZ 101 = KIM 101 ",
			want: Semester{
				{Type: EntryCourse, Code: "FIZ 101"},
				{Type: EntryCourse, Code: "KIM 101"},
			},
		},
		{
			name: "empty_items_dropped",
			line: "FIZ 101==KIM 101=",
			want: Semester{
				{Type: EntryCourse, Code: "FIZ 101"},
				{Type: EntryCourse, Code: "KIM 101"},
			},
		},
		{
			name: "elective_slot_parsed",
			line: "MAT 101=[7th Semester Elective (TM)*(BLG 411E|BLG 413E)]",
			want: Semester{
				{Type: EntryCourse, Code: "MAT 101"},
				{Type: EntryElective, Slot: &requirement.ElectiveSlot{
					Name:     "7th Semester Elective",
					Category: "TM",
					Options:  []string{"BLG 411E", "BLG 413E"},
				}},
			},
		},
		{
			name: "category_less_elective",
			line: "[English Course I*(ING 101|ING 102)]",
			want: Semester{
				{Type: EntryElective, Slot: &requirement.ElectiveSlot{
					Name:    "English Course I",
					Options: []string{"ING 101", "ING 102"},
				}},
			},
		},
		{
			name: "malformed_elective_skipped",
			line: "FIZ 101=[bozuk]",
			want: Semester{
				{Type: EntryCourse, Code: "FIZ 101"},
			},
		},
		{
			name: "empty_line",
			line: "",
			want: Semester{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseSemesterLine(tc.line)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestParsePlan(t *testing.T) {
	text := "FIZ 101=KIM 101\n" +
		"\n" +
		"MAT 102=FIZ 102=[English Course II*(ING 201|ING 202)]\n" +
		"   \n" +
		"BLG 212\n"

	semesters := ParsePlan(text)
	if len(semesters) != 3 {
		t.Fatalf("Expected 3 semesters, got %d", len(semesters))
	}
	if len(semesters[0]) != 2 {
		t.Errorf("Expected 2 entries in first semester, got %d", len(semesters[0]))
	}
	if len(semesters[1]) != 3 {
		t.Errorf("Expected 3 entries in second semester, got %d", len(semesters[1]))
	}
	if semesters[1][2].Type != EntryElective {
		t.Errorf("Expected elective entry, got %s", semesters[1][2].Type)
	}
	if len(semesters[2]) != 1 || semesters[2][0].Code != "BLG 212" {
		t.Errorf("Expected single BLG 212 entry, got %+v", semesters[2])
	}
}

func TestParsePlanEmptyInput(t *testing.T) {
	semesters := ParsePlan("")
	if len(semesters) != 0 {
		t.Errorf("Expected no semesters, got %d", len(semesters))
	}
}

func TestEntryMarshalJSON(t *testing.T) {
	cases := []struct {
		name  string
		entry Entry
		want  string
	}{
		{
			name:  "course",
			entry: Entry{Type: EntryCourse, Code: "FIZ 101"},
			want:  `{"type":"course","code":"FIZ 101"}`,
		},
		{
			name: "elective_flat",
			entry: Entry{Type: EntryElective, Slot: &requirement.ElectiveSlot{
				Name:     "7th Semester Elective",
				Category: "TM",
				Options:  []string{"BLG 411E", "BLG 413E"},
			}},
			want: `{"type":"elective","name":"7th Semester Elective","category":"TM","options":["BLG 411E","BLG 413E"]}`,
		},
		{
			name: "category_less_elective_keeps_key",
			entry: Entry{Type: EntryElective, Slot: &requirement.ElectiveSlot{
				Name:    "English Course I",
				Options: []string{"ING 101"},
			}},
			want: `{"type":"elective","name":"English Course I","category":"","options":["ING 101"]}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.entry)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if string(data) != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, data)
			}
		})
	}
}

func TestSemesterMarshalJSON(t *testing.T) {
	data, err := json.Marshal(ParseSemesterLine("="))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Expected empty array, got %s", data)
	}
}
