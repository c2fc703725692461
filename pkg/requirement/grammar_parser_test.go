package requirement

import (
	"reflect"
	"testing"
)

func TestGrammarParserName(t *testing.T) {
	parser := NewGrammarParser()
	if parser.Name() != "grammar" {
		t.Errorf("Expected 'grammar', got %q", parser.Name())
	}
}

func TestGrammarParserImplementsInterface(t *testing.T) {
	// Compile-time check that GrammarParser implements ExpressionParser.
	var _ ExpressionParser = (*GrammarParser)(nil)
}

func TestGrammarParserExpressions(t *testing.T) {
	parser := NewGrammarParser()

	cases := []struct {
		name     string
		field    string
		expected PrerequisiteExpression
	}{
		{
			name:     "null_token",
			field:    "Yok",
			expected: PrerequisiteExpression{},
		},
		{
			name:     "empty",
			field:    "",
			expected: PrerequisiteExpression{},
		},
		{
			name:  "single_pair",
			field: "MAT 102 MIN DD",
			expected: PrerequisiteExpression{
				{Index: 1, Courses: []CourseRequirement{{Code: "MAT102", MinGrade: "DD"}}},
			},
		},
		{
			name:  "glued_or_keyword",
			field: "MAT 102 MIN DDveya MAT 102E MIN DD",
			expected: PrerequisiteExpression{
				{Index: 1, Courses: []CourseRequirement{
					{Code: "MAT102", MinGrade: "DD"},
					{Code: "MAT102E", MinGrade: "DD"},
				}},
			},
		},
		{
			name:  "two_parenthesized_groups",
			field: "(MAT 281 MIN DD veya MAT 281E MIN DD)ve (BIL 105E MIN DD veya BIL 105 MIN DD)",
			expected: PrerequisiteExpression{
				{Index: 1, Courses: []CourseRequirement{
					{Code: "MAT281", MinGrade: "DD"},
					{Code: "MAT281E", MinGrade: "DD"},
				}},
				{Index: 2, Courses: []CourseRequirement{
					{Code: "BIL105E", MinGrade: "DD"},
					{Code: "BIL105", MinGrade: "DD"},
				}},
			},
		},
		{
			name:  "and_without_space",
			field: "(FIZ 101 MIN DD)ve(KIM 101 MIN DD)",
			expected: PrerequisiteExpression{
				{Index: 1, Courses: []CourseRequirement{{Code: "FIZ101", MinGrade: "DD"}}},
				{Index: 2, Courses: []CourseRequirement{{Code: "KIM101", MinGrade: "DD"}}},
			},
		},
		{
			name:  "space_free_course_code",
			field: "MAT102 MIN DD",
			expected: PrerequisiteExpression{
				{Index: 1, Courses: []CourseRequirement{{Code: "MAT102", MinGrade: "DD"}}},
			},
		},
		{
			name:  "annotation_between_pairs",
			field: "END 441 MIN DD Diğer Şartlar veya END 441E MIN DD",
			expected: PrerequisiteExpression{
				{Index: 1, Courses: []CourseRequirement{
					{Code: "END441", MinGrade: "DD"},
					{Code: "END441E", MinGrade: "DD"},
				}},
			},
		},
		{
			name:     "free_text_only",
			field:    "Bölüm onayı gereklidir",
			expected: PrerequisiteExpression{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := parser.Parse(tc.field)
			if !reflect.DeepEqual(result.Expression, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, result.Expression)
			}
		})
	}
}

// TestGrammarParserAgreesWithSplit runs both parsers over fields where the
// grammar is unambiguous; their expressions must match exactly.
func TestGrammarParserAgreesWithSplit(t *testing.T) {
	grammarParser := NewGrammarParser()
	splitParser := NewSplitParser()

	fields := []string{
		"Yok",
		"",
		"MAT 102 MIN DD",
		"MAT 102 MIN DDveya MAT 102E MIN DD",
		"BLG 102 MIN DD veya BLG 102E MIN DD veya BIL 105E MIN DD",
		"(MAT 281 MIN DD veya MAT 281E MIN DD)ve (BIL 105E MIN DD veya BIL 105 MIN DD)",
		"(FIZ 101 MIN DD)ve(KIM 101 MIN DD)",
		"(MAT 103 MIN DD veya MAT 103E MIN DD)",
	}

	for _, field := range fields {
		grammarResult := grammarParser.Parse(field)
		splitResult := splitParser.Parse(field)
		if !reflect.DeepEqual(grammarResult.Expression, splitResult.Expression) {
			t.Errorf("Parsers disagree on %q: grammar %v, split %v",
				field, grammarResult.Expression, splitResult.Expression)
		}
	}
}

// TestGrammarParserDivergesFromSplit pins the cases where the two parsers
// intentionally differ.
func TestGrammarParserDivergesFromSplit(t *testing.T) {
	grammarParser := NewGrammarParser()
	splitParser := NewSplitParser()

	t.Run("no_trailing_rescan_duplication", func(t *testing.T) {
		field := "(MAT 281 MIN DD veya MAT 281E MIN DD)ve (BIL 105E MIN DD veya BIL 105 MIN DD"

		grammarResult := grammarParser.Parse(field)
		if len(grammarResult.Expression) != 2 {
			t.Errorf("Expected 2 groups from grammar parser, got %d: %v",
				len(grammarResult.Expression), grammarResult.Expression)
		}

		splitResult := splitParser.Parse(field)
		if len(splitResult.Expression) != 3 {
			t.Errorf("Expected 3 groups from split parser, got %d: %v",
				len(splitResult.Expression), splitResult.Expression)
		}
	})

	t.Run("ungrouped_and_keyword", func(t *testing.T) {
		field := "MAT 102 MIN DD ve FIZ 101 MIN DD"

		grammarResult := grammarParser.Parse(field)
		expected := PrerequisiteExpression{
			{Index: 1, Courses: []CourseRequirement{{Code: "MAT102", MinGrade: "DD"}}},
			{Index: 2, Courses: []CourseRequirement{{Code: "FIZ101", MinGrade: "DD"}}},
		}
		if !reflect.DeepEqual(grammarResult.Expression, expected) {
			t.Errorf("Expected %v, got %v", expected, grammarResult.Expression)
		}

		// The split parser sees no group marker and keeps only the first
		// pattern match of the single OR piece.
		splitResult := splitParser.Parse(field)
		if len(splitResult.Expression) != 1 || len(splitResult.Expression[0].Courses) != 1 {
			t.Errorf("Expected a single one-course group from split parser, got %v",
				splitResult.Expression)
		}
	})
}

func TestGrammarParserSkippedFragments(t *testing.T) {
	parser := NewGrammarParser()

	t.Run("free_text_merged", func(t *testing.T) {
		result := parser.Parse("Yok Diğer Şartlar")
		if len(result.Expression) != 0 {
			t.Errorf("Expected empty expression, got %v", result.Expression)
		}
		if len(result.Skipped) != 1 || result.Skipped[0] != "Yok Diğer Şartlar" {
			t.Errorf("Expected skipped [Yok Diğer Şartlar], got %v", result.Skipped)
		}
	})

	t.Run("code_without_grade", func(t *testing.T) {
		result := parser.Parse("(MAT 281 veya MAT 281E MIN DD)")
		expected := PrerequisiteExpression{
			{Index: 1, Courses: []CourseRequirement{{Code: "MAT281E", MinGrade: "DD"}}},
		}
		if !reflect.DeepEqual(result.Expression, expected) {
			t.Errorf("Expected %v, got %v", expected, result.Expression)
		}
		if len(result.Skipped) != 1 || result.Skipped[0] != "MAT281" {
			t.Errorf("Expected skipped [MAT281], got %v", result.Skipped)
		}
	})

	t.Run("well_formed_skips_nothing", func(t *testing.T) {
		result := parser.Parse("MAT 102 MIN DDveya MAT 102E MIN DD")
		if len(result.Skipped) != 0 {
			t.Errorf("Expected no skipped fragments, got %v", result.Skipped)
		}
	})
}
