package gradecalc

import (
	"math"
	"strings"
	"testing"
	"time"
)

func catalogCalculator() *Calculator {
	return &Calculator{
		Components: []Component{
			{Name: "Vize", Score: 40, Percentage: 30},
			{Name: "Final", Score: 60, Percentage: 70},
		},
	}
}

func sdCalculator() *Calculator {
	return &Calculator{
		Components: []Component{
			{Name: "Vize", Score: 70, Percentage: 50, Average: 60, StandardDeviation: 10, StudentCount: 120, Rank: intPtr(12)},
			{Name: "Final", Score: 80, Percentage: 50, Average: 65, StandardDeviation: 20, StudentCount: 118},
		},
		Statistics: InputStatistics{GradingMethod: MethodSD},
	}
}

func TestFinalGradeCatalog(t *testing.T) {
	info := catalogCalculator().FinalGrade(MethodCatalog)

	if info.FinalGrade != 54 {
		t.Errorf("Expected final grade 54, got %v", info.FinalGrade)
	}
	if info.LetterGrade != "FD" {
		t.Errorf("Expected letter FD, got %s", info.LetterGrade)
	}
	if info.GradingMethod != MethodCatalog {
		t.Errorf("Expected grading method %s, got %s", MethodCatalog, info.GradingMethod)
	}
	if info.OverallAverage != nil || info.OverallStandardDeviation != nil {
		t.Error("Expected no overall statistics for the catalog method")
	}
	if len(info.Components) != 2 {
		t.Fatalf("Expected 2 components, got %d", len(info.Components))
	}
	if info.Components[0].Name != "Vize" || info.Components[0].Score != 40 {
		t.Errorf("Unexpected first component: %+v", info.Components[0])
	}
	if info.Components[0].Rank != nil {
		t.Errorf("Expected nil rank, got %v", *info.Components[0].Rank)
	}
}

func TestFinalGradeSDMethod(t *testing.T) {
	info := sdCalculator().FinalGrade(MethodSD)

	if info.FinalGrade != 75 {
		t.Errorf("Expected final grade 75, got %v", info.FinalGrade)
	}
	if info.OverallAverage == nil {
		t.Fatal("Expected an overall average")
	}
	if *info.OverallAverage != 62.5 {
		t.Errorf("Expected overall average 62.5, got %v", *info.OverallAverage)
	}
	if info.OverallStandardDeviation == nil {
		t.Fatal("Expected an overall standard deviation")
	}
	if want := math.Sqrt(250); *info.OverallStandardDeviation != want {
		t.Errorf("Expected overall standard deviation %v, got %v", want, *info.OverallStandardDeviation)
	}
	// z = (75 - 62.5) / sqrt(250) is just above 0.5.
	if info.LetterGrade != "BB" {
		t.Errorf("Expected letter BB, got %s", info.LetterGrade)
	}
	if info.Components[0].Rank == nil || *info.Components[0].Rank != 12 {
		t.Errorf("Expected rank 12 on the first component, got %v", info.Components[0].Rank)
	}
}

func TestFinalGradeSDMethodWithoutWeights(t *testing.T) {
	calc := &Calculator{
		Components: []Component{
			{Name: "Vize", Score: 70, Average: 60, StandardDeviation: 10},
		},
	}
	info := calc.FinalGrade(MethodSD)

	if info.FinalGrade != 0 {
		t.Errorf("Expected final grade 0, got %v", info.FinalGrade)
	}
	if info.OverallAverage != nil || info.OverallStandardDeviation != nil {
		t.Error("Expected no overall statistics without percentage weights")
	}
	if info.LetterGrade != "FF" {
		t.Errorf("Expected catalog fallback FF, got %s", info.LetterGrade)
	}
}

func TestReport(t *testing.T) {
	report, err := sdCalculator().Report()
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	if _, err := time.Parse(time.RFC3339, report.CalculationDate); err != nil {
		t.Errorf("Expected an RFC 3339 calculation date, got %q", report.CalculationDate)
	}
	if report.FinalGradeInfo.FinalGrade != 75 {
		t.Errorf("Expected final grade 75, got %v", report.FinalGradeInfo.FinalGrade)
	}
	if len(report.ComponentAnalysis) != 2 {
		t.Fatalf("Expected 2 analysis entries, got %d", len(report.ComponentAnalysis))
	}

	vize := report.ComponentAnalysis[0]
	if vize.WeightedContribution != 35 {
		t.Errorf("Expected weighted contribution 35, got %v", vize.WeightedContribution)
	}
	if vize.ZScore != 1 {
		t.Errorf("Expected z-score 1, got %v", vize.ZScore)
	}
	if math.Abs(vize.PercentileRank-84.1344746068543) > 1e-9 {
		t.Errorf("Expected percentile 84.13, got %v", vize.PercentileRank)
	}
	if vize.Rank == nil || *vize.Rank != 12 {
		t.Errorf("Expected rank 12, got %v", vize.Rank)
	}
	if vize.StudentCount != 120 {
		t.Errorf("Expected 120 students, got %d", vize.StudentCount)
	}

	final := report.ComponentAnalysis[1]
	if final.WeightedContribution != 40 {
		t.Errorf("Expected weighted contribution 40, got %v", final.WeightedContribution)
	}
	if final.ZScore != 0.75 {
		t.Errorf("Expected z-score 0.75, got %v", final.ZScore)
	}

	stats := report.Statistics
	if stats.TotalComponents != 2 {
		t.Errorf("Expected 2 components, got %d", stats.TotalComponents)
	}
	if stats.TotalPercentage != 100 {
		t.Errorf("Expected total percentage 100, got %v", stats.TotalPercentage)
	}
	if stats.AverageScore != 75 {
		t.Errorf("Expected average score 75, got %v", stats.AverageScore)
	}
	if stats.ScoreRange.Min != 70 || stats.ScoreRange.Max != 80 {
		t.Errorf("Expected score range 70..80, got %v..%v", stats.ScoreRange.Min, stats.ScoreRange.Max)
	}
	if stats.GradingMethod != MethodSD {
		t.Errorf("Expected grading method %s, got %s", MethodSD, stats.GradingMethod)
	}
}

func TestReportNoComponents(t *testing.T) {
	report, err := (&Calculator{}).Report()
	if err == nil {
		t.Fatal("Expected an error for an empty calculator")
	}
	if !strings.Contains(err.Error(), "no exam components loaded") {
		t.Errorf("Unexpected error: %v", err)
	}
	if report != nil {
		t.Error("Expected no report on error")
	}
}

func TestSummary(t *testing.T) {
	summary := catalogCalculator().Summary()

	for _, want := range []string{
		"GRADE CALCULATION SUMMARY",
		"Grading Method: CATALOG",
		"Vize | Score:  40.00 | Percentage:  30.0%",
		"Numerical Grade: 54.00",
		"Letter Grade:    FD",
		"Vize: Z-score = +0.00, Percentile = 50.0%",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("Expected summary to contain %q:\n%s", want, summary)
		}
	}
	if strings.Contains(summary, "Class Average:") {
		t.Error("Expected no class statistics for the catalog method")
	}
}

func TestSummarySDMethod(t *testing.T) {
	summary := sdCalculator().Summary()

	for _, want := range []string{
		"Grading Method: SD_METHOD",
		"Numerical Grade: 75.00",
		"Letter Grade:    BB",
		"Class Average:   62.50",
		"Class StdDev:    15.81",
		"Final: Z-score = +0.75",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("Expected summary to contain %q:\n%s", want, summary)
		}
	}
}

func TestSummaryEmpty(t *testing.T) {
	summary := (&Calculator{}).Summary()
	if summary != "No exam components loaded.\n" {
		t.Errorf("Unexpected summary: %q", summary)
	}
}

func TestReportMarkdown(t *testing.T) {
	report, err := sdCalculator().Report()
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	markdown := report.Markdown()

	for _, want := range []string{
		"# Grade Report",
		"- Grading Method: sd_method",
		"- Final Grade: 75.00 (BB)",
		"- Class Average: 62.50",
		"| Component | Score | Percentage |",
		"| Vize | 70.00 | 50.0% | 35.00 | 60.00 | 10.00 | +1.00 | 84.1% |",
		"- Total Percentage: 100.0%",
		"- Score Range: 70.00 to 80.00",
	} {
		if !strings.Contains(markdown, want) {
			t.Errorf("Expected markdown to contain %q:\n%s", want, markdown)
		}
	}
}

func TestReportMarkdownCatalogOmitsClassStats(t *testing.T) {
	calc := catalogCalculator()
	report, err := calc.Report()
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	markdown := report.Markdown()

	if strings.Contains(markdown, "Class Average:") {
		t.Error("Expected no class statistics for the catalog method")
	}
	if !strings.Contains(markdown, "- Final Grade: 54.00 (FD)") {
		t.Errorf("Expected the catalog final grade line:\n%s", markdown)
	}
}
