package gradecalc

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// GradeComponent is a component as it appears in final grade output, which
// leaves out the student count.
type GradeComponent struct {
	Name              string  `json:"name"`
	Score             float64 `json:"score"`
	Percentage        float64 `json:"percentage"`
	Average           float64 `json:"average"`
	StandardDeviation float64 `json:"standard_deviation"`
	Rank              *int    `json:"rank"`
}

// FinalGradeInfo is the outcome of a final grade calculation. The overall
// class statistics are null unless the SD method derived them.
type FinalGradeInfo struct {
	FinalGrade               float64          `json:"final_grade"`
	LetterGrade              string           `json:"letter_grade"`
	GradingMethod            string           `json:"grading_method"`
	OverallAverage           *float64         `json:"overall_average"`
	OverallStandardDeviation *float64         `json:"overall_standard_deviation"`
	Components               []GradeComponent `json:"components"`
}

// FinalGrade computes the weighted grade and its letter for a method. For
// the SD method the overall class average and standard deviation are
// derived as percentage-weighted combinations of the per-component
// statistics.
func (c *Calculator) FinalGrade(method string) FinalGradeInfo {
	finalGrade := c.WeightedGrade()

	var overallAverage, overallSD *float64
	if strings.ToLower(method) == MethodSD && len(c.Components) > 0 {
		totalWeight := 0.0
		for _, component := range c.Components {
			totalWeight += component.Percentage
		}
		if totalWeight > 0 {
			average := 0.0
			variance := 0.0
			for _, component := range c.Components {
				average += component.Average * component.Percentage
				variance += component.StandardDeviation * component.StandardDeviation * component.Percentage
			}
			average /= totalWeight
			sd := math.Sqrt(variance / totalWeight)
			overallAverage = &average
			overallSD = &sd
		}
	}

	info := FinalGradeInfo{
		FinalGrade:               finalGrade,
		LetterGrade:              Letter(finalGrade, method, overallAverage, overallSD),
		GradingMethod:            method,
		OverallAverage:           overallAverage,
		OverallStandardDeviation: overallSD,
		Components:               make([]GradeComponent, len(c.Components)),
	}
	for i, component := range c.Components {
		info.Components[i] = GradeComponent{
			Name:              component.Name,
			Score:             component.Score,
			Percentage:        component.Percentage,
			Average:           component.Average,
			StandardDeviation: component.StandardDeviation,
			Rank:              component.Rank,
		}
	}
	return info
}

// ComponentAnalysis is the per-component section of a detailed report.
type ComponentAnalysis struct {
	Name                 string  `json:"name"`
	Score                float64 `json:"score"`
	Percentage           float64 `json:"percentage"`
	WeightedContribution float64 `json:"weighted_contribution"`
	Average              float64 `json:"average"`
	StandardDeviation    float64 `json:"standard_deviation"`
	ZScore               float64 `json:"z_score"`
	PercentileRank       float64 `json:"percentile_rank"`
	Rank                 *int    `json:"rank"`
	StudentCount         int     `json:"student_count"`
}

// ScoreRange is the span of component scores.
type ScoreRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ReportStatistics summarizes the components of a report.
type ReportStatistics struct {
	TotalComponents int        `json:"total_components"`
	TotalPercentage float64    `json:"total_percentage"`
	AverageScore    float64    `json:"average_score"`
	ScoreRange      ScoreRange `json:"score_range"`
	GradingMethod   string     `json:"grading_method"`
}

// GradeReport is the full calculation output.
type GradeReport struct {
	CalculationDate   string              `json:"calculation_date"`
	FinalGradeInfo    FinalGradeInfo      `json:"final_grade_info"`
	ComponentAnalysis []ComponentAnalysis `json:"component_analysis"`
	Statistics        ReportStatistics    `json:"statistics"`
}

// Report builds the detailed report using the grading method carried by the
// input statistics. At least one component must be loaded.
func (c *Calculator) Report() (*GradeReport, error) {
	if len(c.Components) == 0 {
		return nil, fmt.Errorf("no exam components loaded")
	}

	method := c.GradingMethod()
	zScores := c.ZScores()
	percentiles := c.PercentileRanks()

	report := &GradeReport{
		CalculationDate:   time.Now().Format(time.RFC3339),
		FinalGradeInfo:    c.FinalGrade(method),
		ComponentAnalysis: make([]ComponentAnalysis, len(c.Components)),
	}

	totalPercentage := 0.0
	totalScore := 0.0
	minScore := c.Components[0].Score
	maxScore := c.Components[0].Score
	for i, component := range c.Components {
		totalPercentage += component.Percentage
		totalScore += component.Score
		if component.Score < minScore {
			minScore = component.Score
		}
		if component.Score > maxScore {
			maxScore = component.Score
		}
		report.ComponentAnalysis[i] = ComponentAnalysis{
			Name:                 component.Name,
			Score:                component.Score,
			Percentage:           component.Percentage,
			WeightedContribution: component.Score * component.Percentage / 100.0,
			Average:              component.Average,
			StandardDeviation:    component.StandardDeviation,
			ZScore:               zScores[component.Name],
			PercentileRank:       percentiles[component.Name],
			Rank:                 component.Rank,
			StudentCount:         component.StudentCount,
		}
	}

	report.Statistics = ReportStatistics{
		TotalComponents: len(c.Components),
		TotalPercentage: totalPercentage,
		AverageScore:    totalScore / float64(len(c.Components)),
		ScoreRange:      ScoreRange{Min: minScore, Max: maxScore},
		GradingMethod:   method,
	}
	return report, nil
}

// Markdown renders the report as a markdown summary with one table row per
// component.
func (r *GradeReport) Markdown() string {
	var builder strings.Builder

	info := r.FinalGradeInfo
	builder.WriteString("# Grade Report\n\n")
	builder.WriteString(fmt.Sprintf("- Calculated: %s\n", r.CalculationDate))
	builder.WriteString(fmt.Sprintf("- Grading Method: %s\n", info.GradingMethod))
	builder.WriteString(fmt.Sprintf("- Final Grade: %.2f (%s)\n", info.FinalGrade, info.LetterGrade))
	if info.OverallAverage != nil && info.OverallStandardDeviation != nil {
		builder.WriteString(fmt.Sprintf("- Class Average: %.2f\n", *info.OverallAverage))
		builder.WriteString(fmt.Sprintf("- Class StdDev: %.2f\n", *info.OverallStandardDeviation))
	}

	builder.WriteString("\n| Component | Score | Percentage | Contribution | Avg | StdDev | Z-Score | Percentile |\n")
	builder.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, analysis := range r.ComponentAnalysis {
		builder.WriteString(fmt.Sprintf("| %s | %.2f | %.1f%% | %.2f | %.2f | %.2f | %+.2f | %.1f%% |\n",
			analysis.Name, analysis.Score, analysis.Percentage, analysis.WeightedContribution,
			analysis.Average, analysis.StandardDeviation, analysis.ZScore, analysis.PercentileRank))
	}

	stats := r.Statistics
	builder.WriteString(fmt.Sprintf("\n- Components: %d\n", stats.TotalComponents))
	builder.WriteString(fmt.Sprintf("- Total Percentage: %.1f%%\n", stats.TotalPercentage))
	builder.WriteString(fmt.Sprintf("- Average Score: %.2f\n", stats.AverageScore))
	builder.WriteString(fmt.Sprintf("- Score Range: %.2f to %.2f\n", stats.ScoreRange.Min, stats.ScoreRange.Max))

	return builder.String()
}

// Summary renders the calculation as plain text for terminal output.
func (c *Calculator) Summary() string {
	var b strings.Builder

	if len(c.Components) == 0 {
		b.WriteString("No exam components loaded.\n")
		return b.String()
	}

	method := c.GradingMethod()
	rule := strings.Repeat("=", 50)
	divider := strings.Repeat("-", 30)

	b.WriteString(rule + "\n")
	b.WriteString("GRADE CALCULATION SUMMARY\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Grading Method: %s\n", strings.ToUpper(method))

	b.WriteString("\nExam Components:\n")
	b.WriteString(divider + "\n")
	for _, component := range c.Components {
		fmt.Fprintf(&b, "%-2s | Score: %6.2f | Percentage: %5.1f%% | Avg: %6.2f | StdDev: %6.2f\n",
			component.Name, component.Score, component.Percentage, component.Average, component.StandardDeviation)
	}

	info := c.FinalGrade(method)
	b.WriteString("\nFinal Grade:\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Numerical Grade: %.2f\n", info.FinalGrade)
	fmt.Fprintf(&b, "Letter Grade:    %s\n", info.LetterGrade)
	if strings.ToLower(method) == MethodSD {
		fmt.Fprintf(&b, "Class Average:   %.2f\n", floatOrZero(info.OverallAverage))
		fmt.Fprintf(&b, "Class StdDev:    %.2f\n", floatOrZero(info.OverallStandardDeviation))
	}

	zScores := c.ZScores()
	percentiles := c.PercentileRanks()
	b.WriteString("\nComponent Analysis:\n")
	b.WriteString(divider + "\n")
	for _, component := range c.Components {
		fmt.Fprintf(&b, "%s: Z-score = %+.2f, Percentile = %.1f%%\n",
			component.Name, zScores[component.Name], percentiles[component.Name])
	}

	return b.String()
}

func floatOrZero(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
