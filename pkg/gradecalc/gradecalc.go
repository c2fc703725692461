// Package gradecalc computes weighted final grades and letter grades from
// per-component exam results. Components carry class statistics so grades
// can be assigned either from fixed catalog boundaries or relative to the
// class distribution.
package gradecalc

// Grading methods.
const (
	// MethodCatalog assigns letters from fixed score boundaries.
	MethodCatalog = "catalog"
	// MethodSD assigns letters from the score's distance to the class
	// average in standard deviations.
	MethodSD = "sd_method"
)

// Component is one graded exam component with its class statistics.
type Component struct {
	Name              string  `json:"name"`
	Score             float64 `json:"score"`
	Percentage        float64 `json:"percentage"`
	Average           float64 `json:"average"`
	StandardDeviation float64 `json:"standard_deviation"`
	StudentCount      int     `json:"student_count"`
	Rank              *int    `json:"rank"`
}

// InputStatistics is the optional metadata block of the document input form.
type InputStatistics struct {
	GradingMethod string `json:"grading_method"`
}

// Calculator holds loaded exam components and derives grades from them.
type Calculator struct {
	Components []Component
	Statistics InputStatistics
}

// GradingMethod returns the method named by the input statistics, or the
// catalog method when the input carries none.
func (c *Calculator) GradingMethod() string {
	if c.Statistics.GradingMethod == "" {
		return MethodCatalog
	}
	return c.Statistics.GradingMethod
}
