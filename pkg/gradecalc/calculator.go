package gradecalc

import "math"

// DistributePercentages fills in missing component percentages by splitting
// the total equally across all components. Components that already carry a
// percentage keep it.
func (c *Calculator) DistributePercentages(total float64) {
	if len(c.Components) == 0 {
		return
	}
	equal := total / float64(len(c.Components))
	for i := range c.Components {
		if c.Components[i].Percentage == 0 {
			c.Components[i].Percentage = equal
		}
	}
}

// WeightedGrade is the percentage-weighted final grade, rescaled so that
// inputs whose percentages do not sum to 100 still map onto a 0-100 grade.
// Without any positive percentage the grade is 0.
func (c *Calculator) WeightedGrade() float64 {
	weightedSum := 0.0
	totalPercentage := 0.0
	for _, component := range c.Components {
		weightedSum += component.Score * component.Percentage / 100.0
		totalPercentage += component.Percentage
	}
	if totalPercentage <= 0 {
		return 0
	}
	return weightedSum * (100.0 / totalPercentage)
}

// ZScores maps each component name to its standardized score. Components
// without a positive standard deviation score 0.
func (c *Calculator) ZScores() map[string]float64 {
	scores := make(map[string]float64, len(c.Components))
	for _, component := range c.Components {
		scores[component.Name] = zScore(component.Score, component.Average, component.StandardDeviation)
	}
	return scores
}

// PercentileRanks maps each component name to the normal-distribution
// percentile of its score within the class. Components without a positive
// standard deviation default to the median.
func (c *Calculator) PercentileRanks() map[string]float64 {
	ranks := make(map[string]float64, len(c.Components))
	for _, component := range c.Components {
		if component.StandardDeviation <= 0 {
			ranks[component.Name] = 50.0
			continue
		}
		z := zScore(component.Score, component.Average, component.StandardDeviation)
		ranks[component.Name] = 0.5 * (1 + math.Erf(z/math.Sqrt2)) * 100
	}
	return ranks
}

func zScore(score, average, sd float64) float64 {
	if sd <= 0 {
		return 0
	}
	return (score - average) / sd
}
