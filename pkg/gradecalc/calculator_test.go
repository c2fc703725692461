package gradecalc

import (
	"math"
	"testing"
)

func TestDistributePercentages(t *testing.T) {
	cases := []struct {
		name       string
		components []Component
		total      float64
		want       []float64
	}{
		{
			name: "equal_share_when_unset",
			components: []Component{
				{Name: "Vize 1"}, {Name: "Vize 2"}, {Name: "Final"}, {Name: "Quiz"},
			},
			total: 100,
			want:  []float64{25, 25, 25, 25},
		},
		{
			name: "existing_percentages_kept",
			components: []Component{
				{Name: "Vize", Percentage: 30}, {Name: "Final"},
			},
			total: 100,
			want:  []float64{30, 50},
		},
		{
			name: "partial_total",
			components: []Component{
				{Name: "Vize"}, {Name: "Final"}, {Name: "Quiz"},
			},
			total: 90,
			want:  []float64{30, 30, 30},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			calc := &Calculator{Components: tc.components}
			calc.DistributePercentages(tc.total)

			for i, component := range calc.Components {
				if component.Percentage != tc.want[i] {
					t.Errorf("Expected component %d percentage %v, got %v", i, tc.want[i], component.Percentage)
				}
			}
		})
	}
}

func TestDistributePercentagesNoComponents(t *testing.T) {
	calc := &Calculator{}
	// Must not panic on the empty divisor.
	calc.DistributePercentages(100)
}

func TestWeightedGrade(t *testing.T) {
	cases := []struct {
		name       string
		components []Component
		want       float64
	}{
		{
			name: "full_percentage_total",
			components: []Component{
				{Name: "Vize", Score: 40, Percentage: 30},
				{Name: "Final", Score: 60, Percentage: 70},
			},
			want: 54,
		},
		{
			name: "partial_total_rescaled",
			components: []Component{
				{Name: "Vize", Score: 80, Percentage: 40},
			},
			want: 80,
		},
		{
			name: "zero_percentages",
			components: []Component{
				{Name: "Vize", Score: 90},
			},
			want: 0,
		},
		{
			name:       "no_components",
			components: nil,
			want:       0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			calc := &Calculator{Components: tc.components}
			if got := calc.WeightedGrade(); got != tc.want {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestZScores(t *testing.T) {
	calc := &Calculator{Components: []Component{
		{Name: "Vize", Score: 75, Average: 60, StandardDeviation: 10},
		{Name: "Final", Score: 50, Average: 60, StandardDeviation: 20},
		{Name: "Quiz", Score: 80, Average: 70},
	}}

	scores := calc.ZScores()
	if len(scores) != 3 {
		t.Fatalf("Expected 3 z-scores, got %d", len(scores))
	}
	if scores["Vize"] != 1.5 {
		t.Errorf("Expected 1.5, got %v", scores["Vize"])
	}
	if scores["Final"] != -0.5 {
		t.Errorf("Expected -0.5, got %v", scores["Final"])
	}
	// No spread means no standardized score.
	if scores["Quiz"] != 0 {
		t.Errorf("Expected 0, got %v", scores["Quiz"])
	}
}

func TestPercentileRanks(t *testing.T) {
	calc := &Calculator{Components: []Component{
		{Name: "Ortalama", Score: 60, Average: 60, StandardDeviation: 10},
		{Name: "Üstte", Score: 70, Average: 60, StandardDeviation: 10},
		{Name: "Altta", Score: 50, Average: 60, StandardDeviation: 10},
		{Name: "Dağılımsız", Score: 95, Average: 60},
	}}

	ranks := calc.PercentileRanks()

	if ranks["Ortalama"] != 50 {
		t.Errorf("Expected the class average to sit at the median, got %v", ranks["Ortalama"])
	}
	if math.Abs(ranks["Üstte"]-84.1344746068543) > 1e-9 {
		t.Errorf("Expected one sigma above average near 84.13, got %v", ranks["Üstte"])
	}
	if math.Abs(ranks["Altta"]-15.8655253931457) > 1e-9 {
		t.Errorf("Expected one sigma below average near 15.87, got %v", ranks["Altta"])
	}
	if ranks["Dağılımsız"] != 50 {
		t.Errorf("Expected the median default, got %v", ranks["Dağılımsız"])
	}
}

func TestPercentileRanksSymmetry(t *testing.T) {
	calc := &Calculator{Components: []Component{
		{Name: "Üstte", Score: 72, Average: 60, StandardDeviation: 8},
		{Name: "Altta", Score: 48, Average: 60, StandardDeviation: 8},
	}}

	ranks := calc.PercentileRanks()
	if math.Abs(ranks["Üstte"]+ranks["Altta"]-100) > 1e-9 {
		t.Errorf("Expected mirrored scores to sum to 100, got %v and %v", ranks["Üstte"], ranks["Altta"])
	}
}
