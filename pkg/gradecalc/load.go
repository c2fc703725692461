package gradecalc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// scoreEntry is one item of the bare score list input form. Pointer fields
// distinguish missing keys from zero values.
type scoreEntry struct {
	Name  *string  `json:"Ad"`
	Score *float64 `json:"Not"`
}

// Load parses exam data from one of two JSON shapes: a bare score list
// ([{"Ad": "Quiz", "Not": 40}, ...]) where statistics default to zero, or a
// document ({"components": [...], "statistics": {...}}) with full
// per-component statistics. List entries missing a name or score are
// skipped.
func Load(data []byte) (*Calculator, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("exam data is empty")
	}

	calc := &Calculator{Components: []Component{}}

	if trimmed[0] == '[' {
		var entries []scoreEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse exam data: %w", err)
		}
		for _, entry := range entries {
			if entry.Name == nil || entry.Score == nil {
				continue
			}
			calc.Components = append(calc.Components, Component{Name: *entry.Name, Score: *entry.Score})
		}
		return calc, nil
	}

	var doc struct {
		Components []Component     `json:"components"`
		Statistics InputStatistics `json:"statistics"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse exam data: %w", err)
	}
	if doc.Components != nil {
		calc.Components = doc.Components
	}
	calc.Statistics = doc.Statistics
	return calc, nil
}

// LoadFile reads and parses an exam data file.
func LoadFile(path string) (*Calculator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read exam data: %w", err)
	}
	return Load(data)
}
