package requirement

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedElective reports a bracketed entry that does not match the
// elective slot shape. Recoverable: callers skip the slot and continue.
var ErrMalformedElective = errors.New("malformed elective slot")

// ElectiveSlot is a "choose one of N" placeholder in a course plan, written
// in the catalog as [<name>(<category>)*(<opt1>|<opt2>|...)]. Category may
// be empty: the catalog also writes slots without a category tag, e.g.
// [English Course I*(ING 101|ING 102)].
type ElectiveSlot struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Options  []string `json:"options"`
}

var (
	electivePattern           = regexp.MustCompile(`^\[(.*?)\s*\((.*?)\)\*\((.*?)\)\]$`)
	electiveNoCategoryPattern = regexp.MustCompile(`^\[(.*?)\s*\*\((.*?)\)\]$`)
)

// ParseElective parses a bracketed elective placeholder. The categorized
// shape is tried first, then the category-less shape. Anything else,
// including a slot with an empty name, fails with ErrMalformedElective.
func ParseElective(text string) (*ElectiveSlot, error) {
	trimmed := strings.TrimSpace(text)

	var slot *ElectiveSlot
	if match := electivePattern.FindStringSubmatch(trimmed); match != nil {
		slot = &ElectiveSlot{
			Name:     strings.TrimSpace(match[1]),
			Category: strings.TrimSpace(match[2]),
			Options:  splitOptions(match[3]),
		}
	} else if match := electiveNoCategoryPattern.FindStringSubmatch(trimmed); match != nil {
		slot = &ElectiveSlot{
			Name:    strings.TrimSpace(match[1]),
			Options: splitOptions(match[2]),
		}
	}
	if slot == nil || slot.Name == "" {
		return nil, fmt.Errorf("%w: %q", ErrMalformedElective, text)
	}
	return slot, nil
}

// String renders the slot back to catalog bracket notation. Parsing the
// rendered form yields an equal slot.
func (s *ElectiveSlot) String() string {
	options := strings.Join(s.Options, "|")
	if s.Category == "" {
		return fmt.Sprintf("[%s*(%s)]", s.Name, options)
	}
	return fmt.Sprintf("[%s (%s)*(%s)]", s.Name, s.Category, options)
}

// splitOptions splits the pipe-delimited option list and trims each entry.
func splitOptions(text string) []string {
	options := strings.Split(text, "|")
	for i := range options {
		options[i] = strings.TrimSpace(options[i])
	}
	return options
}
