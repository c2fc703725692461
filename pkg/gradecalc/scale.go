package gradecalc

import "strings"

// CatalogLetter assigns a letter grade from the fixed catalog boundaries.
func CatalogLetter(grade float64) string {
	switch {
	case grade >= 90:
		return "AA"
	case grade >= 85:
		return "BA"
	case grade >= 80:
		return "BB"
	case grade >= 75:
		return "CB"
	case grade >= 70:
		return "CC"
	case grade >= 65:
		return "DC"
	case grade >= 60:
		return "DD"
	case grade >= 50:
		return "FD"
	default:
		return "FF"
	}
}

// SDLetter assigns a letter grade from the score's distance to the class
// average in standard deviations. Without a positive standard deviation the
// catalog boundaries are used instead.
func SDLetter(grade, average, sd float64) string {
	if sd <= 0 {
		return CatalogLetter(grade)
	}
	z := (grade - average) / sd
	switch {
	case z >= 1.5:
		return "AA"
	case z >= 1.0:
		return "BA"
	case z >= 0.5:
		return "BB"
	case z >= 0.0:
		return "CB"
	case z >= -0.5:
		return "CC"
	case z >= -1.0:
		return "DC"
	case z >= -1.5:
		return "DD"
	case z >= -2.0:
		return "FD"
	default:
		return "FF"
	}
}

// Letter assigns a letter grade using the named method. The SD method needs
// the overall class average and standard deviation; without them it falls
// back to the catalog boundaries.
func Letter(grade float64, method string, average, sd *float64) string {
	if strings.ToLower(method) == MethodSD {
		if average == nil || sd == nil {
			return CatalogLetter(grade)
		}
		return SDLetter(grade, *average, *sd)
	}
	return CatalogLetter(grade)
}
