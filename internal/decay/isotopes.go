package decay

// halfLives maps isotope identifiers to half-lives in years.
// Lookup is case-sensitive on the exact identifier string.
var halfLives = map[string]float64{
	"Cs-137": 30.17,
	"Co-60":  5.27,
	"Sr-90":  28.8,
	"H-3":    12.32,
	"C-14":   5730,
	"Pu-239": 24100,
}

// defaultHalfLifeYears is the policy fallback for isotope identifiers
// not present in the reference table.
const defaultHalfLifeYears = 1.0

// HalfLifeYears returns the half-life of an isotope in years.
// Unknown identifiers fall back to one year.
func HalfLifeYears(isotope string) float64 {
	if hl, ok := halfLives[isotope]; ok {
		return hl
	}
	return defaultHalfLifeYears
}
