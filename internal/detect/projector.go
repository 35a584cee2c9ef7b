package detect

// daysPerYear normalizes interval-based costs to a yearly figure.
const daysPerYear = 365.0

// ProjectAnnualCost converts a per-charge amount and mean interval into
// a normalized yearly cost, rounded half-up to cents. The unrounded
// mean interval is used here so the projection doesn't inherit the
// display rounding of IntervalDays.
func ProjectAnnualCost(representativeAmount, meanIntervalDays float64) float64 {
	if meanIntervalDays <= 0 {
		return 0
	}
	return roundCents(representativeAmount * (daysPerYear / meanIntervalDays))
}
