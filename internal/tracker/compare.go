package tracker

// ShouldAlert reports whether a newly observed price is a drop worth
// alerting on. A drop requires a prior observation and a strictly lower new
// price: the first-ever check for a product has nothing to compare against,
// and equal prices never alert. The comparison is exact, with no tolerance.
// A nil new price means the check failed and is never treated as a drop.
func ShouldAlert(newPrice, previousPrice *float64) bool {
	if newPrice == nil || previousPrice == nil {
		return false
	}
	return *newPrice < *previousPrice
}
