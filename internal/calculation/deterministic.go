package calculation

import "time"

// nowFunc stamps generated reports (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the report clock (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// seedFunc supplies a seed when a configuration does not pin one.
var seedFunc = func() int64 { return time.Now().UnixNano() % lcgModulus }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }

// ResolveSeed returns the explicit seed when given, otherwise a fresh one.
func ResolveSeed(explicit *int64) int64 {
	if explicit != nil {
		return *explicit
	}
	return seedFunc()
}
