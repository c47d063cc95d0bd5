package calculation

import (
	"sort"

	"github.com/gemelfund/provident-calculator/internal/domain"
	"github.com/gemelfund/provident-calculator/pkg/rateutil"
	"github.com/shopspring/decimal"
)

// CapResolver answers "what is the enforceable annual contribution ceiling
// for year Y" from an externally supplied schedule. It never hardcodes legal
// figures; those change yearly and arrive through the configuration.
type CapResolver struct {
	schedule domain.CapSchedule
	years    []int // known years, ascending
}

// NewCapResolver builds a resolver over a cap schedule.
func NewCapResolver(schedule domain.CapSchedule) *CapResolver {
	years := make([]int, 0, len(schedule.ByYear))
	for y := range schedule.ByYear {
		years = append(years, y)
	}
	sort.Ints(years)
	return &CapResolver{schedule: schedule, years: years}
}

// CapFor resolves the contribution ceiling for a calendar year.
//
// Resolution order:
//  1. Exact table hit.
//  2. Year beyond the table: project from the latest known cap by compounding
//     ProjectionGrowth per year (zero growth carries the cap forward).
//  3. Gap between known years: carry forward the nearest earlier known cap.
//  4. Year before the table: use the earliest known cap unchanged.
//
// An empty table is a *domain.ConfigurationError.
func (r *CapResolver) CapFor(year int) (decimal.Decimal, error) {
	if len(r.years) == 0 {
		return decimal.Zero, &domain.ConfigurationError{Year: year, Reason: "no cap years configured and no projection rule"}
	}
	if cap, ok := r.schedule.ByYear[year]; ok {
		return cap, nil
	}

	earliest, latest := r.years[0], r.years[len(r.years)-1]
	switch {
	case year > latest:
		factor := rateutil.CompoundFactor(r.schedule.ProjectionGrowth, year-latest)
		return r.schedule.ByYear[latest].Mul(factor), nil
	case year < earliest:
		return r.schedule.ByYear[earliest], nil
	default:
		// In-range gap: nearest earlier known year.
		idx := sort.SearchInts(r.years, year) - 1
		return r.schedule.ByYear[r.years[idx]], nil
	}
}
