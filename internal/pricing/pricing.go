package pricing

import (
	"time"

	"rentdesk-backend/internal/domain"
)

// Line is one priced selection within a quote: a product's hourly rate paired
// with the requested quantity.
type Line struct {
	ProductID   int32
	RatePerHour int64
	Quantity    int32
	Amount      int64
}

// Quote is the itemized result of pricing a selection over a billable
// duration. Amounts are whole currency units; no per-line rounding occurs.
type Quote struct {
	Hours           int32
	Lines           []Line
	TotalAmount     int64
	AdvancePercent  int32
	AdvanceAmount   int64
	RemainingAmount int64
}

// BillableHours converts a start/end timestamp pair into whole billable
// hours: partial hours are billed as full hours, and the minimum charge is
// one hour. An inverted or zero-length range is rejected rather than billed
// as zero.
func BillableHours(start, end time.Time) (int32, error) {
	if !end.After(start) {
		return 0, domain.ErrInvalidDateRange
	}
	d := end.Sub(start)
	hours := int32(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	if hours < 1 {
		hours = 1
	}
	return hours, nil
}

// PriceLines computes rate x hours x quantity for each line and the sum across
// lines. Rates are assumed non-negative; quantities must be positive.
func PriceLines(lines []Line, hours int32) ([]Line, int64, error) {
	priced := make([]Line, len(lines))
	var total int64
	for i, l := range lines {
		if l.Quantity < 1 {
			return nil, 0, domain.ErrInvalidQuantity
		}
		l.Amount = l.RatePerHour * int64(hours) * int64(l.Quantity)
		priced[i] = l
		total += l.Amount
	}
	return priced, total, nil
}

// SplitAdvance divides a total into advance and remaining parts. The advance
// is rounded half-up to the nearest whole currency unit; remaining is derived
// by subtraction so that advance + remaining == total holds exactly.
func SplitAdvance(total int64, percent int32) (advance, remaining int64, err error) {
	if percent < 0 || percent > 100 {
		return 0, 0, domain.ErrInvalidPercent
	}
	advance = (total*int64(percent) + 50) / 100
	remaining = total - advance
	return advance, remaining, nil
}

// BuildQuote runs the full pricing pipeline: duration normalization, line
// pricing, and the advance split.
func BuildQuote(start, end time.Time, lines []Line, advancePercent int32) (*Quote, error) {
	hours, err := BillableHours(start, end)
	if err != nil {
		return nil, err
	}
	priced, total, err := PriceLines(lines, hours)
	if err != nil {
		return nil, err
	}
	advance, remaining, err := SplitAdvance(total, advancePercent)
	if err != nil {
		return nil, err
	}
	return &Quote{
		Hours:           hours,
		Lines:           priced,
		TotalAmount:     total,
		AdvancePercent:  advancePercent,
		AdvanceAmount:   advance,
		RemainingAmount: remaining,
	}, nil
}
