package pricing

import (
	"testing"
	"time"

	"rentdesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBillableHours(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected int32
	}{
		{"One minute rounds up to one hour", "2025-12-26T10:00", "2025-12-26T10:01", 1},
		{"Exactly one hour", "2025-12-26T10:00", "2025-12-26T11:00", 1},
		{"One hour one minute", "2025-12-26T10:00", "2025-12-26T11:01", 2},
		{"Two full days", "2025-12-26T10:00", "2025-12-28T10:00", 48},
		{"Cross midnight", "2025-12-26T23:30", "2025-12-27T01:00", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, err := BillableHours(date(tt.start), date(tt.end))
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, hours)
		})
	}

	t.Run("Zero duration rejected", func(t *testing.T) {
		_, err := BillableHours(date("2025-12-26T10:00"), date("2025-12-26T10:00"))
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})

	t.Run("Inverted range rejected", func(t *testing.T) {
		_, err := BillableHours(date("2025-12-26T10:00"), date("2025-12-25T10:00"))
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})
}

func TestPriceLines(t *testing.T) {
	t.Run("Independently priced lines sum correctly", func(t *testing.T) {
		lines := []Line{
			{ProductID: 1, RatePerHour: 1500, Quantity: 2},
			{ProductID: 2, RatePerHour: 250, Quantity: 3},
		}
		priced, total, err := PriceLines(lines, 4)
		assert.NoError(t, err)
		assert.Equal(t, int64(12000), priced[0].Amount) // 1500*4*2
		assert.Equal(t, int64(3000), priced[1].Amount)  // 250*4*3
		assert.Equal(t, int64(15000), total)
	})

	t.Run("Zero rate is allowed", func(t *testing.T) {
		_, total, err := PriceLines([]Line{{RatePerHour: 0, Quantity: 5}}, 10)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("Zero quantity rejected", func(t *testing.T) {
		_, _, err := PriceLines([]Line{{RatePerHour: 100, Quantity: 0}}, 4)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("Negative quantity rejected", func(t *testing.T) {
		_, _, err := PriceLines([]Line{{RatePerHour: 100, Quantity: -1}}, 4)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("Empty selection totals zero", func(t *testing.T) {
		priced, total, err := PriceLines(nil, 4)
		assert.NoError(t, err)
		assert.Empty(t, priced)
		assert.Equal(t, int64(0), total)
	})
}

func TestSplitAdvance(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		percent   int32
		advance   int64
		remaining int64
	}{
		{"Ten percent of 15000", 15000, 10, 1500, 13500},
		{"Rounds half up", 1250, 10, 125, 1125},
		{"Odd split rounds half up", 999, 50, 500, 499},
		{"Zero percent", 15000, 0, 0, 15000},
		{"Full advance", 15000, 100, 15000, 0},
		{"Zero total", 0, 25, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advance, remaining, err := SplitAdvance(tt.total, tt.percent)
			assert.NoError(t, err)
			assert.Equal(t, tt.advance, advance)
			assert.Equal(t, tt.remaining, remaining)
		})
	}

	t.Run("Advance plus remaining equals total exactly", func(t *testing.T) {
		for total := int64(0); total <= 1000; total += 7 {
			for percent := int32(0); percent <= 100; percent += 5 {
				advance, remaining, err := SplitAdvance(total, percent)
				assert.NoError(t, err)
				assert.Equal(t, total, advance+remaining, "total=%d percent=%d", total, percent)
			}
		}
	})

	t.Run("Percent out of range rejected", func(t *testing.T) {
		_, _, err := SplitAdvance(1000, -1)
		assert.ErrorIs(t, err, domain.ErrInvalidPercent)
		_, _, err = SplitAdvance(1000, 101)
		assert.ErrorIs(t, err, domain.ErrInvalidPercent)
	})
}

func TestBuildQuote(t *testing.T) {
	t.Run("Full pipeline", func(t *testing.T) {
		lines := []Line{
			{ProductID: 1, RatePerHour: 1500, Quantity: 2},
			{ProductID: 2, RatePerHour: 250, Quantity: 3},
		}
		q, err := BuildQuote(date("2025-12-26T10:00"), date("2025-12-26T14:00"), lines, 10)
		assert.NoError(t, err)
		assert.Equal(t, int32(4), q.Hours)
		assert.Equal(t, int64(15000), q.TotalAmount)
		assert.Equal(t, int64(1500), q.AdvanceAmount)
		assert.Equal(t, int64(13500), q.RemainingAmount)
		assert.Equal(t, q.TotalAmount, q.AdvanceAmount+q.RemainingAmount)
	})

	t.Run("Date validation runs first", func(t *testing.T) {
		_, err := BuildQuote(date("2025-12-26T10:00"), date("2025-12-26T10:00"), []Line{{Quantity: 0}}, 200)
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})
}
