package detect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/subwatch/internal/model"
)

func charge(date string, amount float64) model.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return model.Transaction{
		Date:        d,
		Description: "TEST MERCHANT",
		Amount:      amount,
	}
}

func TestExtractIntervals(t *testing.T) {
	tests := []struct {
		name    string
		charges []model.Transaction
		want    []int
	}{
		{
			name: "monthly cadence",
			charges: []model.Transaction{
				charge("2024-01-01", -9.99),
				charge("2024-02-01", -9.99),
				charge("2024-03-03", -9.99),
			},
			want: []int{31, 31},
		},
		{
			name: "unsorted input is ordered first",
			charges: []model.Transaction{
				charge("2024-03-01", -5),
				charge("2024-01-01", -5),
				charge("2024-02-01", -5),
			},
			want: []int{31, 29},
		},
		{
			name: "same-day charges yield a zero gap",
			charges: []model.Transaction{
				charge("2024-01-01", -5),
				charge("2024-01-01", -5),
				charge("2024-01-08", -5),
			},
			want: []int{0, 7},
		},
		{
			name:    "single charge",
			charges: []model.Transaction{charge("2024-01-01", -5)},
			want:    nil,
		},
		{
			name:    "empty cluster",
			charges: nil,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractIntervals(tt.charges))
		})
	}
}

func TestExtractIntervals_TimeOfDayIgnored(t *testing.T) {
	late := charge("2024-01-01", -5)
	late.Date = late.Date.Add(23 * time.Hour)
	early := charge("2024-02-01", -5)

	assert.Equal(t, []int{31}, ExtractIntervals([]model.Transaction{late, early}))
}

func TestSortChargesByDate_Stable(t *testing.T) {
	a := charge("2024-01-01", -1)
	a.ID = "first"
	b := charge("2024-01-01", -2)
	b.ID = "second"

	sorted := SortChargesByDate([]model.Transaction{a, b})
	assert.Equal(t, "first", sorted[0].ID)
	assert.Equal(t, "second", sorted[1].ID)
}
