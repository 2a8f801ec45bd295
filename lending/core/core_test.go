package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/catalog"
	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

func Test_DueDateFor_AddsLoanPeriodInCalendarDays(t *testing.T) {
	tests := []struct {
		name     string
		issuedAt time.Time
		want     time.Time
	}{
		{
			name:     "start_of_day",
			issuedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			want:     time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "late_evening",
			issuedAt: time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC),
			want:     time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "across_month_and_year",
			issuedAt: time.Date(2024, 12, 20, 9, 0, 0, 0, time.UTC),
			want:     time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "leap_year",
			issuedAt: time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC),
			want:     time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, core.DueDateFor(tt.issuedAt))
		})
	}
}

func Test_ToIssueDate_DropsTimeOfDay(t *testing.T) {
	assert.Equal(
		t,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		core.ToIssueDate(time.Date(2025, 3, 1, 18, 30, 0, 0, time.UTC)),
	)
}

func Test_DecisionResult(t *testing.T) {
	accepted := core.AcceptedDecision("b1", catalog.DeleteBook("b1"), catalog.DeleteMember("m1"))
	rejected := core.RejectedDecision[string](core.ReasonBookNotFound)

	assert.True(t, accepted.IsAccepted())
	assert.False(t, accepted.IsRejected())
	assert.Len(t, accepted.Mutations, 2)
	assert.Equal(t, "b1", accepted.Payload)
	assert.Empty(t, accepted.Reason)

	assert.True(t, rejected.IsRejected())
	assert.False(t, rejected.IsAccepted())
	assert.Nil(t, rejected.Mutations)
	assert.Empty(t, rejected.Payload)
	assert.Equal(t, "book not found", rejected.Reason)
}
