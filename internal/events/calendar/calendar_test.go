package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"campusconnect/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonth_DaysIn(t *testing.T) {
	tests := []struct {
		month Month
		want  int
	}{
		{Month{2025, time.January}, 31},
		{Month{2025, time.February}, 28},
		{Month{2024, time.February}, 29},
		{Month{1900, time.February}, 28},
		{Month{2000, time.February}, 29},
		{Month{2025, time.April}, 30},
		{Month{2025, time.December}, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.month.DaysIn(), "%v", tt.month)
	}
}

func TestMonth_FirstWeekday(t *testing.T) {
	assert.Equal(t, time.Saturday, Month{2025, time.March}.FirstWeekday())
	assert.Equal(t, time.Sunday, Month{2024, time.September}.FirstWeekday())
	assert.Equal(t, time.Wednesday, Month{2025, time.January}.FirstWeekday())
}

func TestMonth_ShiftWrapsYears(t *testing.T) {
	assert.Equal(t, Month{2024, time.December}, Month{2025, time.January}.Shift(-1))
	assert.Equal(t, Month{2026, time.January}, Month{2025, time.December}.Shift(1))
	assert.Equal(t, Month{2025, time.March}, Month{2025, time.March}.Shift(0))
	assert.Equal(t, Month{2023, time.November}, Month{2025, time.March}.Shift(-16))
}

func TestMonth_Valid(t *testing.T) {
	assert.True(t, Month{2025, time.March}.Valid())
	assert.False(t, Month{2025, 0}.Valid())
	assert.False(t, Month{2025, 13}.Valid())
	assert.False(t, Month{0, time.March}.Valid())
}

func TestMonth_Range(t *testing.T) {
	from, to := Month{2024, time.February}.Range()
	assert.Equal(t, "2024-02-01", from)
	assert.Equal(t, "2024-02-29", to)
}

func TestBuild(t *testing.T) {
	events := []*model.Event{
		{ID: "a", Date: "2025-03-05", Time: "09:00"},
		{ID: "b", Date: "2025-03-05", Time: "18:00"},
		{ID: "c", Date: "2025-03-31", Time: "12:00"},
		{ID: "outside", Date: "2025-04-01", Time: "12:00"},
	}
	today := time.Date(2025, time.March, 5, 15, 0, 0, 0, time.Local)

	grid := Build(Month{2025, time.March}, today, events)

	require.Len(t, grid.Days, 31)
	assert.Equal(t, 6, grid.LeadingBlanks)
	assert.Equal(t, "March", grid.MonthName)
	assert.Equal(t, Month{2025, time.February}, grid.Previous)
	assert.Equal(t, Month{2025, time.April}, grid.Next)

	fifth := grid.Days[4]
	assert.Equal(t, "2025-03-05", fifth.Date)
	assert.True(t, fifth.IsToday)
	assert.True(t, fifth.HasEvents)
	require.Len(t, fifth.Events, 2)
	assert.Equal(t, "a", fifth.Events[0].ID)
	assert.Equal(t, "b", fifth.Events[1].ID)

	assert.False(t, grid.Days[0].HasEvents)
	assert.NotNil(t, grid.Days[0].Events)
	assert.False(t, grid.Days[0].IsToday)
	assert.True(t, grid.Days[30].HasEvents)

	for _, d := range grid.Days {
		for _, e := range d.Events {
			assert.NotEqual(t, "outside", e.ID)
		}
	}
}

func TestBuild_TodayOutsideMonth(t *testing.T) {
	grid := Build(Month{2025, time.March}, time.Date(2025, time.April, 5, 0, 0, 0, 0, time.UTC), nil)
	for _, d := range grid.Days {
		assert.False(t, d.IsToday, d.Date)
	}
}

func TestGrid_JSON(t *testing.T) {
	grid := Build(Month{2025, time.January}, time.Time{}, nil)

	data, err := json.Marshal(grid)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"previous":{"year":2024,"month":12}`)
	assert.Contains(t, string(data), `"leading_blanks":3`)
}
