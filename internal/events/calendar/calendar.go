// Package calendar lays out a month as the campus calendar page shows it:
// a row of leading blanks up to the weekday of the 1st (Sunday first),
// followed by one cell per day.
package calendar

import (
	"time"

	"campusconnect/pkg/model"
	"campusconnect/pkg/validation"
)

type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func Of(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) Valid() bool {
	return m.Year >= 1 && m.Year <= 9999 && m.Month >= time.January && m.Month <= time.December
}

func (m Month) first() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Shift moves n months forward (or back when n is negative), carrying into
// the year.
func (m Month) Shift(n int) Month {
	return Of(m.first().AddDate(0, n, 0))
}

func (m Month) DaysIn() int {
	return m.first().AddDate(0, 1, -1).Day()
}

// FirstWeekday is the weekday of the 1st, Sunday = 0.
func (m Month) FirstWeekday() time.Weekday {
	return m.first().Weekday()
}

func (m Month) Date(day int) string {
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.UTC).Format(validation.DateLayout)
}

// Range returns the first and last dates of the month as YYYY-MM-DD.
func (m Month) Range() (string, string) {
	return m.Date(1), m.Date(m.DaysIn())
}

type Day struct {
	Date      string         `json:"date"`
	Day       int            `json:"day"`
	IsToday   bool           `json:"is_today"`
	HasEvents bool           `json:"has_events"`
	Events    []*model.Event `json:"events"`
}

type Grid struct {
	Year          int        `json:"year"`
	Month         time.Month `json:"month"`
	MonthName     string     `json:"month_name"`
	LeadingBlanks int        `json:"leading_blanks"`
	Days          []Day      `json:"days"`
	Previous      Month      `json:"previous"`
	Next          Month      `json:"next"`
}

// Build places events on the days of m. Events outside m are ignored; the
// order of events within a day is preserved.
func Build(m Month, today time.Time, events []*model.Event) *Grid {
	byDate := make(map[string][]*model.Event, len(events))
	for _, e := range events {
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	todayDate := today.Format(validation.DateLayout)
	days := make([]Day, 0, m.DaysIn())
	for d := 1; d <= m.DaysIn(); d++ {
		date := m.Date(d)
		dayEvents := byDate[date]
		if dayEvents == nil {
			dayEvents = []*model.Event{}
		}
		days = append(days, Day{
			Date:      date,
			Day:       d,
			IsToday:   date == todayDate,
			HasEvents: len(dayEvents) > 0,
			Events:    dayEvents,
		})
	}

	return &Grid{
		Year:          m.Year,
		Month:         m.Month,
		MonthName:     m.Month.String(),
		LeadingBlanks: int(m.FirstWeekday()),
		Days:          days,
		Previous:      m.Shift(-1),
		Next:          m.Shift(1),
	}
}
