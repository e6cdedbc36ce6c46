// internal/app/system/calendar/calendar.go

// Package calendar owns the denormalized month/year fields and the
// importance color table that back fast month listings.
//
// Months are numbered 0-11 to match the calendar frontend. A meeting is
// listed for month M of the current year when it starts or ends in M; a
// meeting spanning three or more months with neither endpoint in M is
// missed. That approximation is part of the query contract, not a bug.
package calendar

import (
	"fmt"
	"time"

	"github.com/dalemusser/meethub/internal/domain/models"
)

// colors is indexed by importance: 0 high (red), 1 medium (yellow),
// 2 low (green).
var colors = [3]models.Color{
	{Primary: "#ad2121", Secondary: "#FAE3E3"},
	{Primary: "#ffe100", Secondary: "#e2d88c"},
	{Primary: "#028c12", Secondary: "#86ce8e"},
}

// MonthOf returns the 0-11 month number of t.
func MonthOf(t time.Time) int {
	return int(t.Month()) - 1
}

// YearOf returns the calendar year of t.
func YearOf(t time.Time) int {
	return t.Year()
}

// ValidMonth reports whether month is a 0-11 month number.
func ValidMonth(month int) bool {
	return month >= 0 && month <= 11
}

// ValidImportance reports whether importance names a color table entry.
func ValidImportance(importance int) bool {
	return importance >= 0 && importance < len(colors)
}

// ColorFor returns the color pair for an importance level. Callers validate
// importance at the input boundary; an out-of-range value here is a broken
// contract, so it panics rather than returning a zero Color.
func ColorFor(importance int) models.Color {
	if !ValidImportance(importance) {
		panic(fmt.Sprintf("calendar: importance %d out of range", importance))
	}
	return colors[importance]
}
