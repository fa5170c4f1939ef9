package domain

import (
	"errors"
	"time"
)

// Timeframe selects the dashboard chart window.
type Timeframe string

const (
	TimeframeCurrentMonth Timeframe = "current_month"
	TimeframeLast3Months  Timeframe = "last_3_months"
	TimeframeYearToDate   Timeframe = "year_to_date"
)

var ErrInvalidTimeframe = errors.New("invalid timeframe")

func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(s) {
	case TimeframeCurrentMonth, TimeframeLast3Months, TimeframeYearToDate:
		return Timeframe(s), nil
	}
	return "", ErrInvalidTimeframe
}

// Bucket is one chart point. Period is a day-of-month string for
// current_month and a 3-letter month abbreviation otherwise.
type Bucket struct {
	Period string `json:"period"`
	Deals  int    `json:"deals"`
}

// MonthAbbrev returns the chart label for a month ("Jan".."Dec").
func MonthAbbrev(m time.Month) string {
	return m.String()[:3]
}
