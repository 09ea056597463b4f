package wizard

import "time"

const (
	availableDateCount = 14
	leadTimeDays       = 2
)

// AvailableDates returns the next bookable dates as YYYY-MM-DD strings:
// weekdays only, starting two days out, fourteen in total.
func AvailableDates(now time.Time) []string {
	dates := make([]string, 0, availableDateCount)
	day := now.AddDate(0, 0, leadTimeDays)

	for len(dates) < availableDateCount {
		if day.Weekday() != time.Saturday && day.Weekday() != time.Sunday {
			dates = append(dates, day.Format("2006-01-02"))
		}
		day = day.AddDate(0, 0, 1)
	}

	return dates
}

// TimeSlots returns the half hour consultation slots offered each day.
// The midday gap is lunch.
func TimeSlots() []string {
	return []string{
		"9:00 AM", "9:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
		"1:00 PM", "1:30 PM", "2:00 PM", "2:30 PM",
		"3:00 PM", "3:30 PM", "4:00 PM", "4:30 PM",
	}
}
