package timezone

import "time"

// Location is the league timezone. Week boundaries reported by the league
// are calendar dates, they only become instants once placed in a location.
var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/Los_Angeles")
	if err != nil {
		panic(err)
	}
}

// SetLocation replaces the league timezone, an empty name keeps the current one.
func SetLocation(name string) error {
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	Location = loc
	return nil
}

// force timezone to be in the league's location because the machine running
// the export may not be, which will shift dates derived from
// <time.Time>.Year()/Month()/Day()
func Now() time.Time {
	return time.Now().In(Location)
}

// ParseDate parses a YYYY-MM-DD calendar date at midnight in the league timezone.
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, date, Location)
}
