package config

import "time"

func timeLocation(name string) (*time.Location, error) {
	return time.LoadLocation(name)
}

// TimeLocation resolves the configured attendance timezone. The name was
// validated at load time so failure here is unreachable.
func (c *AttendanceConfig) TimeLocation() *time.Location {
	loc, err := timeLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
