package types

// TimeInfo describes the current wall-clock time in one timezone.
type TimeInfo struct {
	Timezone         string  `json:"timezone"`
	DateTime         string  `json:"datetime"`
	Date             string  `json:"date"`
	Time             string  `json:"time"`
	Timestamp        float64 `json:"timestamp"`
	UTCOffset        string  `json:"utc_offset"` // +/-HHMM
	UTCOffsetHours   float64 `json:"utc_offset_hours"`
	IsDST            bool    `json:"is_dst"`
	DayOfWeek        string  `json:"day_of_week"`
	DayOfYear        int     `json:"day_of_year"`
	WeekOfYear       int     `json:"week_of_year"`
	ZoneAbbreviation string  `json:"timezone_abbreviation"`
}

// ConvertedTime is one side of a timezone conversion.
type ConvertedTime struct {
	DateTime         string `json:"datetime"`
	Timezone         string `json:"timezone"`
	IsDST            bool   `json:"is_dst"`
	ZoneAbbreviation string `json:"timezone_abbreviation"`
}

// Conversion is the result of converting a time between zones.
type Conversion struct {
	Original            ConvertedTime `json:"original"`
	Converted           ConvertedTime `json:"converted"`
	TimeDifferenceHours float64       `json:"time_difference_hours"`
}

// ZoneDetails carries detailed information about one timezone.
type ZoneDetails struct {
	Timezone              string  `json:"timezone"`
	Country               string  `json:"country,omitempty"`
	UTCOffset             string  `json:"utc_offset"`
	UTCOffsetHours        float64 `json:"utc_offset_hours"`
	IsDST                 bool    `json:"is_dst"`
	DSTAbbreviation       string  `json:"dst_abbreviation,omitempty"`
	StandardAbbreviation  string  `json:"standard_abbreviation,omitempty"`
	NextDSTTransition     string  `json:"next_dst_transition,omitempty"`
	NextDSTTransitionType string  `json:"next_dst_transition_type,omitempty"` // start or end
	CurrentTime           string  `json:"current_time"`
}

// ZoneSummary is one row of a timezone listing.
type ZoneSummary struct {
	Timezone         string  `json:"timezone"`
	UTCOffset        string  `json:"utc_offset"`
	UTCOffsetHours   float64 `json:"utc_offset_hours"`
	IsDST            bool    `json:"is_dst"`
	ZoneAbbreviation string  `json:"abbreviation"`
}

// ZoneListing is the result of listing timezones with optional filters.
type ZoneListing struct {
	Timezones     []ZoneSummary `json:"timezones"`
	Count         int           `json:"count"`
	FilterCountry string        `json:"filter_country,omitempty"`
	FilterRegion  string        `json:"filter_region,omitempty"`
}
