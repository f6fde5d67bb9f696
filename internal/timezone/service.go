package timezone

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/localtools/localmcp/internal/config"
	"github.com/localtools/localmcp/internal/logging"
	"github.com/localtools/localmcp/pkg/types"
)

// transitionScanLimit bounds the search for the next DST transition.
// Two years of zone boundaries is enough for every tzdb zone that still
// observes DST.
const transitionScanLimit = 10

// Service answers timezone queries against the IANA database compiled
// into the binary or present on the host.
type Service struct {
	cfg     *config.TimeConfig
	log     *logging.Logger
	now     func() time.Time
	catalog *catalog
}

func New(cfg *config.TimeConfig, log *logging.Logger) *Service {
	return &Service{
		cfg:     cfg,
		log:     log,
		now:     time.Now,
		catalog: newCatalog(defaultZoneDirs()),
	}
}

// WithClock replaces the wall clock. Tests use it to pin results.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Current reports the current time in zone, or in the configured default
// zone when zone is empty.
func (s *Service) Current(zone string) (*types.TimeInfo, error) {
	loc, name, err := s.load(zone)
	if err != nil {
		return nil, err
	}

	t := s.now().In(loc)
	abbr, offset := t.Zone()
	_, week := t.ISOWeek()

	return &types.TimeInfo{
		Timezone:         name,
		DateTime:         t.Format(s.cfg.DateTimeLayout),
		Date:             t.Format(s.cfg.DateLayout),
		Time:             t.Format(s.cfg.TimeLayout),
		Timestamp:        float64(t.UnixMilli()) / 1000,
		UTCOffset:        formatOffset(offset),
		UTCOffsetHours:   offsetHours(offset),
		IsDST:            t.IsDST(),
		DayOfWeek:        t.Weekday().String(),
		DayOfYear:        t.YearDay(),
		WeekOfYear:       week,
		ZoneAbbreviation: abbr,
	}, nil
}

// Convert reinterprets value, read as wall-clock time in fromZone, into
// toZone. An empty fromZone or toZone means the configured default zone.
func (s *Service) Convert(value, fromZone, toZone string) (*types.Conversion, error) {
	from, fromName, err := s.load(fromZone)
	if err != nil {
		return nil, err
	}
	to, toName, err := s.load(toZone)
	if err != nil {
		return nil, err
	}

	t, err := s.parseInZone(value, from)
	if err != nil {
		return nil, err
	}
	converted := t.In(to)

	_, fromOffset := t.Zone()
	_, toOffset := converted.Zone()

	return &types.Conversion{
		Original:            s.convertedTime(t, fromName),
		Converted:           s.convertedTime(converted, toName),
		TimeDifferenceHours: offsetHours(toOffset - fromOffset),
	}, nil
}

// Info reports offset, DST state and the next DST transition for zone.
func (s *Service) Info(zone string) (*types.ZoneDetails, error) {
	loc, name, err := s.load(zone)
	if err != nil {
		return nil, err
	}

	t := s.now().In(loc)
	_, offset := t.Zone()

	details := &types.ZoneDetails{
		Timezone:       name,
		Country:        s.catalog.country(name),
		UTCOffset:      formatOffset(offset),
		UTCOffsetHours: offsetHours(offset),
		IsDST:          t.IsDST(),
		CurrentTime:    t.Format(s.cfg.DateTimeLayout),
	}

	std, dst := zoneAbbreviations(t)
	details.StandardAbbreviation = std
	details.DSTAbbreviation = dst

	if next, entering, ok := nextDSTTransition(t); ok {
		details.NextDSTTransition = next.Format(s.cfg.DateTimeLayout)
		if entering {
			details.NextDSTTransitionType = "start"
		} else {
			details.NextDSTTransitionType = "end"
		}
	}

	return details, nil
}

// List enumerates known zone names, optionally filtered by ISO 3166
// country code or by region prefix (the part before the first slash).
// Results are sorted by UTC offset, name breaking ties, and capped at
// the configured maximum after sorting so the cap keeps the westernmost
// zones rather than an alphabetical slice.
func (s *Service) List(country, region string) (*types.ZoneListing, error) {
	names, err := s.catalog.names()
	if err != nil {
		return nil, err
	}

	country = strings.ToUpper(strings.TrimSpace(country))
	region = strings.TrimSpace(region)

	listing := &types.ZoneListing{
		FilterCountry: country,
		FilterRegion:  region,
	}

	now := s.now()
	for _, name := range names {
		if country != "" && !s.catalog.inCountry(name, country) {
			continue
		}
		if region != "" && !strings.EqualFold(zoneRegion(name), region) {
			continue
		}

		loc, err := time.LoadLocation(name)
		if err != nil {
			s.log.Debug("skipping unloadable zone", "zone", name, "error", err)
			continue
		}

		t := now.In(loc)
		abbr, offset := t.Zone()
		listing.Timezones = append(listing.Timezones, types.ZoneSummary{
			Timezone:         name,
			UTCOffset:        formatOffset(offset),
			UTCOffsetHours:   offsetHours(offset),
			IsDST:            t.IsDST(),
			ZoneAbbreviation: abbr,
		})
	}

	sort.SliceStable(listing.Timezones, func(i, j int) bool {
		a, b := listing.Timezones[i], listing.Timezones[j]
		if a.UTCOffsetHours != b.UTCOffsetHours {
			return a.UTCOffsetHours < b.UTCOffsetHours
		}
		return a.Timezone < b.Timezone
	})
	if len(listing.Timezones) > s.cfg.MaxTimezones {
		listing.Timezones = listing.Timezones[:s.cfg.MaxTimezones]
	}

	listing.Count = len(listing.Timezones)
	return listing, nil
}

// DefaultZone returns the configured default zone name.
func (s *Service) DefaultZone() string {
	return s.cfg.DefaultTimezone
}

func (s *Service) load(zone string) (*time.Location, string, error) {
	name := strings.TrimSpace(zone)
	if name == "" {
		name = s.cfg.DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, "", fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, name, nil
}

// parseInZone accepts the configured datetime layout plus a few common
// shapes. A bare time of day is anchored to today's date in loc.
func (s *Service) parseInZone(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, layout := range []string{s.cfg.DateTimeLayout, time.RFC3339, "2006-01-02T15:04:05", s.cfg.DateLayout} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	// Time of day only: anchor to the current date in the source zone.
	for _, layout := range []string{s.cfg.TimeLayout, "15:04"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			today := s.now().In(loc)
			return time.Date(today.Year(), today.Month(), today.Day(),
				t.Hour(), t.Minute(), t.Second(), 0, loc), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time %q, expected %q or a time of day", value, s.cfg.DateTimeLayout)
}

func (s *Service) convertedTime(t time.Time, zone string) types.ConvertedTime {
	abbr, _ := t.Zone()
	return types.ConvertedTime{
		DateTime:         t.Format(s.cfg.DateTimeLayout),
		Timezone:         zone,
		IsDST:            t.IsDST(),
		ZoneAbbreviation: abbr,
	}
}

// nextDSTTransition walks zone boundaries forward from t until the DST
// flag flips. It reports the transition instant and whether DST starts
// there. ok is false for zones with no upcoming transition.
func nextDSTTransition(t time.Time) (next time.Time, entering bool, ok bool) {
	cur := t
	for i := 0; i < transitionScanLimit; i++ {
		_, end := cur.ZoneBounds()
		if end.IsZero() {
			return time.Time{}, false, false
		}
		after := end.In(t.Location())
		if after.IsDST() != cur.IsDST() {
			return after, after.IsDST(), true
		}
		cur = after
	}
	return time.Time{}, false, false
}

// zoneAbbreviations scans a year of boundaries around t and reports the
// standard and daylight abbreviations of its zone. dst is empty for
// zones without DST.
func zoneAbbreviations(t time.Time) (std, dst string) {
	cur := t
	for i := 0; i < transitionScanLimit; i++ {
		abbr, _ := cur.Zone()
		if cur.IsDST() {
			dst = abbr
		} else {
			std = abbr
		}
		if std != "" && dst != "" {
			return std, dst
		}
		_, end := cur.ZoneBounds()
		if end.IsZero() || end.Sub(t) > 2*365*24*time.Hour {
			break
		}
		cur = end.In(t.Location())
	}
	return std, dst
}

// formatOffset renders a UTC offset in seconds as +/-HHMM.
func formatOffset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%02d%02d", sign, seconds/3600, seconds%3600/60)
}

func offsetHours(seconds int) float64 {
	return float64(seconds) / 3600
}

// zoneRegion returns the area component of a zone name, "Australia" for
// "Australia/Melbourne". Names without a slash map to themselves.
func zoneRegion(name string) string {
	if i := strings.IndexByte(name, '/'); i >= 0 {
		return name[:i]
	}
	return name
}
