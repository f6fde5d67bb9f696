// Package timezone answers time and timezone queries against the IANA
// timezone database.
//
// # Basic Usage
//
//	svc := timezone.New(cfg, logger)
//	info, err := svc.Current("Asia/Tokyo")
//	conv, err := svc.Convert("2026-03-01 09:00:00", "Australia/Melbourne", "Europe/London")
//
// # Zone Catalog
//
// Listing and country filtering read zone names and ISO 3166 codes from
// the host tzdb (zone1970.tab under /usr/share/zoneinfo). Hosts without
// tzdb files fall back to a built-in list of well-known zones; zone
// loading itself always works because the servers compile in the
// time/tzdata database.
package timezone
