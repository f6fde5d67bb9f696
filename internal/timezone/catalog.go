package timezone

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// catalog enumerates the zone names known to the host tzdb and maps
// them to ISO 3166 country codes via zone1970.tab. Loading is lazy and
// happens once.
type catalog struct {
	dirs []string

	once      sync.Once
	zones     []string
	countries map[string][]string // zone name -> country codes
}

func newCatalog(dirs []string) *catalog {
	return &catalog{dirs: dirs}
}

// defaultZoneDirs mirrors the search order the runtime uses for
// LoadLocation.
func defaultZoneDirs() []string {
	return []string{
		"/usr/share/zoneinfo",
		"/usr/share/lib/zoneinfo",
		"/usr/lib/locale/TZ",
	}
}

func (c *catalog) names() ([]string, error) {
	c.load()
	return c.zones, nil
}

func (c *catalog) country(zone string) string {
	c.load()
	if codes := c.countries[zone]; len(codes) > 0 {
		return codes[0]
	}
	return ""
}

func (c *catalog) inCountry(zone, code string) bool {
	c.load()
	for _, cc := range c.countries[zone] {
		if cc == code {
			return true
		}
	}
	return false
}

func (c *catalog) load() {
	c.once.Do(func() {
		c.countries = map[string][]string{}
		for _, dir := range c.dirs {
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				continue
			}
			c.loadTab(filepath.Join(dir, "zone1970.tab"))
			c.zones = scanZoneDir(dir)
			if len(c.zones) > 0 {
				return
			}
		}
		// No tzdb on disk. LoadLocation still works through the
		// embedded database, so fall back to the tab-file names when
		// present, else a small list of well-known zones.
		if len(c.countries) > 0 {
			for zone := range c.countries {
				c.zones = append(c.zones, zone)
			}
			sort.Strings(c.zones)
			return
		}
		c.zones = fallbackZones()
	})
}

// loadTab parses zone1970.tab lines: country-codes, coordinates, zone
// name, optional comment, tab separated.
func (c *catalog) loadTab(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			continue
		}
		zone := fields[2]
		c.countries[zone] = strings.Split(fields[0], ",")
	}
}

// scanZoneDir walks a zoneinfo tree collecting zone names. Helper files
// and the posix/right duplicates are skipped.
func scanZoneDir(dir string) []string {
	var zones []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path != dir && (name == "posix" || name == "right" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isZoneFileName(name) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}
		zones = append(zones, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(zones)
	return zones
}

// isZoneFileName filters out metadata files living next to compiled
// zones. Zone files start with an uppercase letter and carry no
// extension; zone1970.tab, tzdata.zi, leapseconds and friends do not.
func isZoneFileName(name string) bool {
	if name == "" || strings.ContainsRune(name, '.') {
		return false
	}
	first := name[0]
	return first >= 'A' && first <= 'Z'
}

// fallbackZones keeps listing useful on hosts with no tzdb files at
// all. LoadLocation resolves these through the embedded database.
func fallbackZones() []string {
	return []string{
		"Africa/Cairo",
		"Africa/Johannesburg",
		"Africa/Lagos",
		"America/Chicago",
		"America/Denver",
		"America/Los_Angeles",
		"America/Mexico_City",
		"America/New_York",
		"America/Sao_Paulo",
		"America/Toronto",
		"Asia/Dubai",
		"Asia/Hong_Kong",
		"Asia/Kolkata",
		"Asia/Seoul",
		"Asia/Shanghai",
		"Asia/Singapore",
		"Asia/Tokyo",
		"Australia/Adelaide",
		"Australia/Brisbane",
		"Australia/Melbourne",
		"Australia/Perth",
		"Australia/Sydney",
		"Europe/Amsterdam",
		"Europe/Berlin",
		"Europe/London",
		"Europe/Madrid",
		"Europe/Moscow",
		"Europe/Paris",
		"Europe/Rome",
		"Pacific/Auckland",
		"UTC",
	}
}
