package domain

// SupportedTimezones is the closed set of IANA zones the service delivers
// to. Scheduling is bucketed per zone, so adding one is a deliberate
// operational decision, not a data change.
var SupportedTimezones = []string{
	"America/Los_Angeles",
	"America/Denver",
	"America/Chicago",
	"America/New_York",
	"Europe/London",
	"Europe/Paris",
	"Asia/Kolkata",
	"Asia/Tokyo",
	"Australia/Sydney",
}

// timezoneAliases maps the short labels used on the public subscribe form
// to their IANA zones.
var timezoneAliases = map[string]string{
	"pst":  "America/Los_Angeles",
	"mst":  "America/Denver",
	"cst":  "America/Chicago",
	"est":  "America/New_York",
	"gmt":  "Europe/London",
	"cet":  "Europe/Paris",
	"ist":  "Asia/Kolkata",
	"jst":  "Asia/Tokyo",
	"aest": "Australia/Sydney",
}

// NormalizeTimezone resolves tz to a supported IANA zone name. It accepts
// either the IANA name itself or one of the short labels (pst, est, ...).
// Returns an UnsupportedTimezoneError when tz resolves to neither.
func NormalizeTimezone(tz string) (string, error) {
	if iana, ok := timezoneAliases[tz]; ok {
		return iana, nil
	}

	for _, zone := range SupportedTimezones {
		if zone == tz {
			return zone, nil
		}
	}

	return "", NewUnsupportedTimezoneError(tz)
}

// IsSupportedTimezone reports whether tz is one of the supported IANA
// zones or a known short label.
func IsSupportedTimezone(tz string) bool {
	_, err := NormalizeTimezone(tz)
	return err == nil
}
