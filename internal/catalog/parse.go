package catalog

import "regexp"

var yearPattern = regexp.MustCompile(`(\d{4})`)

// ParseYear extracts a 4-digit year from a free-form date string. Catalog
// release dates come in several formats ("1998-11-20", "Nov 1998", "1998");
// the first 4-digit run wins. Years outside [1900, 2100] are rejected.
func ParseYear(value string) (int, bool) {
	m := yearPattern.FindString(value)
	if m == "" {
		return 0, false
	}
	year := 0
	for _, r := range m {
		year = year*10 + int(r-'0')
	}
	if year < 1900 || year > 2100 {
		return 0, false
	}
	return year, true
}
