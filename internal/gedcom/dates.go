package gedcom

import (
	"sort"
	"strconv"
	"strings"
)

// MinimalYear is the year used for unparseable dates when sorting, so that
// undated entries group together at the front.
const MinimalYear = -99999

// FormatDate rewrites the payload of a DATE line into a compact symbolic
// form: "d BC"/"d BCE" becomes "-d", "ABT d"/"EST d"/"CAL d" becomes "~ d",
// "BEF d" becomes "< d", "AFT d" becomes "> d", and the "BET d AND d" /
// "FROM d TO d" ranges become "d -- d". Zero-padded day and year numbers
// lose their padding.
func FormatDate(date string) string {
	date = stripZeroPadding(date)
	if strings.HasPrefix(date, "BET ") && strings.Contains(date, " AND ") {
		parts := strings.SplitN(date[4:], " AND ", 2)
		return FormatDate(parts[0]) + " -- " + FormatDate(parts[1])
	}
	if strings.HasPrefix(date, "FROM ") && strings.Contains(date, " TO ") {
		parts := strings.SplitN(date[5:], " TO ", 2)
		return FormatDate(parts[0]) + " -- " + FormatDate(parts[1])
	}
	if strings.HasSuffix(date, " BC") || strings.HasSuffix(date, " BCE") {
		parts := strings.Split(date, " ")
		year := parts[len(parts)-2]
		if len(parts) > 2 {
			date = strings.Join(parts[:len(parts)-2], " ") + " -" + year
		} else {
			date = "-" + year
		}
	}
	switch {
	case strings.HasPrefix(date, "ABT "),
		strings.HasPrefix(date, "CAL "),
		strings.HasPrefix(date, "EST "):
		date = "~ " + date[4:]
	case strings.HasPrefix(date, "BEF "):
		date = "< " + date[4:]
	case strings.HasPrefix(date, "AFT "):
		date = "> " + date[4:]
	case strings.HasPrefix(date, "FROM "):
		date = date[5:]
	case strings.HasPrefix(date, "TO "):
		date = date[3:]
	}
	return date
}

// ExtractYear returns the year part of a DATE payload, keeping the context
// symbols of FormatDate ("~", "<", ">"). Ranges whose two years differ come
// back as "y1 -- y2". Returns "" when no year is found.
func ExtractYear(date string) string {
	formatted := FormatDate(date)
	if strings.Contains(formatted, " -- ") {
		parts := strings.SplitN(formatted, " -- ", 2)
		first, second := ExtractYear(parts[0]), ExtractYear(parts[1])
		if first == second {
			return first
		}
		return first + " -- " + second
	}
	var numeric []string
	for _, part := range strings.Fields(strings.ReplaceAll(formatted, "/", " ")) {
		if isYearToken(part) {
			numeric = append(numeric, part)
		}
	}
	if len(numeric) == 0 {
		return ""
	}
	// The year is the longest numeric token; on ties the later one wins,
	// which picks the second year of dual-style dates like "1546/1547".
	sort.SliceStable(numeric, func(i, j int) bool {
		return len(numeric[i]) < len(numeric[j])
	})
	year := numeric[len(numeric)-1]
	if strings.Contains(formatted, "~") {
		year = "~ " + year
	}
	if strings.Contains(formatted, "<") {
		year = "< " + year
	}
	if strings.Contains(formatted, ">") {
		year = "> " + year
	}
	return year
}

// ExtractIntYear returns the year of a DATE payload as a number, negative
// for BC dates. A range yields the median of its two years, hence the
// float. ok is false when no year can be extracted.
func ExtractIntYear(date string) (year float64, ok bool) {
	text := ExtractYear(date)
	if strings.Contains(text, " -- ") {
		parts := strings.SplitN(text, " -- ", 2)
		y1, ok1 := ExtractIntYear(parts[0])
		y2, ok2 := ExtractIntYear(parts[1])
		if !ok1 {
			return y2, ok2
		}
		if !ok2 {
			return y1, ok1
		}
		return (y1 + y2) / 2, true
	}
	var digits strings.Builder
	for _, c := range text {
		if (c >= '0' && c <= '9') || c == '-' {
			digits.WriteRune(c)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return float64(n), true
}

// BirthYear returns a sortable birth year for an individual record,
// MinimalYear when the record has no parseable birth date.
func BirthYear(indi *Line) float64 {
	if y, ok := ExtractIntYear(indi.Sub("BIRT").SubPayload("DATE")); ok {
		return y
	}
	return MinimalYear
}

// MarriageYear returns a sortable marriage year for a family record,
// MinimalYear when the record has no parseable marriage date.
func MarriageYear(fam *Line) float64 {
	if y, ok := ExtractIntYear(fam.Sub("MARR").SubPayload("DATE")); ok {
		return y
	}
	return MinimalYear
}

// stripZeroPadding drops the useless zeros prefixing numbers, e.g.
// "01 May 0067" becomes "1 May 67". The last character is never touched so
// a lone "0" survives.
func stripZeroPadding(date string) string {
	k := 0
	for k+1 < len(date) {
		if date[k] != '0' {
			k++
		} else if k == 0 || date[k-1] == ' ' || date[k-1] == '\t' || date[k-1] == '-' {
			date = date[:k] + date[k+1:]
		} else {
			k++
		}
	}
	return date
}

func isYearToken(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
		if s == "" {
			return false
		}
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
