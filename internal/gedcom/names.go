package gedcom

import "strings"

// FormatName renders the payload of a NAME line for display by dropping
// the slashes that mark the surname.
func FormatName(name string) string {
	return strings.ReplaceAll(name, "/", "")
}

// SplitName splits the payload of a NAME line into its given-name and
// surname parts. The surname is the portion wrapped in slashes; everything
// around it, joined, is the given name. A missing surname yields ("name", "").
func SplitName(name string) (given, surname string) {
	first := strings.IndexByte(name, '/')
	second := -1
	if first >= 0 {
		second = strings.IndexByte(name[first+1:], '/')
		if second >= 0 {
			second += first + 1
		}
	}
	if second == -1 {
		return strings.TrimSpace(name), ""
	}
	// Collapse the space on one side of the surname so "A /B/ C" gives "A C".
	if second+1 < len(name) && name[second+1] == ' ' && first > 0 && name[first-1] == ' ' {
		given = name[:first] + name[second+2:]
	} else {
		given = name[:first] + name[second+1:]
	}
	surname = name[first+1 : second]
	return strings.TrimSpace(given), strings.TrimSpace(surname)
}
