package variables

import "strings"

// SplitFromEquals splits "name=value" at the first unescaped '=' that is not
// inside a variable. ok is false when there is no such '='.
func SplitFromEquals(s string) (name, value string, ok bool) {
	matches := All(s)
	if len(matches) == 0 && !strings.Contains(s, `\`) {
		name, value, ok = strings.Cut(s, "=")
		if !ok {
			return s, "", false
		}
		return name, value, true
	}
	index := splitIndex(s, matches)
	if index < 0 {
		return s, "", false
	}
	return s[:index], s[index+1:], true
}

func splitIndex(s string, matches []*Match) int {
	start := 0
	for _, m := range matches {
		if i := splitIndexFromPart(s[start : start+m.Start]); i >= 0 {
			return start + i
		}
		start += m.End
	}
	if i := splitIndexFromPart(s[start:]); i >= 0 {
		return start + i
	}
	return -1
}

func splitIndexFromPart(part string) int {
	index := 0
	for {
		i := strings.IndexByte(part[index:], '=')
		if i < 0 {
			return -1
		}
		index += i
		if notEscaped(part, index) {
			return index
		}
		index++
	}
}
