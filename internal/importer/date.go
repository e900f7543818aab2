package importer

import (
	"strings"
	"time"
)

var connectedOnLayouts = []string{
	"02 Jan 2006",
	"2 Jan 2006",
	"2006-01-02",
	time.RFC3339,
	"Jan 2, 2006",
	"1/2/2006",
}

// ParseConnectedOn tries every export date layout in turn
// ParseConnectedOn 依次尝试导出文件中出现过的日期格式
func ParseConnectedOn(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range connectedOnLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// isNewer reports whether candidate is strictly later than current.
// Either side failing to parse means it is not newer.
func isNewer(candidate, current string) bool {
	c, ok := ParseConnectedOn(candidate)
	if !ok {
		return false
	}
	p, ok := ParseConnectedOn(current)
	if !ok {
		return false
	}
	return c.After(p)
}
