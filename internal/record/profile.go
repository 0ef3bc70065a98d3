package record

import (
	"sort"
	"strings"
)

// ParseProfile reads "key: value" lines into a profile map. Lines that do
// not match the shape are skipped.
func ParseProfile(text string) map[string]string {
	entries := map[string]string{}
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ": ")
		if !ok || key == "" || value == "" {
			continue
		}
		entries[key] = value
	}
	return entries
}

// SerializeProfile renders a profile as "key: value" lines with keys in
// sorted order so output is stable.
func SerializeProfile(profile map[string]string) string {
	keys := make([]string, 0, len(profile))
	for k := range profile {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+": "+profile[k])
	}
	return strings.Join(lines, "\n")
}
