package campaign

import "sort"

// sortedKeys returns a string-keyed map's keys in ascending order so that
// iteration over game state is deterministic.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
