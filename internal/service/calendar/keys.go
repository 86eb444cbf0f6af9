package calendar

import (
	"slices"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// SortedKeys возвращает даты карты по возрастанию
func SortedKeys[T any](grouped domain.GroupedByDate[T]) []string {
	keys := make([]string, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// UnifiedSortedKeys объединение дат двух карт без повторов, по возрастанию
func UnifiedSortedKeys[A, B any](a domain.GroupedByDate[A], b domain.GroupedByDate[B]) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	keys := make([]string, 0, len(a)+len(b))
	add := func(key string) {
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	for key := range a {
		add(key)
	}
	for key := range b {
		add(key)
	}

	slices.Sort(keys)
	return keys
}

// UnifiedSortedPastKeys то же, что UnifiedSortedKeys, для прошедших дней.
// Порядок тоже по возрастанию даты.
func UnifiedSortedPastKeys[A, B any](a domain.GroupedByDate[A], b domain.GroupedByDate[B]) []string {
	return UnifiedSortedKeys(a, b)
}
