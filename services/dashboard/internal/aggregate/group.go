package aggregate

import (
	"sort"

	"aijobs/services/dashboard/internal/models"
)

type group[T any] struct {
	key  string
	rows []T
}

// groupBy partitions rows by key, ordered by key ascending. Rows whose key is
// reported missing belong to no group, so empty groups never appear.
func groupBy[T any](rows []T, key func(T) (string, bool)) []group[T] {
	index := make(map[string]int)
	var groups []group[T]
	for _, row := range rows {
		k, ok := key(row)
		if !ok {
			continue
		}
		i, seen := index[k]
		if !seen {
			i = len(groups)
			index[k] = i
			groups = append(groups, group[T]{key: k})
		}
		groups[i].rows = append(groups[i].rows, row)
	}
	sort.Slice(groups, func(a, b int) bool { return groups[a].key < groups[b].key })
	return groups
}

func present(value string) (string, bool) {
	return value, value != ""
}

// withJobID counts the rows that carry a job id.
func withJobID[T any](rows []T, id func(T) string) int {
	n := 0
	for _, row := range rows {
		if id(row) != "" {
			n++
		}
	}
	return n
}

func jobID(j models.EnrichedJobRecord) string { return j.JobID }

func salaries(jobs []models.EnrichedJobRecord) []float64 {
	values := make([]float64, len(jobs))
	for i, job := range jobs {
		values[i] = job.SalaryUSD
	}
	return values
}

func benefits(jobs []models.EnrichedJobRecord) []float64 {
	values := make([]float64, len(jobs))
	for i, job := range jobs {
		values[i] = job.BenefitsScore
	}
	return values
}

func distinct(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}
