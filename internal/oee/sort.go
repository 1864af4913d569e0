package oee

import (
	"fmt"
	"sort"
	"strings"
)

// SortField selects the column group tables are ordered by. Sorting is a
// presentation concern; Aggregate itself keeps first-seen order.
type SortField string

const (
	SortOEE        SortField = "oee"
	SortProduction SortField = "production"
	SortKey        SortField = "key"
)

// ParseSortField maps a user-supplied name to a SortField. The empty
// string means the default, OEE.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "oee":
		return SortOEE, nil
	case "production":
		return SortProduction, nil
	case "key":
		return SortKey, nil
	default:
		return "", fmt.Errorf("unknown sort field %q (valid: oee, production, key)", s)
	}
}

// SortMetrics orders ms in place. Undefined OEE sorts after every defined
// value regardless of direction; ties keep their existing order.
func SortMetrics(ms []Metrics, field SortField, descending bool) {
	sort.SliceStable(ms, func(i, j int) bool {
		a, b := ms[i], ms[j]
		switch field {
		case SortProduction:
			if a.ProductionUnits == b.ProductionUnits {
				return false
			}
			return less(a.ProductionUnits < b.ProductionUnits, descending)
		case SortKey:
			if a.Key == b.Key {
				return false
			}
			return less(a.Key < b.Key, descending)
		default:
			switch {
			case a.OEE == nil:
				return false
			case b.OEE == nil:
				return true
			case *a.OEE == *b.OEE:
				return false
			default:
				return less(*a.OEE < *b.OEE, descending)
			}
		}
	})
}

func less(ascLess, descending bool) bool {
	if descending {
		return !ascLess
	}
	return ascLess
}
