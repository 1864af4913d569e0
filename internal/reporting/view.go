package reporting

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/fabmetrics/oee/internal/oee"
)

// ViewKind identifies one kind of report section.
type ViewKind string

const (
	ViewOverall ViewKind = "overall"
	ViewGroups  ViewKind = "groups"
	ViewTrend   ViewKind = "trend"
	ViewRecords ViewKind = "records"
)

// ViewSpec selects one section of a report. Params carries the
// kind-specific options (by, sort, order, limit, title) exactly as they
// appear in the config file.
type ViewSpec struct {
	Kind   string
	Params map[string]any
}

// DefaultViews is the standard dashboard layout: the overall KPI row,
// machine and product tables, and the monthly trend.
func DefaultViews() []ViewSpec {
	return []ViewSpec{
		{Kind: string(ViewOverall)},
		{Kind: string(ViewGroups), Params: map[string]any{"by": "machine"}},
		{Kind: string(ViewGroups), Params: map[string]any{"by": "product"}},
		{Kind: string(ViewTrend)},
	}
}

// groupsView is the resolved form of a "groups" view.
type groupsView struct {
	title string
	by    oee.Dimension
	sort  oee.SortField
	desc  bool
	limit int
}

// trendView is the resolved form of a "trend" view. Trends are always
// chronological; limit keeps the most recent periods.
type trendView struct {
	title string
	by    oee.Dimension
	limit int
}

func resolveGroupsView(params map[string]any) (*groupsView, error) {
	var raw struct {
		Title string `mapstructure:"title"`
		By    string `mapstructure:"by"`
		Sort  string `mapstructure:"sort"`
		Order string `mapstructure:"order"`
		Limit int    `mapstructure:"limit"`
	}
	if err := mapstructure.Decode(params, &raw); err != nil {
		return nil, fmt.Errorf("invalid groups view options: %w", err)
	}

	if raw.By == "" {
		raw.By = string(oee.DimensionMachine)
	}
	by, err := oee.ParseDimension(raw.By)
	if err != nil {
		return nil, err
	}

	field, err := oee.ParseSortField(raw.Sort)
	if err != nil {
		return nil, err
	}

	desc, err := descending(raw.Order, field == oee.SortOEE || field == oee.SortProduction)
	if err != nil {
		return nil, err
	}

	if raw.Limit < 0 {
		return nil, fmt.Errorf("groups view limit must not be negative, got %d", raw.Limit)
	}

	return &groupsView{
		title: raw.Title,
		by:    by,
		sort:  field,
		desc:  desc,
		limit: raw.Limit,
	}, nil
}

func resolveTrendView(params map[string]any) (*trendView, error) {
	var raw struct {
		Title string `mapstructure:"title"`
		By    string `mapstructure:"by"`
		Limit int    `mapstructure:"limit"`
	}
	if err := mapstructure.Decode(params, &raw); err != nil {
		return nil, fmt.Errorf("invalid trend view options: %w", err)
	}

	if raw.By == "" {
		raw.By = string(oee.DimensionMonth)
	}
	by, err := oee.ParseDimension(raw.By)
	if err != nil {
		return nil, err
	}
	if by != oee.DimensionDate && by != oee.DimensionMonth {
		return nil, fmt.Errorf("trend view supports date or month, got %q", by)
	}

	if raw.Limit < 0 {
		return nil, fmt.Errorf("trend view limit must not be negative, got %d", raw.Limit)
	}

	return &trendView{title: raw.Title, by: by, limit: raw.Limit}, nil
}

func resolveTitleOnly(kind string, params map[string]any) (title string, limit int, err error) {
	var raw struct {
		Title string `mapstructure:"title"`
		Limit int    `mapstructure:"limit"`
	}
	if err := mapstructure.Decode(params, &raw); err != nil {
		return "", 0, fmt.Errorf("invalid %s view options: %w", kind, err)
	}
	if raw.Limit < 0 {
		return "", 0, fmt.Errorf("%s view limit must not be negative, got %d", kind, raw.Limit)
	}
	return raw.Title, raw.Limit, nil
}

// descending maps an "asc"/"desc" option to a direction flag. Metric
// sorts default to descending, key sorts to ascending.
func descending(order string, metricSort bool) (bool, error) {
	switch order {
	case "":
		return metricSort, nil
	case "asc":
		return false, nil
	case "desc":
		return true, nil
	default:
		return false, fmt.Errorf("unknown sort order %q (valid: asc, desc)", order)
	}
}
