package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"product-visualizer/models"
)

// knownBrands are matched in order against the lower-cased product name.
var knownBrands = []string{"samsung", "apple", "xiaomi", "huawei", "lenovo", "dell", "hp", "asus"}

var titleCaser = cases.Title(language.English)

// SummarizeBy groups the dataset by key and computes mean price, mean rating,
// summed review count and row count per group. Groups come back sorted by name.
func SummarizeBy(ds *Dataset, key string) ([]models.GroupSummary, error) {
	if ds.Empty() {
		return nil, nil
	}
	if !ds.Has(key) {
		return nil, fmt.Errorf("summary: no column %q", key)
	}

	// Group on a synthetic id so that key values gota would re-parse on
	// rebuild ("NA", "true", "12") come back verbatim.
	names, ids := groupIDs(ds.Strings(key))
	groups := ds.WithStrings(groupIDColumn, ids).Frame().GroupBy(groupIDColumn)
	if groups.Err != nil {
		return nil, fmt.Errorf("summary: group by %s: %w", key, groups.Err)
	}
	agg := groups.Aggregation(
		[]dataframe.AggregationType{
			dataframe.Aggregation_MEAN,
			dataframe.Aggregation_MEAN,
			dataframe.Aggregation_SUM,
			dataframe.Aggregation_COUNT,
		},
		[]string{models.ColPrice, models.ColRating, models.ColReviewCount, models.ColProductName},
	)
	if agg.Err != nil {
		return nil, fmt.Errorf("summary: aggregate by %s: %w", key, agg.Err)
	}

	aggIDs := agg.Col(groupIDColumn).Records()
	var cols [4][]float64
	for i, c := range []string{models.ColPrice, models.ColRating, models.ColReviewCount, models.ColProductName} {
		s, err := aggregateColumn(agg, c)
		if err != nil {
			return nil, err
		}
		cols[i] = s.Float()
	}

	out := make([]models.GroupSummary, len(aggIDs))
	for i, id := range aggIDs {
		out[i] = models.GroupSummary{
			Name:         names[id],
			AvgPrice:     cols[0][i],
			AvgRating:    cols[1][i],
			TotalReviews: cols[2][i],
			Count:        int(math.Round(cols[3][i])),
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

const groupIDColumn = "group_id"

// groupIDs assigns each distinct key an id ("g0", "g1", ...) in order of
// first appearance and returns the id-to-key lookup with the per-row ids.
func groupIDs(keys []string) (map[string]string, []string) {
	names := make(map[string]string)
	seen := make(map[string]string)
	ids := make([]string, len(keys))
	for i, k := range keys {
		id, ok := seen[k]
		if !ok {
			id = fmt.Sprintf("g%d", len(seen))
			seen[k] = id
			names[id] = k
		}
		ids[i] = id
	}
	return names, ids
}

// aggregateColumn finds the "<col>_<AGG>" column produced by gota's Aggregation.
func aggregateColumn(df dataframe.DataFrame, col string) (series.Series, error) {
	prefix := col + "_"
	for _, n := range df.Names() {
		if strings.HasPrefix(n, prefix) {
			return df.Col(n), nil
		}
	}
	return series.Series{}, fmt.Errorf("summary: aggregate for %q missing", col)
}

// CategorySummaries summarises by category, ordered by first appearance in the dataset.
func CategorySummaries(ds *Dataset) ([]models.GroupSummary, error) {
	summaries, err := SummarizeBy(ds, models.ColCategory)
	if err != nil {
		return nil, err
	}

	order := make(map[string]int)
	for _, c := range ds.Strings(models.ColCategory) {
		if _, ok := order[c]; !ok {
			order[c] = len(order)
		}
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return order[summaries[i].Name] < order[summaries[j].Name]
	})
	return summaries, nil
}

// ExtractBrand maps a product name to one of the known brands, "Other" when
// none matches and "Unknown" when the name is blank.
func ExtractBrand(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Unknown"
	}
	lower := strings.ToLower(name)
	for _, b := range knownBrands {
		if strings.Contains(lower, b) {
			return titleCaser.String(b)
		}
	}
	return "Other"
}

// WithBrands returns a copy of the dataset with a derived brand column.
func WithBrands(ds *Dataset) *Dataset {
	names := ds.Strings(models.ColProductName)
	brands := make([]string, len(names))
	for i, n := range names {
		brands[i] = ExtractBrand(n)
	}
	return ds.WithStrings(models.ColBrand, brands)
}

// BrandSummaries summarises by extracted brand, sorted by brand name.
func BrandSummaries(ds *Dataset) ([]models.GroupSummary, error) {
	if ds.Empty() {
		return nil, nil
	}
	return SummarizeBy(WithBrands(ds), models.ColBrand)
}

// TopBy returns the n summaries with the largest metric. Ties keep the input order.
func TopBy(summaries []models.GroupSummary, metric models.Metric, n int) []models.GroupSummary {
	out := make([]models.GroupSummary, len(summaries))
	copy(out, summaries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value(metric) > out[j].Value(metric)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// TopProducts returns the n rows with the largest value in col among the rows
// accepted by keep (nil keeps all). NaN values never rank. Ties keep row order.
func TopProducts(ds *Dataset, col string, n int, keep func(i int) bool) []models.RankedProduct {
	if ds.Empty() || !ds.Has(col) {
		return nil
	}

	scores := ds.Floats(col)
	idx := ds.Indices(func(i int) bool {
		if math.IsNaN(scores[i]) {
			return false
		}
		return keep == nil || keep(i)
	})
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })
	if n >= 0 && len(idx) > n {
		idx = idx[:n]
	}

	names := ds.Strings(models.ColProductName)
	categories := ds.Strings(models.ColCategory)
	prices := ds.Floats(models.ColPrice)

	out := make([]models.RankedProduct, len(idx))
	for i, row := range idx {
		out[i] = models.RankedProduct{
			Name:     names[row],
			Category: categories[row],
			Price:    prices[row],
			Score:    scores[row],
		}
	}
	return out
}

// TruncateLabel shortens s to max runes followed by "..." when it is longer than max.
func TruncateLabel(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
