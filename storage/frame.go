package storage

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"product-visualizer/models"
)

// nanValues are the cells gota should treat as missing.
var nanValues = []string{"", "NA", "NaN", "nan", "null", "NULL", "<nil>"}

func columnTypes() map[string]series.Type {
	types := map[string]series.Type{
		models.ColProductName:    series.String,
		models.ColCategory:       series.String,
		models.ColCategorySource: series.String,
	}
	for _, c := range models.NumericColumns {
		types[c] = series.Float
	}
	return types
}

// normaliseFrame aliases category_source to category and checks the required columns.
func normaliseFrame(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, fmt.Errorf("storage: build frame: %w", df.Err)
	}

	names := df.Names()
	if !hasColumn(names, models.ColCategory) && hasColumn(names, models.ColCategorySource) {
		df = df.Rename(models.ColCategory, models.ColCategorySource)
		if df.Err != nil {
			return df, fmt.Errorf("storage: rename %s: %w", models.ColCategorySource, df.Err)
		}
		names = df.Names()
	}

	var missing []string
	for _, c := range models.RequiredColumns {
		if !hasColumn(names, c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return df, fmt.Errorf("storage: missing required columns: %s", strings.Join(missing, ", "))
	}
	return df, nil
}

func hasColumn(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
