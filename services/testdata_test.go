package services

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"product-visualizer/models"
)

var nan = math.NaN()

func sampleDataset() *Dataset {
	return NewDataset(dataframe.New(
		series.New([]string{
			"Samsung Galaxy S23",
			"Apple iPhone 15",
			"Dell XPS 13",
			"HP Pavilion 15",
			"Xiaomi Redmi Note 12",
			"USB-C Cable",
		}, series.String, models.ColProductName),
		series.New([]string{"phones", "phones", "laptops", "laptops", "phones", "accessories"}, series.String, models.ColCategory),
		series.New([]float64{800, 1000, 1200, 600, 200, 10}, series.Float, models.ColPrice),
		series.New([]float64{4.6, 4.8, 4.4, 4.0, 4.8, 3.5}, series.Float, models.ColRating),
		series.New([]float64{150, 300, 40, 12, 90, 5}, series.Float, models.ColReviewCount),
		series.New([]float64{10, nan, 5, nan, 20, nan}, series.Float, models.ColDiscount),
	))
}
