package charts

import (
	"fmt"
	"image/color"
	"math"

	"golang.org/x/image/colornames"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"product-visualizer/models"
	"product-visualizer/services"
)

const labelWidth = 30

// CreatePriceDistribution draws a box plot and a violin plot of price per category.
func (v *Visualizer) CreatePriceDistribution() error {
	names, groups := groupByFirstAppearance(v.ds.Strings(models.ColCategory), v.ds.Floats(models.ColPrice))

	box := v.newPlot("Price Distribution by Category", "Category", "Price ($)")
	density := v.newPlot("Price Density by Category", "Category", "Price ($)")

	for i, values := range groups {
		b, err := plotter.NewBoxPlot(v.barWidth(len(groups)), float64(i), plotter.Values(values))
		if err != nil {
			return fmt.Errorf("box plot %q: %w", names[i], err)
		}
		b.FillColor = categoryColor(i)
		box.Add(b)

		outline, err := plotter.NewPolygon(violinOutline(values, float64(i), 0.4))
		if err != nil {
			return fmt.Errorf("violin %q: %w", names[i], err)
		}
		outline.Color = categoryColor(i)
		density.Add(outline)
	}

	for _, p := range []*plot.Plot{box, density} {
		p.NominalX(names...)
		rotateXTicks(p)
	}
	return v.saveGrid(FilePriceDistribution, 15*vg.Inch, 6*vg.Inch, [][]*plot.Plot{{box, density}})
}

// CreateRatingAnalysis draws rating against price, coloured by review count,
// with a least-squares trend line and a colour bar.
func (v *Visualizer) CreateRatingAnalysis() error {
	prices := v.ds.Floats(models.ColPrice)
	ratings := v.ds.Floats(models.ColRating)
	reviews := v.ds.Floats(models.ColReviewCount)

	p := v.newPlot("Rating vs Price (Size = Review Count)", "Price ($)", "Rating")
	addGrid(p)

	cm := moreland.Kindlmann()
	lo, hi := floats.Min(reviews), floats.Max(reviews)
	if hi <= lo {
		hi = lo + 1
	}
	cm.SetMin(lo)
	cm.SetMax(hi)

	xys := make(plotter.XYs, len(prices))
	for i := range prices {
		xys[i] = plotter.XY{X: prices[i], Y: ratings[i]}
	}
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}
	glyph := draw.GlyphStyle{Shape: draw.CircleGlyph{}, Radius: vg.Points(4)}
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		gs := glyph
		gs.Color = color.Black
		if c, err := cm.At(reviews[i]); err == nil {
			gs.Color = fade(c, 0.6)
		}
		return gs
	}
	p.Add(scatter)

	line, err := trendLine(prices, ratings)
	if err != nil {
		return fmt.Errorf("trend line: %w", err)
	}
	if line != nil {
		p.Add(line)
	}

	bar := v.newPlot("", "", "Review Count")
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true, Colors: 128})
	bar.HideX()
	bar.Y.Padding = 0

	return v.save(FileRatingVsPrice, 12*vg.Inch, 8*vg.Inch, func(dc draw.Canvas) {
		w := dc.Max.X - dc.Min.X
		titleGap := 2 * vg.Points(v.opts.FontSize+2)
		p.Draw(draw.Crop(dc, 0, -0.14*w, 0, 0))
		bar.Draw(draw.Crop(dc, 0.89*w, 0, 0, -titleGap))
	})
}

// CreateDiscountAnalysis draws the distribution of discounts and discount
// against rating. Rows without a discount are ignored; with none left the
// panels stay empty.
func (v *Visualizer) CreateDiscountAnalysis() error {
	discounts := v.ds.Floats(models.ColDiscount)
	ratings := v.ds.Floats(models.ColRating)

	var values plotter.Values
	var xys plotter.XYs
	for i, d := range discounts {
		if math.IsNaN(d) {
			continue
		}
		values = append(values, d)
		xys = append(xys, plotter.XY{X: d, Y: ratings[i]})
	}

	hist := v.newPlot("", "", "")
	impact := v.newPlot("", "", "")

	if len(values) > 0 {
		hist.Title.Text = "Discount Distribution"
		hist.X.Label.Text = "Discount Percentage"
		hist.Y.Label.Text = "Number of Products"
		h, err := plotter.NewHist(values, v.opts.DiscountBins)
		if err != nil {
			return fmt.Errorf("histogram: %w", err)
		}
		h.FillColor = fade(colornames.Skyblue, 0.7)
		addGrid(hist)
		hist.Add(h)

		impact.Title.Text = "Discount Impact on Ratings"
		impact.X.Label.Text = "Discount (%)"
		impact.Y.Label.Text = "Rating"
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("scatter: %w", err)
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(4)
		s.GlyphStyle.Color = fade(plotutil.Color(0), 0.6)
		addGrid(impact)
		impact.Add(s)
	} else {
		v.logger.Warn("No discounted products, %s will have empty panels", FileDiscountAnalysis)
	}

	return v.saveGrid(FileDiscountAnalysis, 15*vg.Inch, 6*vg.Inch, [][]*plot.Plot{{hist, impact}})
}

type barPanel struct {
	title  string
	yLabel string
	metric models.Metric
	color  color.Color
}

// CreateCategoryComparison draws average price, average rating, total reviews
// and product count per category.
func (v *Visualizer) CreateCategoryComparison() error {
	summaries, err := services.CategorySummaries(v.ds)
	if err != nil {
		return err
	}

	panels := []barPanel{
		{"Average Price by Category", "Price ($)", models.MetricAvgPrice, colornames.Lightcoral},
		{"Average Rating by Category", "Rating", models.MetricAvgRating, colornames.Lightgreen},
		{"Total Reviews by Category", "Review Count", models.MetricTotalReviews, colornames.Lightblue},
		{"Product Count by Category", "Number of Products", models.MetricCount, colornames.Gold},
	}

	plots := make([]*plot.Plot, len(panels))
	for i, pn := range panels {
		plots[i], err = v.summaryBars(pn, summaries)
		if err != nil {
			return err
		}
	}
	return v.saveGrid(FileCategoryComparison, 15*vg.Inch, 10*vg.Inch,
		[][]*plot.Plot{{plots[0], plots[1]}, {plots[2], plots[3]}})
}

// CreateTopProducts draws the best rated products with enough reviews and,
// when the dataset carries a value score, the best value products.
func (v *Visualizer) CreateTopProducts() error {
	reviews := v.ds.Floats(models.ColReviewCount)
	rated := services.TopProducts(v.ds, models.ColRating, v.opts.TopProducts, func(i int) bool {
		return reviews[i] >= v.opts.MinReviews
	})

	left := v.newPlot("", "", "")
	right := v.newPlot("", "", "")

	if len(rated) > 0 {
		left.Title.Text = fmt.Sprintf("Top Rated Products (min %.0f reviews)", v.opts.MinReviews)
		left.X.Label.Text = "Rating"
		if err := v.rankedBars(left, rated, colornames.Lightgreen); err != nil {
			return err
		}
	}

	if v.ds.Has(models.ColValueScore) {
		best := services.TopProducts(v.ds, models.ColValueScore, v.opts.TopProducts, nil)
		if len(best) > 0 {
			right.Title.Text = "Best Value Products"
			right.X.Label.Text = "Value Score"
			if err := v.rankedBars(right, best, colornames.Lightblue); err != nil {
				return err
			}
		}
	}

	return v.saveGrid(FileTopProducts, 16*vg.Inch, 8*vg.Inch, [][]*plot.Plot{{left, right}})
}

// CreateBrandAnalysis draws the top brands by product count, average price,
// average rating and total reviews. Brands are extracted from product names.
func (v *Visualizer) CreateBrandAnalysis() error {
	summaries, err := services.BrandSummaries(v.ds)
	if err != nil {
		return err
	}

	n := v.opts.TopBrands
	panels := []barPanel{
		{fmt.Sprintf("Products per Brand (Top %d)", n), "Number of Products", models.MetricCount, colornames.Lightcoral},
		{fmt.Sprintf("Average Price by Brand (Top %d)", n), "Price ($)", models.MetricAvgPrice, colornames.Lightblue},
		{fmt.Sprintf("Average Rating by Brand (Top %d)", n), "Rating", models.MetricAvgRating, colornames.Lightgreen},
		{fmt.Sprintf("Total Reviews by Brand (Top %d)", n), "Review Count", models.MetricTotalReviews, colornames.Gold},
	}

	plots := make([]*plot.Plot, len(panels))
	for i, pn := range panels {
		plots[i], err = v.summaryBars(pn, services.TopBy(summaries, pn.metric, n))
		if err != nil {
			return err
		}
	}
	return v.saveGrid(FileBrandAnalysis, 15*vg.Inch, 10*vg.Inch,
		[][]*plot.Plot{{plots[0], plots[1]}, {plots[2], plots[3]}})
}

// summaryBars draws one metric of the summaries as vertical bars.
func (v *Visualizer) summaryBars(pn barPanel, summaries []models.GroupSummary) (*plot.Plot, error) {
	p := v.newPlot(pn.title, "", pn.yLabel)
	if len(summaries) == 0 {
		return p, nil
	}

	names := make([]string, len(summaries))
	values := make(plotter.Values, len(summaries))
	for i, s := range summaries {
		names[i] = s.Name
		values[i] = s.Value(pn.metric)
	}

	bars, err := plotter.NewBarChart(values, v.barWidth(len(values)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pn.title, err)
	}
	bars.Color = pn.color
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalX(names...)
	rotateXTicks(p)
	return p, nil
}

// rankedBars draws ranked products as horizontal bars annotated with their price.
func (v *Visualizer) rankedBars(p *plot.Plot, ranked []models.RankedProduct, c color.Color) error {
	values := make(plotter.Values, len(ranked))
	labels := make([]string, len(ranked))
	notes := make([]string, len(ranked))
	at := make(plotter.XYs, len(ranked))
	for i, r := range ranked {
		values[i] = r.Score
		labels[i] = services.TruncateLabel(r.Name, labelWidth)
		notes[i] = fmt.Sprintf("$%.0f", r.Price)
		at[i] = plotter.XY{X: r.Score + 0.05, Y: float64(i)}
	}

	bars, err := plotter.NewBarChart(values, v.barWidth(len(values)))
	if err != nil {
		return fmt.Errorf("%s: %w", p.Title.Text, err)
	}
	bars.Horizontal = true
	bars.Color = c
	bars.LineStyle.Width = 0

	annotations, err := plotter.NewLabels(plotter.XYLabels{XYs: at, Labels: notes})
	if err != nil {
		return fmt.Errorf("%s annotations: %w", p.Title.Text, err)
	}
	for i := range annotations.TextStyle {
		annotations.TextStyle[i].XAlign = draw.XLeft
		annotations.TextStyle[i].YAlign = draw.YCenter
		annotations.TextStyle[i].Font.Size = vg.Points(math.Max(v.opts.FontSize-2, 1))
	}

	p.Add(bars, annotations)
	p.NominalY(labels...)

	// leave room for the price annotations
	if top := floats.Max(values); top > 0 {
		p.X.Max = top * 1.15
	}
	p.X.Min = math.Min(0, floats.Min(values))
	return nil
}

// barWidth narrows bars as the number of groups grows.
func (v *Visualizer) barWidth(n int) vg.Length {
	if n < 1 {
		n = 1
	}
	return vg.Points(math.Max(8, math.Min(40, 360/float64(n))))
}

// groupByFirstAppearance splits values by key, keeping keys in the order they first occur.
func groupByFirstAppearance(keys []string, values []float64) ([]string, [][]float64) {
	index := make(map[string]int)
	var names []string
	var groups [][]float64
	for i, k := range keys {
		j, ok := index[k]
		if !ok {
			j = len(names)
			index[k] = j
			names = append(names, k)
			groups = append(groups, nil)
		}
		groups[j] = append(groups[j], values[i])
	}
	return names, groups
}

// trendLine fits a first-degree polynomial to y over x. It returns nil when x
// has fewer than two distinct values.
func trendLine(x, y []float64) (*plotter.Line, error) {
	if len(x) < 2 || floats.Min(x) == floats.Max(x) {
		return nil, nil
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	lo, hi := floats.Min(x), floats.Max(x)

	line, err := plotter.NewLine(plotter.XYs{
		{X: lo, Y: alpha + beta*lo},
		{X: hi, Y: alpha + beta*hi},
	})
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = fade(colornames.Red, 0.8)
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	return line, nil
}
