package charts

import (
	"image/color"
	"math"
	"testing"
)

func TestScottBandwidth(t *testing.T) {
	if bw := scottBandwidth([]float64{5}); bw != 1 {
		t.Errorf("single value: got %v, want 1", bw)
	}
	if bw := scottBandwidth([]float64{3, 3, 3}); bw != 1 {
		t.Errorf("constant values: got %v, want 1", bw)
	}

	values := []float64{1, 2, 3, 4, 5}
	want := math.Sqrt(2.5) * math.Pow(5, -0.2)
	if bw := scottBandwidth(values); math.Abs(bw-want) > 1e-12 {
		t.Errorf("bandwidth: got %v, want %v", bw, want)
	}
}

func TestGaussianKDEPeaksAtData(t *testing.T) {
	d := gaussianKDE([]float64{0}, []float64{-1, 0, 1}, 1)
	if !(d[1] > d[0] && d[1] > d[2]) {
		t.Errorf("density should peak at the data point: %v", d)
	}
	if math.Abs(d[0]-d[2]) > 1e-12 {
		t.Errorf("density should be symmetric: %v", d)
	}
	if want := 1 / math.Sqrt(2*math.Pi); math.Abs(d[1]-want) > 1e-12 {
		t.Errorf("peak: got %v, want %v", d[1], want)
	}
}

func TestViolinOutline(t *testing.T) {
	outline := violinOutline([]float64{10, 12, 12, 14, 30}, 2, 0.4)
	if len(outline) != 2*violinPoints {
		t.Fatalf("points: got %d, want %d", len(outline), 2*violinPoints)
	}

	var widest float64
	for i := 0; i < violinPoints; i++ {
		left := outline[i]
		right := outline[len(outline)-1-i]
		if left.Y != right.Y {
			t.Fatalf("sides should share y at %d: %v vs %v", i, left.Y, right.Y)
		}
		if math.Abs((2-left.X)-(right.X-2)) > 1e-12 {
			t.Fatalf("outline should be symmetric around x=2 at %d", i)
		}
		widest = math.Max(widest, right.X-2)
	}
	if math.Abs(widest-0.4) > 1e-12 {
		t.Errorf("widest half width: got %v, want 0.4", widest)
	}
	if outline[0].Y >= 10 || outline[violinPoints-1].Y <= 30 {
		t.Errorf("outline should extend past the data range: %v..%v", outline[0].Y, outline[violinPoints-1].Y)
	}

	if violinOutline(nil, 0, 0.4) != nil {
		t.Error("empty input should give no outline")
	}
}

func TestTrendLine(t *testing.T) {
	line, err := trendLine([]float64{0, 1, 2, 3}, []float64{1, 3, 5, 7})
	if err != nil {
		t.Fatalf("trendLine: %v", err)
	}
	if line == nil {
		t.Fatal("expected a line")
	}
	first, last := line.XYs[0], line.XYs[len(line.XYs)-1]
	if math.Abs(first.Y-1) > 1e-9 || math.Abs(last.Y-7) > 1e-9 {
		t.Errorf("fit endpoints: got %v and %v, want y=1 and y=7", first, last)
	}

	if line, _ := trendLine([]float64{5, 5}, []float64{1, 2}); line != nil {
		t.Error("no line expected without distinct x values")
	}
}

func TestGroupByFirstAppearance(t *testing.T) {
	names, groups := groupByFirstAppearance(
		[]string{"b", "a", "b", "c"},
		[]float64{1, 2, 3, 4},
	)
	if len(names) != 3 || names[0] != "b" || names[1] != "a" || names[2] != "c" {
		t.Fatalf("names: got %v", names)
	}
	if len(groups[0]) != 2 || groups[0][1] != 3 {
		t.Errorf("groups: got %v", groups)
	}
}

func TestFade(t *testing.T) {
	c := fade(color.RGBA{R: 255, G: 128, B: 0, A: 255}, 0.6)
	n, ok := c.(color.NRGBA)
	if !ok {
		t.Fatalf("fade should return NRGBA, got %T", c)
	}
	if n.R != 255 || n.G != 128 || n.B != 0 || n.A != 153 {
		t.Errorf("fade: got %+v", n)
	}
}
