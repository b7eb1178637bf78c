package charts

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var gridColor = color.Gray{Y: 200}

// newPlot returns a plot with the configured font sizes applied.
func (v *Visualizer) newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	size := vg.Points(v.opts.FontSize)
	p.Title.TextStyle.Font.Size = vg.Points(v.opts.FontSize + 2)
	p.X.Label.TextStyle.Font.Size = size
	p.Y.Label.TextStyle.Font.Size = size
	tick := vg.Points(math.Max(v.opts.FontSize-2, 1))
	p.X.Tick.Label.Font.Size = tick
	p.Y.Tick.Label.Font.Size = tick
	return p
}

func rotateXTicks(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

func addGrid(p *plot.Plot) {
	g := plotter.NewGrid()
	g.Vertical.Color = gridColor
	g.Horizontal.Color = gridColor
	p.Add(g)
}

// categoryColor cycles through a soft palette, one colour per category.
func categoryColor(i int) color.Color {
	return plotutil.SoftColors[i%len(plotutil.SoftColors)]
}

// fade returns c with the given opacity.
func fade(c color.Color, alpha float64) color.Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return color.NRGBA{}
	}
	// un-premultiply before applying the new alpha
	return color.NRGBA{
		R: uint8(r * 0xffff / a >> 8),
		G: uint8(g * 0xffff / a >> 8),
		B: uint8(b * 0xffff / a >> 8),
		A: uint8(math.Round(alpha * 255)),
	}
}

// save renders a figure of w×h inches at the configured DPI and writes it as PNG.
// The canvas and the file are released before save returns.
func (v *Visualizer) save(file string, w, h vg.Length, render func(dc draw.Canvas)) error {
	img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(v.opts.DPI))
	render(draw.New(img))

	path := filepath.Join(v.opts.OutputDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", path, err)
	}

	v.logger.Info("✅ Saved: %s", file)
	return nil
}

// saveGrid lays the plots out as rows×cols tiles with aligned axes.
func (v *Visualizer) saveGrid(file string, w, h vg.Length, grid [][]*plot.Plot) error {
	return v.save(file, w, h, func(dc draw.Canvas) {
		pad := vg.Inch / 4
		t := draw.Tiles{
			Rows:      len(grid),
			Cols:      len(grid[0]),
			PadX:      2 * pad,
			PadY:      2 * pad,
			PadTop:    pad,
			PadBottom: pad,
			PadLeft:   pad,
			PadRight:  pad,
		}

		canvases := plot.Align(grid, t, dc)
		for j := range grid {
			for i := range grid[j] {
				grid[j][i].Draw(canvases[j][i])
			}
		}
	})
}
