package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille raster. Each cell also keeps the brightest shade
// plotted into it, so a coloured render can fade faint links.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Shade         [][]float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid to w x h cells and clears it.
func (c *Canvas) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Shade = make([][]float64, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Shade[i] = make([]float64, w)
	}
	c.Clear()
}

// DotsWide and DotsHigh give the canvas size in sub-pixels.
func (c *Canvas) DotsWide() int { return c.Width * 2 }
func (c *Canvas) DotsHigh() int { return c.Height * 4 }

// Set lights the sub-pixel (x, y) at full shade.
func (c *Canvas) Set(x, y int) {
	c.Plot(x, y, 1)
}

// Plot lights the sub-pixel (x, y) and raises the cell shade to at least
// shade. Out-of-range coordinates are ignored.
func (c *Canvas) Plot(x, y int, shade float64) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if shade > c.Shade[row][col] {
		c.Shade[row][col] = shade
	}
}

// Lit reports whether sub-pixel (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Shade[i][j] = 0
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, shade float64) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Plot(x0, y0, shade)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render colours every lit cell by its shade. pal[0] is the faintest
// colour and pal[len-1] full brightness.
func (c *Canvas) Render(pal []lipgloss.Color) string {
	if len(pal) == 0 {
		return c.String()
	}
	styles := make([]lipgloss.Style, len(pal))
	for i, col := range pal {
		styles[i] = lipgloss.NewStyle().Foreground(col)
	}

	var b strings.Builder
	for i, row := range c.Grid {
		run, level := 0, -1
		flush := func(end int) {
			if run < end {
				s := string(row[run:end])
				if level < 0 {
					b.WriteString(s)
				} else {
					b.WriteString(styles[level].Render(s))
				}
			}
			run = end
		}
		for j, r := range row {
			lv := -1
			if r != blank {
				lv = shadeLevel(c.Shade[i][j], len(pal))
			}
			if lv != level {
				flush(j)
				level = lv
			}
		}
		flush(len(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func shadeLevel(shade float64, n int) int {
	lv := int(shade * float64(n))
	return min(max(lv, 0), n-1)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
