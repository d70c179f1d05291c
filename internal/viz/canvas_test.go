package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(1, 3)
	if got := c.Grid[0][0]; got != 0x2800|0x1|0x80 {
		t.Errorf("cell = %#x", got)
	}
	if c.Grid[0][1] != blank {
		t.Error("neighbour cell touched")
	}
	if !c.Lit(1, 3) || c.Lit(0, 1) {
		t.Error("Lit disagrees with Set")
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 8}, {100, 100}} {
		c.Set(p[0], p[1])
	}
	if strings.Trim(c.String(), "⠀\n") != "" {
		t.Errorf("canvas not blank:\n%s", c.String())
	}
}

func TestCanvasShadeKeepsMax(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Plot(0, 0, 0.2)
	c.Plot(1, 1, 0.8)
	c.Plot(0, 2, 0.5)
	if c.Shade[0][0] != 0.8 {
		t.Errorf("shade = %v", c.Shade[0][0])
	}
	c.Clear()
	if c.Shade[0][0] != 0 || c.Grid[0][0] != blank {
		t.Error("Clear kept state")
	}
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"horizontal", 0, 0, 7, 0, 8},
		{"vertical", 0, 0, 0, 7, 8},
		{"diagonal", 0, 0, 7, 7, 8},
		{"reversed", 7, 7, 0, 0, 8},
		{"point", 3, 3, 3, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(4, 2)
			c.DrawLine(tt.x0, tt.y0, tt.x1, tt.y1, 1)
			if got := countLit(c); got != tt.want {
				t.Errorf("lit = %d, want %d", got, tt.want)
			}
			if !c.Lit(tt.x0, tt.y0) || !c.Lit(tt.x1, tt.y1) {
				t.Error("endpoints not lit")
			}
		})
	}
}

func TestCanvasResize(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Set(0, 0)
	c.Resize(10, 3)
	if c.Width != 10 || c.Height != 3 || c.DotsWide() != 20 || c.DotsHigh() != 12 {
		t.Errorf("size = %dx%d", c.Width, c.Height)
	}
	if c.Lit(0, 0) {
		t.Error("Resize kept dots")
	}
	c.Resize(0, -2)
	if c.Width != 1 || c.Height != 1 {
		t.Errorf("degenerate resize = %dx%d", c.Width, c.Height)
	}
}

func TestCanvasRenderPlainWithoutPalette(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Set(0, 0)
	if c.Render(nil) != c.String() {
		t.Error("Render(nil) should equal String")
	}
	out := c.Render([]lipgloss.Color{"#003300", "#00ff41"})
	if !strings.Contains(out, "⠁") {
		t.Error("lit cell missing from render")
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("rows = %d", strings.Count(out, "\n"))
	}
}

func TestShadeLevel(t *testing.T) {
	tests := []struct {
		shade float64
		want  int
	}{
		{0, 0}, {0.1, 0}, {0.3, 1}, {0.8, 4}, {1, 4}, {2, 4}, {-1, 0},
	}
	for _, tt := range tests {
		if got := shadeLevel(tt.shade, 5); got != tt.want {
			t.Errorf("shadeLevel(%v) = %d, want %d", tt.shade, got, tt.want)
		}
	}
}

func countLit(c *Canvas) int {
	n := 0
	for y := 0; y < c.DotsHigh(); y++ {
		for x := 0; x < c.DotsWide(); x++ {
			if c.Lit(x, y) {
				n++
			}
		}
	}
	return n
}
