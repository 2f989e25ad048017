// Command patternscope is a piano-roll visualizer for pattern notation.
// It parses the pattern and queries it once over [0, cycles) at startup,
// then draws the returned events each frame as a static piano roll; the
// engine is pure, so there is no audio tap or spectrum analyzer.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/cbegin/cyclo"
	"github.com/cbegin/cyclo/internal/notation"
)

const (
	windowW = 1000
	windowH = 600

	rowH     = 20
	pxPerCyc = 160
)

var (
	bgColor     = color.RGBA{20, 22, 28, 255}
	gridColor   = color.RGBA{50, 54, 68, 180}
	borderColor = color.RGBA{128, 128, 128, 255}
)

type game struct {
	text      string
	pat       cyclo.Pattern
	cycles    int
	lanes     []string
	laneIndex map[string]int
	haps      []cyclo.Hap
	errMsg    string
	viewW     int
	viewH     int
}

func newGame(text string, cycles int) *game {
	g := &game{text: text, cycles: cycles, viewW: windowW, viewH: windowH}
	g.requery()
	return g
}

func (g *game) requery() {
	cyclo.DefaultRuntime().SetParser(notation.Parse)
	pat, err := notation.Parse(g.text)
	if err != nil {
		g.errMsg = err.Error()
		return
	}
	g.errMsg = ""
	g.pat = pat
	haps := pat.QueryArc(cyclo.Zero, cyclo.FromInt(int64(g.cycles)), nil)
	sort.SliceStable(haps, func(i, j int) bool {
		return haps[i].Part.Begin.Less(haps[j].Part.Begin)
	})
	g.haps = haps
	g.lanes = nil
	g.laneIndex = map[string]int{}
	for _, h := range haps {
		key := fmt.Sprintf("%v", h.Value)
		if _, ok := g.laneIndex[key]; !ok {
			g.laneIndex[key] = len(g.lanes)
			g.lanes = append(g.lanes, key)
		}
	}
}

func (g *game) Update() error {
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)

	if g.errMsg != "" {
		ebitenutil.DebugPrintAt(screen, "parse error: "+g.errMsg, 10, 10)
		return
	}

	originX, originY := 140, 20
	for c := 0; c <= g.cycles; c++ {
		x := originX + c*pxPerCyc
		ebitenutil.DrawRect(screen, float64(x), float64(originY), 1, float64(len(g.lanes)*rowH), gridColor)
	}
	for i, name := range g.lanes {
		y := originY + i*rowH
		ebitenutil.DebugPrintAt(screen, name, 8, y+4)
		ebitenutil.DrawRect(screen, float64(originX), float64(y), float64(g.cycles*pxPerCyc), 1, gridColor)
	}

	for _, h := range g.haps {
		key := fmt.Sprintf("%v", h.Value)
		lane, ok := g.laneIndex[key]
		if !ok {
			continue
		}
		y := originY + lane*rowH
		x0 := originX + int(h.Part.Begin.Float64()*pxPerCyc)
		x1 := originX + int(h.Part.End.Float64()*pxPerCyc)
		w := x1 - x0
		if w < 2 {
			w = 2
		}
		col := laneColor(lane)
		ebitenutil.DrawRect(screen, float64(x0), float64(y+2), float64(w), float64(rowH-4), col)
		drawBorder(screen, image.Rect(x0, y+2, x0+w, y+rowH-2))
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d cycles, %d events, %d lanes", g.cycles, len(g.haps), len(g.lanes)), 8, g.viewH-20)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	g.viewW, g.viewH = outsideW, outsideH
	return outsideW, outsideH
}

func laneColor(i int) color.RGBA {
	hue := (i * 47) % 360
	r, gr, b := hsvToRGB(float64(hue), 0.6, 0.9)
	return color.RGBA{r, gr, b, 220}
}

func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	c := v * s
	x := c * (1 - abs(mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

func mod(a, b float64) float64 {
	for a < 0 {
		a += b
	}
	for a >= b {
		a -= b
	}
	return a
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func drawBorder(screen *ebiten.Image, rect image.Rectangle) {
	x := float64(rect.Min.X)
	y := float64(rect.Min.Y)
	w := float64(rect.Dx())
	h := float64(rect.Dy())
	ebitenutil.DrawRect(screen, x, y, w, 1, borderColor)
	ebitenutil.DrawRect(screen, x, y+h-1, w, 1, borderColor)
}

func main() {
	var (
		patternPath   = flag.String("file", "", "path to a pattern notation file")
		patternInline = flag.String("pattern", "bd sn bd [sn sn]", "inline pattern notation")
		cycles        = flag.Int("cycles", 4, "number of cycles to display")
	)
	flag.Parse()

	text := *patternInline
	if *patternPath != "" {
		data, err := os.ReadFile(*patternPath)
		if err != nil {
			log.Fatal(err)
		}
		text = string(data)
	}

	g := newGame(text, *cycles)

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("patternscope")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
