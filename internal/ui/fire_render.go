package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"

	"github.com/emberhold-games/emberhold/internal/game"
)

// renderFireANSI draws the fire into an offscreen context and downsamples
// it to truecolor half-block cells, two pixel rows per terminal row. The
// flame redraws from the fire clock, so each tick sways it a little.
func renderFireANSI(f *game.Fire, widthChars, heightRows int) string {
	if widthChars < 12 || heightRows < 8 {
		return fireASCIIArt(f)
	}

	widthChars = clampInt(widthChars, 12, 44)
	heightRows = clampInt(heightRows, 8, 48)

	w := widthChars
	h := heightRows * 2
	dc := gg.NewContext(w, h)

	// Transparent background so the pane behind stays visible.
	dc.SetRGBA(0, 0, 0, 0)
	dc.Clear()

	// One heat scale drives flame size and colour: ambient reads as
	// nothing, six hundred kelvin over ambient as a full blaze.
	heat := clampFloat((f.Temperature()-f.AmbientTemperature())/600.0, 0, 1)

	cx := float64(w) * 0.5
	groundY := float64(h) * 0.93

	var fresh int
	for _, item := range f.Items() {
		if item.State() == game.StateFresh {
			fresh++
		}
	}

	drawGround(dc, cx, groundY, float64(w))
	drawLogs(dc, cx, groundY, float64(w), float64(h), len(f.Items()))

	if f.IsAlive() {
		drawEmberBed(dc, cx, groundY, float64(w), heat)
		drawFlame(dc, cx, groundY, float64(w), float64(h), heat, f.TimeAlive())
		drawSparks(dc, cx, groundY, float64(w), float64(h), heat, f.TimeAlive())
	} else {
		drawAsh(dc, cx, groundY, float64(w))
	}
	if fresh > 0 && heat < 0.45 {
		drawSmoke(dc, cx, groundY, float64(w), float64(h), f.TimeAlive())
	}

	return rgbaImageToANSIHalfBlocks(dc.Image())
}

func drawGround(dc *gg.Context, cx, groundY, w float64) {
	dc.SetRGBA(0.16, 0.12, 0.08, 0.9)
	dc.DrawEllipse(cx, groundY, w*0.42, 2.6)
	dc.Fill()
}

func drawLogs(dc *gg.Context, cx, groundY, w, h float64, itemCount int) {
	logs := clampInt(itemCount, 1, 4)
	logLen := w * 0.52
	thick := clampFloat(h*0.035, 2.2, 4.0)

	bark := color.RGBA{R: 96, G: 62, B: 30, A: 255}
	dark := color.RGBA{R: 64, G: 40, B: 18, A: 255}

	angles := []float64{-0.18, 0.22, -0.05, 0.12}
	for i := 0; i < logs; i++ {
		y := groundY - 1.5 - float64(i)*thick*0.7
		dc.Push()
		dc.RotateAbout(angles[i], cx, y)
		grad := gg.NewLinearGradient(cx-logLen/2, y, cx+logLen/2, y)
		grad.AddColorStop(0, dark)
		grad.AddColorStop(0.5, bark)
		grad.AddColorStop(1, dark)
		dc.SetFillStyle(grad)
		dc.DrawRoundedRectangle(cx-logLen/2, y-thick/2, logLen, thick, thick/2)
		dc.Fill()
		dc.Pop()
	}
}

func drawEmberBed(dc *gg.Context, cx, groundY, w, heat float64) {
	glow := gg.NewRadialGradient(cx, groundY-3, 1, cx, groundY-3, w*0.34)
	glow.AddColorStop(0, color.RGBA{R: 255, G: 150, B: 40, A: uint8(90 + 150*heat)})
	glow.AddColorStop(1, color.RGBA{})
	dc.SetFillStyle(glow)
	dc.DrawEllipse(cx, groundY-3, w*0.34, 4.5)
	dc.Fill()
}

func drawFlame(dc *gg.Context, cx, groundY, w, h, heat, clock float64) {
	baseY := groundY - 4
	flameH := lerp(0.22, 0.9, heat) * (baseY - h*0.05)

	layers := []struct {
		scale float64
		sway  float64
		base  color.RGBA
		tip   color.RGBA
	}{
		{1.0, 0.9, color.RGBA{R: 200, G: 40, B: 10, A: 220}, color.RGBA{R: 255, G: 120, B: 0, A: 200}},
		{0.7, 1.4, color.RGBA{R: 255, G: 120, B: 10, A: 230}, color.RGBA{R: 255, G: 200, B: 40, A: 220}},
		{0.4, 2.1, color.RGBA{R: 255, G: 220, B: 80, A: 240}, color.RGBA{R: 255, G: 255, B: 200, A: 240}},
	}
	for i, layer := range layers {
		fh := flameH * layer.scale
		br := w * 0.2 * layer.scale * lerp(0.7, 1.0, heat)
		if br < 1.6 {
			br = 1.6
		}
		sway := math.Sin(clock*layer.sway+float64(i)*2.1) * w * 0.045
		tipX := cx + sway
		tipY := baseY - fh

		grad := gg.NewLinearGradient(cx, baseY, cx, tipY)
		grad.AddColorStop(0, layer.base)
		grad.AddColorStop(1, layer.tip)
		dc.SetFillStyle(grad)

		dc.MoveTo(cx-br, baseY)
		dc.QuadraticTo(cx-br*1.25, baseY-fh*0.42, tipX, tipY)
		dc.QuadraticTo(cx+br*1.25, baseY-fh*0.42, cx+br, baseY)
		dc.ClosePath()
		dc.Fill()
	}
}

func drawSparks(dc *gg.Context, cx, groundY, w, h, heat, clock float64) {
	if heat < 0.45 {
		return
	}
	for i := 0; i < 3; i++ {
		t := clock*0.6 + float64(i)*1.7
		rise := math.Mod(t, 1.0)
		sx := cx + math.Sin(t*2.3+float64(i)*3.1)*w*0.16
		sy := groundY - h*0.3 - rise*h*0.45*heat
		dc.SetRGBA(1, 0.85, 0.4, 0.75*(1-rise))
		dc.DrawCircle(sx, sy, 0.8)
		dc.Fill()
	}
}

func drawSmoke(dc *gg.Context, cx, groundY, w, h, clock float64) {
	for i := 0; i < 3; i++ {
		t := clock*0.25 + float64(i)*0.9
		rise := math.Mod(t, 1.0)
		sx := cx + math.Sin(t*1.1)*w*0.1 + float64(i-1)*w*0.06
		sy := groundY - h*0.25 - rise*h*0.5
		dc.SetRGBA(0.55, 0.55, 0.55, 0.22*(1-rise))
		dc.DrawCircle(sx, sy, 1.2+rise*2.8)
		dc.Fill()
	}
}

func drawAsh(dc *gg.Context, cx, groundY, w float64) {
	dc.SetRGBA(0.45, 0.43, 0.4, 0.85)
	dc.DrawEllipse(cx, groundY-2.5, w*0.26, 2.8)
	dc.Fill()
	dc.SetRGBA(0.3, 0.28, 0.26, 0.9)
	dc.DrawEllipse(cx-w*0.08, groundY-3.4, w*0.1, 1.4)
	dc.Fill()
}

// fireASCIIArt is the no-colour fallback, banded on the same heat scale
// the painter uses.
func fireASCIIArt(f *game.Fire) string {
	heat := clampFloat((f.Temperature()-f.AmbientTemperature())/600.0, 0, 1)
	switch {
	case !f.IsAlive():
		return strings.Join([]string{
			`             `,
			`             `,
			`             `,
			`    . : .    `,
			`   _______   `,
			`  /==ash==\  `,
		}, "\n")
	case heat < 0.35:
		return strings.Join([]string{
			`             `,
			`             `,
			`      )      `,
			`     ( ,     `,
			`   (#####)   `,
			`  /=======\  `,
		}, "\n")
	case heat < 0.65:
		return strings.Join([]string{
			`             `,
			`      (      `,
			`     ) )     `,
			`    ( ( )    `,
			`   (#####)   `,
			`  /=======\  `,
		}, "\n")
	default:
		return strings.Join([]string{
			`   ( \ ) /   `,
			`    ) ( (    `,
			`   ( ) ) )   `,
			`   ( ( ( )   `,
			`  (#######)  `,
			`  /=======\  `,
		}, "\n")
	}
}

func rgbaImageToANSIHalfBlocks(img image.Image) string {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return ""
	}

	var out strings.Builder
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			tr, tg, tb, ta := rgba8(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			br, bg, bb, ba := uint8(0), uint8(0), uint8(0), uint8(0)
			if y+1 < height {
				br, bg, bb, ba = rgba8(img.At(bounds.Min.X+x, bounds.Min.Y+y+1))
			}

			if ta < 8 && ba < 8 {
				out.WriteByte(' ')
				continue
			}

			out.WriteString(fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", tr, tg, tb, br, bg, bb))
		}
		out.WriteString("\x1b[0m\n")
	}
	return out.String()
}

func rgba8(c color.Color) (r, g, b, a uint8) {
	r16, g16, b16, a16 := c.RGBA()
	return uint8(r16 >> 8), uint8(g16 >> 8), uint8(b16 >> 8), uint8(a16 >> 8)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clampFloat(v, minV, maxV float64) float64 {
	return math.Min(maxV, math.Max(minV, v))
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
