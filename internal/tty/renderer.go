package tty

import (
	"image/color"
	"math"

	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/layout"
	"github.com/decker502/qohelet/pkg/scenes"
	"github.com/decker502/qohelet/pkg/systems"
	"github.com/decker502/qohelet/pkg/utils"
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// minVisibleOpacity 低于该不透明度的文字不绘制，避免覆盖下层文字
const minVisibleOpacity = 0.08

// progressRune 进度条字符（下八分之一块）
const progressRune = '▁'

// Renderer 把场景绘制列表画到 tcell 屏幕
type Renderer struct {
	screen     tcell.Screen
	palette    config.Palette
	cellWidth  float64
	cellHeight float64
	background colorful.Color
}

// NewRenderer 创建终端渲染器
func NewRenderer(screen tcell.Screen, palette config.Palette, cellWidth, cellHeight float64) *Renderer {
	return &Renderer{
		screen:     screen,
		palette:    palette,
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		background: toColorful(palette.Background),
	}
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// blend 颜色按不透明度与背景混合（颜色自身的 alpha 一并计入）
func (r *Renderer) blend(c color.NRGBA, opacity float64) tcell.Color {
	t := utils.Clamp01(opacity * float64(c.A) / 255)
	mixed := r.background.BlendRgb(toColorful(c), t).Clamped()
	cr, cg, cb := mixed.RGB255()
	return tcell.NewRGBColor(int32(cr), int32(cg), int32(cb))
}

func (r *Renderer) ink(in systems.Ink) color.NRGBA {
	switch in {
	case systems.InkGold:
		return r.palette.Gold
	case systems.InkGloss:
		return r.palette.Gloss
	}
	return r.palette.Ivory
}

func (r *Renderer) backgroundColor() tcell.Color {
	bg := r.palette.Background
	return tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B))
}

// Draw 绘制一帧
func (r *Renderer) Draw(scene *scenes.VerseScene) {
	base := tcell.StyleDefault.Background(r.backgroundColor())
	r.screen.SetStyle(base)
	r.screen.Clear()

	for _, it := range scene.DrawList() {
		r.drawItem(it, base)
	}
	r.drawProgress(scene.ProgressBar(), base)
	r.screen.Show()
}

// cellOf 逻辑像素坐标对应的字符格
func (r *Renderer) cellOf(x, y float64) (int, int) {
	return int(math.Floor(x / r.cellWidth)), int(math.Floor(y / r.cellHeight))
}

func (r *Renderer) drawItem(it systems.DrawItem, base tcell.Style) {
	if it.Opacity < minVisibleOpacity {
		return
	}
	display := it.Text
	if it.Style.RTL() {
		display = utils.VisualOrder(display)
	}

	cx, cy := it.Rect.Center()
	width := Cells(display)
	col := int(math.Round(cx/r.cellWidth - float64(width)/2))
	_, row := r.cellOf(cx, cy)

	style := base.Foreground(r.blend(r.ink(it.Ink), it.Opacity))
	switch it.Style.Role {
	case layout.RoleTitleEn, layout.RoleTitleHe:
		style = style.Bold(true)
	}
	if it.Style.Role.IsItalic() {
		style = style.Italic(true)
	}

	r.drawString(col, row, display, style)
}

// drawString 逐个字素簇写入字符格，组合字符随基字符一起写入
func (r *Renderer) drawString(col, row int, s string, style tcell.Style) {
	w, h := r.screen.Size()
	if row < 0 || row >= h {
		return
	}
	for _, g := range utils.Graphemes(s) {
		runes := []rune(g)
		cw := Cells(g)
		if cw == 0 {
			continue
		}
		if col >= 0 && col < w {
			r.screen.SetContent(col, row, runes[0], runes[1:], style)
		}
		col += cw
	}
}

func (r *Renderer) drawProgress(bar layout.Rect, base tcell.Style) {
	w, h := r.screen.Size()
	cells := int(math.Round(bar.W / r.cellWidth))
	if cells > w {
		cells = w
	}
	style := base.Foreground(r.blend(r.palette.Progress, 1))
	for x := 0; x < cells; x++ {
		r.screen.SetContent(x, h-1, progressRune, nil, style)
	}
}
