package app

import (
	"fmt"
	"image/color"

	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/scenes"
	"github.com/decker502/qohelet/pkg/systems"
	"github.com/decker502/qohelet/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Renderer 把场景的绘制列表画到 ebiten 屏幕上
//
// 文字按 DrawItem.Rect 居中绘制，GeoM 先缩放再平移；
// 带字间距的拉丁文字逐个字素簇绘制。
type Renderer struct {
	fonts   *FontManager
	palette config.Palette
	debug   bool
}

// NewRenderer 创建渲染器
func NewRenderer(fonts *FontManager, palette config.Palette) *Renderer {
	return &Renderer{fonts: fonts, palette: palette}
}

// SetDebug 开关调试信息
func (r *Renderer) SetDebug(debug bool) {
	r.debug = debug
}

// Debug 是否显示调试信息
func (r *Renderer) Debug() bool {
	return r.debug
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

// Draw 绘制一帧
func (r *Renderer) Draw(screen *ebiten.Image, scene *scenes.VerseScene) {
	screen.Fill(r.palette.Background)

	for _, it := range scene.DrawList() {
		r.drawItem(screen, it)
	}

	bar := scene.ProgressBar()
	if bar.W > 0 {
		vector.DrawFilledRect(screen, float32(bar.X), float32(bar.Y), float32(bar.W), float32(bar.H), r.palette.Progress, false)
	}

	if r.debug {
		r.drawDebug(screen, scene)
	}
}

func (r *Renderer) drawItem(screen *ebiten.Image, it systems.DrawItem) {
	if it.Opacity <= 0 || it.Text == "" {
		return
	}
	face := r.fonts.Face(it.Style.Role, it.Style.Size)
	cx, cy := it.Rect.Center()

	if it.Style.LetterSpacing != 0 && !it.Style.RTL() {
		r.drawSpaced(screen, it, face, cy)
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Scale(it.Scale, it.Scale)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(r.ink(it.Ink))
	op.ColorScale.ScaleAlpha(float32(it.Opacity))
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, it.Text, face, op)
}

// drawSpaced 逐个字素簇绘制，每个簇之后追加字间距
func (r *Renderer) drawSpaced(screen *ebiten.Image, it systems.DrawItem, face text.Face, cy float64) {
	x := it.Rect.X
	for _, g := range utils.Graphemes(it.Text) {
		w, _ := text.Measure(g, face, 0)

		op := &text.DrawOptions{}
		op.GeoM.Scale(it.Scale, it.Scale)
		op.GeoM.Translate(x, cy)
		op.ColorScale.ScaleWithColor(r.ink(it.Ink))
		op.ColorScale.ScaleAlpha(float32(it.Opacity))
		op.PrimaryAlign = text.AlignStart
		op.SecondaryAlign = text.AlignCenter
		text.Draw(screen, g, face, op)

		x += (w + it.Style.LetterSpacing) * it.Scale
	}
}

func (r *Renderer) drawDebug(screen *ebiten.Image, scene *scenes.VerseScene) {
	dest, measured := scene.Destination()
	state := scene.ProgressState()
	msg := fmt.Sprintf(
		"FPS %.0f\nprogress %.4f -> %.4f\ndest (%.1f, %.1f) x%.3f slot %.1f measured=%v\nselected %q",
		ebiten.ActualFPS(),
		state.Current(), state.Target(),
		dest.X, dest.Y, dest.Scale, dest.SlotWidth, measured,
		scene.Glosses().Selected(),
	)
	ebitenutil.DebugPrintAt(screen, msg, 4, 4)

	for _, it := range scene.DrawList() {
		vector.StrokeRect(screen, float32(it.Rect.X), float32(it.Rect.Y), float32(it.Rect.W), float32(it.Rect.H), 1, color.NRGBA{R: 255, A: 160}, false)
	}
}
