package frames

import (
	"image"
	"image/color"
	"math"

	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/layout"
	"github.com/decker502/qohelet/pkg/scenes"
	"github.com/decker502/qohelet/pkg/systems"
	"github.com/decker502/qohelet/pkg/utils"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Rasterizer 把场景绘制列表光栅化为图像
//
// Supersample > 1 时先按倍数放大绘制，再用 CatmullRom 缩小到目标尺寸。
// x/image 的 font.Drawer 不做双向排版，希伯来文字先转换为显示顺序。
type Rasterizer struct {
	fonts       *FontSet
	palette     config.Palette
	supersample int
}

// NewRasterizer 创建光栅器
func NewRasterizer(fonts *FontSet, palette config.Palette, supersample int) *Rasterizer {
	if supersample < 1 {
		supersample = 1
	}
	return &Rasterizer{fonts: fonts, palette: palette, supersample: supersample}
}

func (r *Rasterizer) ink(in systems.Ink) color.NRGBA {
	switch in {
	case systems.InkGold:
		return r.palette.Gold
	case systems.InkGloss:
		return r.palette.Gloss
	}
	return r.palette.Ivory
}

// withOpacity 颜色 alpha 乘以不透明度
func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * utils.Clamp01(opacity)))
	return c
}

// Rasterize 按场景当前视口绘制一帧
func (r *Rasterizer) Rasterize(scene *scenes.VerseScene) *image.RGBA {
	vw, vh := scene.Layout().Viewport()
	w, h := int(math.Round(vw)), int(math.Round(vh))
	ss := float64(r.supersample)

	canvas := image.NewRGBA(image.Rect(0, 0, w*r.supersample, h*r.supersample))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(r.palette.Background), image.Point{}, draw.Src)

	for _, it := range scene.DrawList() {
		r.drawItem(canvas, it, ss)
	}
	r.fillRect(canvas, scene.ProgressBar(), r.palette.Progress, ss)

	if r.supersample == 1 {
		return canvas
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
	return out
}

func (r *Rasterizer) fillRect(dst draw.Image, rect layout.Rect, c color.NRGBA, ss float64) {
	if rect.W <= 0 || rect.H <= 0 {
		return
	}
	px := image.Rect(
		int(math.Round(rect.X*ss)), int(math.Round(rect.Y*ss)),
		int(math.Round(rect.Right()*ss)), int(math.Round(rect.Bottom()*ss)),
	)
	draw.Draw(dst, px, image.NewUniform(c), image.Point{}, draw.Over)
}

func (r *Rasterizer) drawItem(dst draw.Image, it systems.DrawItem, ss float64) {
	if it.Opacity <= 0 || it.Text == "" {
		return
	}
	size := it.Style.Size * it.Scale * ss
	if size <= 0 {
		return
	}
	face := r.fonts.Face(it.Style.Role, size)
	src := image.NewUniform(withOpacity(r.ink(it.Ink), it.Opacity))

	display := it.Text
	if it.Style.RTL() {
		display = utils.VisualOrder(display)
	}
	spacing := it.Style.LetterSpacing * it.Scale * ss

	clusters := utils.Graphemes(display)
	width := float64(font.MeasureString(face, display)) / 64
	width += spacing * float64(len(clusters))

	m := face.Metrics()
	ascent := float64(m.Ascent) / 64
	descent := float64(m.Descent) / 64

	cx, cy := it.Rect.Center()
	x := cx*ss - width/2
	baseline := cy*ss - (ascent+descent)/2 + ascent

	d := &font.Drawer{Dst: dst, Src: src, Face: face}
	if spacing == 0 {
		d.Dot = dot(x, baseline)
		d.DrawString(display)
		return
	}
	for _, g := range clusters {
		d.Dot = dot(x, baseline)
		d.DrawString(g)
		x += float64(font.MeasureString(face, g))/64 + spacing
	}
}

func dot(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x * 64)),
		Y: fixed.Int26_6(math.Round(y * 64)),
	}
}
