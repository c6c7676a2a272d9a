package frames

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/layout"
)

func loadScene(t *testing.T) *config.SceneConfig {
	t.Helper()
	cfg, err := config.LoadSceneConfigFile("../../data/scene.yaml")
	if err != nil {
		t.Fatalf("LoadSceneConfigFile 失败: %v", err)
	}
	return cfg
}

func builtinFonts(t *testing.T) *Fonts {
	t.Helper()
	fonts, err := LoadFonts("", nil)
	if err != nil {
		t.Fatalf("LoadFonts 失败: %v", err)
	}
	return fonts
}

func TestLoadFonts(t *testing.T) {
	fonts := builtinFonts(t)
	if fonts.Regular == nil || fonts.Italic == nil {
		t.Fatal("内置字体应加载成功")
	}
	if fonts.Hebrew != nil {
		t.Error("未提供候选时 Hebrew 应为 nil")
	}
	if got := fonts.forRole(layout.RoleTitleHe); got != fonts.Regular {
		t.Error("缺少希伯来字体时应退回 Regular")
	}

	if _, err := LoadFonts("/nonexistent/font.ttf", nil); err == nil {
		t.Error("拉丁字体不存在时应返回错误")
	}
	skipped, err := LoadFonts("", []string{"/nonexistent/hebrew.ttf"})
	if err != nil || skipped.Hebrew != nil {
		t.Errorf("希伯来候选失败应跳过: %v", err)
	}
}

func TestFontSetMeasure(t *testing.T) {
	fs := NewFontSet(builtinFonts(t))
	defer fs.Close()

	small := fs.MeasureText("Ecclesiastes", layout.TextStyle{Role: layout.RoleTitleEn, Size: 12})
	big := fs.MeasureText("Ecclesiastes", layout.TextStyle{Role: layout.RoleTitleEn, Size: 24})
	spaced := fs.MeasureText("Ecclesiastes", layout.TextStyle{Role: layout.RoleTitleEn, Size: 24, LetterSpacing: 2})

	if small.W <= 0 || small.H <= 0 {
		t.Fatalf("度量结果应为正: %+v", small)
	}
	if big.W <= small.W || big.H <= small.H {
		t.Errorf("字号越大度量越大: %+v <= %+v", big, small)
	}
	if spaced.W <= big.W || spaced.H != big.H {
		t.Errorf("字间距只增加宽度: %+v vs %+v", spaced, big)
	}
	if fs.Face(layout.RoleTitleEn, 24) != fs.Face(layout.RoleTitleEn, 24) {
		t.Error("相同角色与字号应复用字体面")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *Options)
		wantErr bool
	}{
		{"默认参数", func(o *Options) {}, false},
		{"帧数过少", func(o *Options) { o.Frames = 1 }, true},
		{"宽度为零", func(o *Options) { o.Width = 0 }, true},
		{"超采样过大", func(o *Options) { o.Supersample = 5 }, true},
		{"超采样为零", func(o *Options) { o.Supersample = 0 }, true},
		{"输出目录为空", func(o *Options) { o.OutDir = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.mutate(&o)
			if err := o.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsProgress(t *testing.T) {
	o := Options{Frames: 5, OutDir: "out"}
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i, p := range want {
		if got := o.Progress(i); got != p {
			t.Errorf("Progress(%d) = %v, 期望 %v", i, got, p)
		}
	}
	if got := o.FramePath(7); got != filepath.Join("out", "frame_0007.png") {
		t.Errorf("FramePath(7) = %q", got)
	}
}

func isBackground(c [4]uint8) bool {
	return c[0] == 0 && c[1] == 0 && c[2] == 0
}

func pixel(img *image.RGBA, x, y int) [4]uint8 {
	off := img.PixOffset(x, y)
	return [4]uint8{img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3]}
}

func rasterize(t *testing.T, supersample int, p float64) *image.RGBA {
	t.Helper()
	cfg := loadScene(t)
	fs := NewFontSet(builtinFonts(t))
	t.Cleanup(fs.Close)

	opts := DefaultOptions()
	opts.Supersample = supersample
	scene, err := NewFrameScene(cfg, fs, opts, p)
	if err != nil {
		t.Fatalf("NewFrameScene 失败: %v", err)
	}
	palette, err := cfg.Colors.Palette()
	if err != nil {
		t.Fatalf("Palette 失败: %v", err)
	}
	return NewRasterizer(fs, palette, supersample).Rasterize(scene)
}

func TestRasterize(t *testing.T) {
	for _, ss := range []int{1, 2} {
		img := rasterize(t, ss, 0)
		if b := img.Bounds(); b.Dx() != 430 || b.Dy() != 860 {
			t.Fatalf("supersample %d: 图像尺寸 %v, 期望 430x860", ss, b)
		}

		// 进度 0：标题居中，中心附近应有非背景像素
		inked := 0
		for y := 410; y < 450; y++ {
			for x := 100; x < 330; x++ {
				if !isBackground(pixel(img, x, y)) {
					inked++
				}
			}
		}
		if inked == 0 {
			t.Errorf("supersample %d: 标题区域没有绘制任何像素", ss)
		}
		if !isBackground(pixel(img, 215, 859)) {
			t.Errorf("supersample %d: 进度 0 时底部不应有进度条", ss)
		}
	}
}

func TestRasterizeProgressBar(t *testing.T) {
	img := rasterize(t, 1, 1)
	for _, x := range []int{0, 215, 429} {
		c := pixel(img, x, 859)
		if isBackground(c) || c[0] <= c[2] {
			t.Errorf("进度 1 时 (%d,859) 应为金色进度条, 实际 %v", x, c)
		}
	}
	if !isBackground(pixel(img, 215, 856)) {
		t.Error("进度条高度应为 2 像素")
	}
}

func TestNewFrameSceneGloss(t *testing.T) {
	cfg := loadScene(t)
	fs := NewFontSet(builtinFonts(t))
	defer fs.Close()

	opts := DefaultOptions()
	opts.Gloss = "missing"
	if _, err := NewFrameScene(cfg, fs, opts, 1); err == nil {
		t.Error("未知释义应返回错误")
	}

	opts.Gloss = "david"
	scene, err := NewFrameScene(cfg, fs, opts, 1)
	if err != nil {
		t.Fatalf("NewFrameScene 失败: %v", err)
	}
	if scene.Glosses().Selected() != "david" {
		t.Errorf("Selected = %q, 期望 david", scene.Glosses().Selected())
	}
	found := false
	for _, it := range scene.DrawList() {
		if it.Gloss && it.Text == "David" && it.Opacity > 0.99 {
			found = true
		}
	}
	if !found {
		t.Error("释义动画应播放到末帧并出现在绘制列表中")
	}
}

func TestExport(t *testing.T) {
	opts := DefaultOptions()
	opts.Frames = 3
	opts.Width, opts.Height = 200, 400
	opts.Supersample = 1
	opts.Workers = 2
	opts.OutDir = filepath.Join(t.TempDir(), "frames")

	if err := Export(context.Background(), loadScene(t), builtinFonts(t), opts); err != nil {
		t.Fatalf("Export 失败: %v", err)
	}
	for i := 0; i < opts.Frames; i++ {
		f, err := os.Open(opts.FramePath(i))
		if err != nil {
			t.Fatalf("第 %d 帧不存在: %v", i, err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("第 %d 帧不是有效的 PNG: %v", i, err)
		}
		if cfg.Width != 200 || cfg.Height != 400 {
			t.Errorf("第 %d 帧尺寸 %dx%d, 期望 200x400", i, cfg.Width, cfg.Height)
		}
	}
}

func TestExportInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Frames = 0
	if err := Export(context.Background(), loadScene(t), builtinFonts(t), opts); err == nil {
		t.Error("无效参数应返回错误")
	}
}
