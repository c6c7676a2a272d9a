package frames

import (
	"context"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/scenes"
	"golang.org/x/sync/errgroup"
)

// Options 导出参数
type Options struct {
	// Frames 帧数（≥ 2），进度从 0 均匀取到 1
	Frames int
	Width  int
	Height int
	// Supersample 超采样倍数，1 表示不超采样
	Supersample int
	OutDir      string
	// Workers 并行渲染数，≤ 0 时使用 CPU 核数
	Workers int
	// Gloss 在每帧中显示指定单词（或 "title"）的释义，为空则不显示
	Gloss string
}

// DefaultOptions 默认导出参数
func DefaultOptions() Options {
	return Options{Frames: 60, Width: 430, Height: 860, Supersample: 2, OutDir: "frames"}
}

// Validate 校验参数
func (o Options) Validate() error {
	if o.Frames < 2 {
		return fmt.Errorf("frames must be at least 2, got %d", o.Frames)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", o.Width, o.Height)
	}
	if o.Supersample < 1 || o.Supersample > 4 {
		return fmt.Errorf("supersample must be in [1,4], got %d", o.Supersample)
	}
	if o.OutDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	return nil
}

// FramePath 第 i 帧的输出路径
func (o Options) FramePath(i int) string {
	return filepath.Join(o.OutDir, fmt.Sprintf("frame_%04d.png", i))
}

// Progress 第 i 帧对应的进度
func (o Options) Progress(i int) float64 {
	return float64(i) / float64(o.Frames-1)
}

// Export 并行渲染所有帧并写入 PNG 文件
// 任意一帧失败时取消其余任务并返回第一个错误
func Export(ctx context.Context, cfg *config.SceneConfig, fonts *Fonts, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	palette, err := cfg.Colors.Palette()
	if err != nil {
		return fmt.Errorf("failed to parse palette: %w", err)
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < opts.Frames; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return renderFrame(cfg, fonts, palette, opts, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Printf("[Frames] Exported %d frames to %s", opts.Frames, opts.OutDir)
	return nil
}

func renderFrame(cfg *config.SceneConfig, fonts *Fonts, palette config.Palette, opts Options, i int) error {
	fs := NewFontSet(fonts)
	defer fs.Close()

	scene, err := NewFrameScene(cfg, fs, opts, opts.Progress(i))
	if err != nil {
		return fmt.Errorf("frame %d: %w", i, err)
	}
	img := NewRasterizer(fs, palette, opts.Supersample).Rasterize(scene)

	path := opts.FramePath(i)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("frame %d: %w", i, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("frame %d: failed to encode %s: %w", i, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("frame %d: %w", i, err)
	}
	return nil
}

// NewFrameScene 创建停在进度 p 的场景
// 导出不挂载场景：直接测量一次，再跳到目标进度
func NewFrameScene(cfg *config.SceneConfig, fs *FontSet, opts Options, p float64) (*scenes.VerseScene, error) {
	scene, err := scenes.NewVerseScene(cfg, fs)
	if err != nil {
		return nil, err
	}
	scene.Resize(float64(opts.Width), float64(opts.Height))
	if !scene.Measure() {
		return nil, fmt.Errorf("failed to measure scene at %dx%d", opts.Width, opts.Height)
	}
	scene.Seek(p)
	if opts.Gloss != "" {
		if !scene.Glosses().Select(opts.Gloss) {
			return nil, fmt.Errorf("unknown gloss %q", opts.Gloss)
		}
		// 释义显现动画直接播放到末帧
		scene.Glosses().Update(0)
		scene.Glosses().Update(cfg.Gloss.Duration)
	}
	return scene, nil
}
