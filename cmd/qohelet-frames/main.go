// qohelet-frames 把进度 0 到 1 的动画导出为 PNG 帧序列
//
// 用法：
//
//	go run ./cmd/qohelet-frames --frames 120 --out frames [--gloss david]
//
// 生成的帧可用 ffmpeg 合成视频：
//
//	ffmpeg -framerate 30 -i frames/frame_%04d.png out.mp4
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/qohelet/data"
	"github.com/decker502/qohelet/internal/frames"
	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/embedded"
)

func main() {
	def := frames.DefaultOptions()
	opts := def

	flag.IntVar(&opts.Frames, "frames", def.Frames, "帧数（≥ 2）")
	flag.StringVar(&opts.OutDir, "out", def.OutDir, "输出目录")
	flag.IntVar(&opts.Width, "width", def.Width, "帧宽度（像素）")
	flag.IntVar(&opts.Height, "height", def.Height, "帧高度（像素）")
	flag.IntVar(&opts.Supersample, "supersample", def.Supersample, "超采样倍数 1-4")
	flag.IntVar(&opts.Workers, "workers", 0, "并行渲染数，0 表示使用全部 CPU")
	flag.StringVar(&opts.Gloss, "gloss", "", "在每帧中显示指定单词的释义（如 david、title）")
	configPath := flag.String("config", config.DefaultSceneConfigPath, "场景配置文件（默认使用内嵌配置）")
	fontPath := flag.String("font", "", "拉丁字体文件，留空使用内置 Go 字体")
	hebrewFont := flag.String("hebrew-font", "", "希伯来字体文件，优先于配置中的候选")
	verbose := flag.Bool("verbose", false, "输出详细日志")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	embedded.Init(data.FS)
	cfg, err := config.LoadSceneConfigFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "场景配置加载失败: %v\n", err)
		os.Exit(1)
	}

	candidates := cfg.Fonts.HebrewCandidates
	if *hebrewFont != "" {
		candidates = append([]string{*hebrewFont}, candidates...)
	}
	fonts, err := frames.LoadFonts(*fontPath, candidates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "字体加载失败: %v\n", err)
		os.Exit(1)
	}
	if fonts.Hebrew == nil {
		fmt.Fprintln(os.Stderr, "警告: 未找到希伯来字体，希伯来文字可能显示为方框")
	}

	start := time.Now()
	if err := frames.Export(context.Background(), cfg, fonts, opts); err != nil {
		fmt.Fprintf(os.Stderr, "导出失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("已导出 %d 帧到 %s（%v）\n", opts.Frames, opts.OutDir, time.Since(start).Round(time.Millisecond))
}
