package main

import (
	"flag"
	"log"
	"os"

	"github.com/decker502/qohelet/data"
	"github.com/decker502/qohelet/pkg/app"
	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	debug := flag.Bool("debug", false, "显示调试信息（F3 切换）")
	fullscreen := flag.Bool("fullscreen", false, "全屏启动（F11 切换）")
	configPath := flag.String("config", "", "场景配置文件（默认使用内嵌的 data/scene.yaml）")
	fontPath := flag.String("font", "", "拉丁字体文件（默认使用内置 Go 字体）")
	hebrewFont := flag.String("hebrew-font", "", "希伯来字体文件")
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(data.FS)

	a, err := app.NewApp(app.Config{
		Verbose:        *verbose,
		Debug:          *debug,
		ConfigPath:     *configPath,
		FontPath:       *fontPath,
		HebrewFontPath: *hebrewFont,
	})
	if err != nil {
		// 非 verbose 模式下日志已被丢弃，致命错误仍输出到 stderr
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}

	w, h := a.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(config.MinWindowWidth, config.MinWindowHeight, -1, -1)
	ebiten.SetFullscreen(*fullscreen)

	if err := ebiten.RunGame(a); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
