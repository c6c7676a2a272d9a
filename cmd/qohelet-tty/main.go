// qohelet-tty 在终端中显示传道书 1:1
//
// 用法：
//
//	go run ./cmd/qohelet-tty [--config data/scene.yaml] [--verbose]
//
// 操作：滚轮或鼠标拖动推进进度，↑↓←→ / 空格 / j k 在锚点之间跳转，
// 点击单词显示释义，Esc / q / Ctrl+C 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/qohelet/data"
	"github.com/decker502/qohelet/internal/tty"
	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/embedded"
	"github.com/gdamore/tcell/v2"
)

func main() {
	configPath := flag.String("config", config.DefaultSceneConfigPath, "场景配置文件（默认使用内嵌配置）")
	verbose := flag.Bool("verbose", false, "把日志写入 qohelet-tty.log")
	flag.Parse()

	// 终端被 tcell 占用，日志只能写文件
	log.SetOutput(io.Discard)
	if *verbose {
		f, err := os.Create("qohelet-tty.log")
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法创建日志文件: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	embedded.Init(data.FS)
	cfg, err := config.LoadSceneConfigFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "场景配置加载失败: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	a, err := tty.NewApp(screen, cfg)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	runErr := a.Run()
	screen.Fini()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", runErr)
		os.Exit(1)
	}
}
