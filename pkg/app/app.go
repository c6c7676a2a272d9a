// Package app 提供 ebiten 前端的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Debug 显示调试信息（进度、目的地、文字矩形），运行时可用 F3 切换
	Debug bool
	// ConfigPath 场景配置文件，为空则使用内嵌的 data/scene.yaml
	ConfigPath string
	// FontPath 拉丁字体文件，为空则使用内置 Go 字体
	FontPath string
	// HebrewFontPath 希伯来字体文件，优先于配置中的候选字体
	HebrewFontPath string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneCfg *config.SceneConfig
	scene    *scenes.VerseScene
	renderer *Renderer
	input    *InputSource
	verbose  bool

	screenWidth  int
	screenHeight int

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	path := cfg.ConfigPath
	if path == "" {
		path = config.DefaultSceneConfigPath
	}
	sceneCfg, err := config.LoadSceneConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("场景配置加载失败: %w", err)
	}
	log.Printf("[App] Loaded scene config: %s", path)

	palette, err := sceneCfg.Colors.Palette()
	if err != nil {
		return nil, fmt.Errorf("调色板解析失败: %w", err)
	}

	candidates := sceneCfg.Fonts.HebrewCandidates
	if cfg.HebrewFontPath != "" {
		candidates = append([]string{cfg.HebrewFontPath}, candidates...)
	}
	fonts, err := NewFontManager(cfg.FontPath, candidates)
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	scene, err := scenes.NewVerseScene(sceneCfg, fonts)
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}

	input := NewInputSource(sceneCfg.Input)
	scene.Mount(input)

	renderer := NewRenderer(fonts, palette)
	renderer.SetDebug(cfg.Debug)

	return &App{
		sceneCfg: sceneCfg,
		scene:    scene,
		renderer: renderer,
		input:    input,
		verbose:  cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := a.sceneCfg.Viewport.Width, a.sceneCfg.Viewport.Height
			ebiten.SetWindowSize(w, h)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", w, h)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		a.renderer.SetDebug(!a.renderer.Debug())
	}

	// Esc 退出：先卸载场景，释放事件源与计时器
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.scene.Unmount()
		log.Printf("[App] Escape pressed, exiting")
		return ebiten.Termination
	}

	deltaTime := 1.0 / 60.0
	a.scene.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen, a.scene)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕尺寸与窗口尺寸一致
// 视图是响应式的：窗口尺寸变化时通知场景重新排版并测量
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.screenWidth || outsideHeight != a.screenHeight {
		a.screenWidth, a.screenHeight = outsideWidth, outsideHeight
		a.scene.Resize(float64(outsideWidth), float64(outsideHeight))
		log.Printf("[App] Layout %dx%d", outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Scene 返回当前场景
func (a *App) Scene() *scenes.VerseScene {
	return a.scene
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// WindowSize 配置中的默认窗口尺寸
func (a *App) WindowSize() (int, int) {
	return a.sceneCfg.Viewport.Width, a.sceneCfg.Viewport.Height
}
