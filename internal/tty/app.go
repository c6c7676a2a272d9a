package tty

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/scenes"
	"github.com/gdamore/tcell/v2"
)

// frameInterval 约 60 FPS
const frameInterval = 16 * time.Millisecond

// App 终端前端：一个 tcell 屏幕 + 一个经文场景
type App struct {
	screen     tcell.Screen
	scene      *scenes.VerseScene
	renderer   *Renderer
	queue      *EventQueue
	cellWidth  float64
	cellHeight float64
}

// NewApp 在已初始化的屏幕上创建终端前端
func NewApp(screen tcell.Screen, cfg *config.SceneConfig) (*App, error) {
	palette, err := cfg.Colors.Palette()
	if err != nil {
		return nil, fmt.Errorf("failed to parse palette: %w", err)
	}

	a := &App{
		screen:     screen,
		cellWidth:  DefaultCellWidth,
		cellHeight: DefaultCellHeight,
	}
	measurer := CellMeasurer{CellWidth: a.cellWidth, CellHeight: a.cellHeight}
	scene, err := scenes.NewVerseScene(cfg, measurer)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	a.scene = scene
	a.renderer = NewRenderer(screen, palette, a.cellWidth, a.cellHeight)
	a.queue = NewEventQueue(NewTranslator(a.cellWidth, a.cellHeight, cfg.Input))
	return a, nil
}

// Scene 返回场景
func (a *App) Scene() *scenes.VerseScene {
	return a.scene
}

// Start 开启鼠标、挂载场景并按当前屏幕尺寸排版
func (a *App) Start() {
	a.screen.EnableMouse(tcell.MouseMotionEvents)
	a.resize()
	a.scene.Mount(a.queue)
}

// Stop 卸载场景
func (a *App) Stop() {
	a.scene.Unmount()
	a.screen.DisableMouse()
}

func (a *App) resize() {
	cols, rows := a.screen.Size()
	a.scene.Resize(float64(cols)*a.cellWidth, float64(rows)*a.cellHeight)
	log.Printf("[TTY] Resize %dx%d cells", cols, rows)
}

// Handle 处理一个 tcell 事件；返回 false 表示退出
func (a *App) Handle(ev tcell.Event) bool {
	if IsQuit(ev) {
		return false
	}
	if _, ok := ev.(*tcell.EventResize); ok {
		a.screen.Sync()
		a.resize()
		return true
	}
	a.queue.Push(ev)
	return true
}

// Frame 推进一帧并绘制
func (a *App) Frame(deltaTime float64) {
	a.scene.Update(deltaTime)
	a.renderer.Draw(a.scene)
}

// Run 主循环：事件在独立 goroutine 中读取，主循环按固定间隔推进与绘制
func (a *App) Run() error {
	a.Start()
	defer a.Stop()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !a.Handle(ev) {
				return nil
			}
		case now := <-ticker.C:
			a.Frame(now.Sub(last).Seconds())
			last = now
		}
	}
}
