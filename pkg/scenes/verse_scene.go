package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/qohelet/pkg/animation"
	"github.com/decker502/qohelet/pkg/components"
	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/ecs"
	"github.com/decker502/qohelet/pkg/entities"
	"github.com/decker502/qohelet/pkg/game"
	"github.com/decker502/qohelet/pkg/layout"
	"github.com/decker502/qohelet/pkg/systems"
)

// VerseScene 传道书 1:1 场景
//
// 每帧顺序：
//  1. 输入映射拉取事件、推进滚轮吸附计时
//  2. 挂载后的首次测量计时
//  3. 进度状态机推进一帧
//  4. 轨道、标题飞行、占位宽度写入样式
//  5. 重新排版、推进释义动画
type VerseScene struct {
	cfg *config.SceneConfig
	em  *ecs.EntityManager
	ids entities.VerseEntities

	progress *game.ProgressState
	input    *game.InputMapper

	layoutSystem   *systems.LayoutSystem
	keyframeSystem *systems.KeyframeSystem
	journeySystem  *systems.JourneySystem
	slotSystem     *systems.SlotSystem
	glossSystem    *systems.GlossSystem
	renderSystem   *systems.RenderSystem

	// dest 最近一次测量的目的地，两次测量之间保持不变
	dest     animation.Destination
	measured bool

	measureTimer components.TimerComponent
	mounted      bool
}

// 确保 VerseScene 实现 game.Scene
var _ game.Scene = (*VerseScene)(nil)

// NewVerseScene 根据场景配置创建场景
// measurer 由前端提供（ebiten 字体、终端字符宽度或离线光栅器）
func NewVerseScene(cfg *config.SceneConfig, measurer layout.Measurer) (*VerseScene, error) {
	if cfg == nil {
		return nil, fmt.Errorf("scene config cannot be nil")
	}
	if measurer == nil {
		return nil, fmt.Errorf("text measurer cannot be nil")
	}

	em := ecs.NewEntityManager()
	ids, err := entities.NewVerseEntities(em, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create verse entities: %w", err)
	}

	wordTrack, titleTrack, err := cfg.BuildGlossTracks()
	if err != nil {
		return nil, fmt.Errorf("failed to build gloss tracks: %w", err)
	}

	s := &VerseScene{
		cfg:            cfg,
		em:             em,
		ids:            ids,
		progress:       game.NewProgressState(cfg.Progress),
		layoutSystem:   systems.NewLayoutSystem(em, cfg, measurer),
		keyframeSystem: systems.NewKeyframeSystem(em),
		journeySystem:  systems.NewJourneySystem(em),
		slotSystem:     systems.NewSlotSystem(em),
		dest:           animation.Destination{Scale: cfg.Journey.InitialScale},
		measureTimer:   components.TimerComponent{Name: "mount_measure"},
	}
	s.glossSystem = systems.NewGlossSystem(em, s.layoutSystem, wordTrack, titleTrack, cfg.Gloss.Duration)
	s.renderSystem = systems.NewRenderSystem(em, s.layoutSystem, cfg.Layout)

	s.input = game.NewInputMapper(s.progress, cfg.Input)
	s.input.SetTapHandler(s.glossSystem.Tap)
	s.input.SetHoverHandler(s.glossSystem.Hover)

	s.apply(0, 0)
	return s, nil
}

// Mount 绑定事件源，MeasureDelayMs 之后做首次测量
func (s *VerseScene) Mount(source game.EventSource) {
	if s.mounted {
		return
	}
	s.input.Attach(source)
	s.measureTimer.Start(s.cfg.Layout.MeasureDelayMs / 1000)
	s.mounted = true
	log.Printf("[VerseScene] Mounted, first measure in %.0fms", s.cfg.Layout.MeasureDelayMs)
}

// Unmount 解除事件源并取消所有计时器
func (s *VerseScene) Unmount() {
	if !s.mounted {
		return
	}
	s.input.Detach()
	s.measureTimer.Stop()
	s.mounted = false
	log.Printf("[VerseScene] Unmounted")
}

// Mounted 是否已挂载
func (s *VerseScene) Mounted() bool {
	return s.mounted
}

// Resize 更新视口；挂载期间立即重新测量
func (s *VerseScene) Resize(width, height float64) {
	s.layoutSystem.SetViewport(width, height)
	s.layoutSystem.Reflow()
	if s.mounted {
		s.Measure()
	}
}

// Measure 立即测量目的地
// 所需元素缺失或视口未设置时保持上一次的结果，返回 false
func (s *VerseScene) Measure() bool {
	dest, ok := s.layoutSystem.Measure()
	if !ok {
		return false
	}
	s.dest = dest
	s.measured = true
	return true
}

// Update 推进一帧；未挂载时不做任何事
func (s *VerseScene) Update(deltaTime float64) {
	if !s.mounted {
		return
	}
	s.input.Update(deltaTime)
	if s.measureTimer.Update(deltaTime) {
		s.Measure()
	}
	p := s.progress.Tick()
	s.apply(p, deltaTime)
}

// Seek 直接跳到进度 p（跳过平滑），用于离线导出
func (s *VerseScene) Seek(p float64) {
	s.progress.Seek(p)
	s.apply(s.progress.Current(), 0)
}

// apply 把进度 p 写入所有样式并重新排版
func (s *VerseScene) apply(p, deltaTime float64) {
	s.keyframeSystem.Update(p)
	s.journeySystem.Update(p, s.dest)
	s.slotSystem.Update(p, s.dest)
	s.layoutSystem.Reflow()
	s.glossSystem.Update(deltaTime)
}

// DrawList 当前帧的绘制列表（从底到顶）
func (s *VerseScene) DrawList() []systems.DrawItem {
	return s.renderSystem.Collect()
}

// ProgressBar 底部进度条矩形
func (s *VerseScene) ProgressBar() layout.Rect {
	return s.renderSystem.ProgressBar(s.progress.Current())
}

// Progress 当前（平滑后的）进度
func (s *VerseScene) Progress() float64 {
	return s.progress.Current()
}

// ProgressState 进度状态机
func (s *VerseScene) ProgressState() *game.ProgressState {
	return s.progress
}

// Input 输入映射层
func (s *VerseScene) Input() *game.InputMapper {
	return s.input
}

// Destination 最近一次测量的目的地
func (s *VerseScene) Destination() (animation.Destination, bool) {
	return s.dest, s.measured
}

// EntityManager 场景实体
func (s *VerseScene) EntityManager() *ecs.EntityManager {
	return s.em
}

// Entities 场景实体 ID
func (s *VerseScene) Entities() entities.VerseEntities {
	return s.ids
}

// Layout 排版系统（渲染端读取渲染矩形与字号）
func (s *VerseScene) Layout() *systems.LayoutSystem {
	return s.layoutSystem
}

// Glosses 释义系统
func (s *VerseScene) Glosses() *systems.GlossSystem {
	return s.glossSystem
}

// Config 场景配置
func (s *VerseScene) Config() *config.SceneConfig {
	return s.cfg
}
