package systems

import (
	"github.com/decker502/qohelet/pkg/animation"
	"github.com/decker502/qohelet/pkg/components"
	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/ecs"
	"github.com/decker502/qohelet/pkg/layout"
)

// Ink 文字颜色（对应调色板中的一项）
type Ink int

const (
	InkIvory Ink = iota
	InkGold
	InkGloss
)

// InkFor 文字角色使用的颜色
func InkFor(role layout.FontRole) Ink {
	switch role {
	case layout.RoleTitleHe, layout.RoleWord:
		return InkGold
	case layout.RoleGloss, layout.RoleTitleGloss:
		return InkGloss
	}
	return InkIvory
}

// DrawItem 一行待绘制的文字
type DrawItem struct {
	Entity ecs.EntityID
	Text   string
	Style  layout.TextStyle
	Ink    Ink
	// Opacity 最终不透明度（分组不透明度 × 释义姿态）
	Opacity float64
	// Scale 最终缩放，文字按 Style.Size*Scale 绘制
	Scale float64
	// Rect 渲染后的文字区域（不含内边距），文字在其中居中
	Rect  layout.Rect
	Gloss bool
}

// RenderSystem 收集每帧的绘制列表
//
// 只做几何计算，不依赖任何图形库：ebiten 窗口、终端与离线导出
// 读取同一份 DrawItem 列表，各自完成实际绘制。
// 绘制顺序（从底到顶）：分组按创建顺序，释义最后。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	layoutSystem  *LayoutSystem
	barHeight     float64
	glossOffset   float64

	items []DrawItem
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, ls *LayoutSystem, cfg config.LayoutConfig) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		layoutSystem:  ls,
		barHeight:     cfg.ProgressBarHeight,
		glossOffset:   cfg.GlossOffset,
	}
}

// Collect 收集当前帧的绘制列表
// 返回的切片在下一次调用时复用
func (s *RenderSystem) Collect() []DrawItem {
	s.items = s.items[:0]

	for _, gid := range ecs.GetEntitiesWith2[*components.GroupComponent, *components.StyleComponent](s.entityManager) {
		style, _ := ecs.GetComponent[*components.StyleComponent](s.entityManager, gid)
		if style.Opacity <= 0 {
			continue
		}
		t := s.layoutSystem.GroupTransform(gid)
		for _, id := range s.layoutSystem.children(gid) {
			s.collectElement(id, t, style.Opacity)
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.GlossComponent, *components.BoxComponent](s.entityManager) {
		s.collectGloss(id)
	}
	return s.items
}

func (s *RenderSystem) collectElement(id ecs.EntityID, t layout.Transform, opacity float64) {
	box, ok := ecs.GetComponent[*components.BoxComponent](s.entityManager, id)
	if !ok {
		return
	}

	if tc, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, id); ok {
		p := tc.Padding
		content := layout.Rect{
			X: box.Rect.X + p[3],
			Y: box.Rect.Y + p[0],
			W: box.Rect.W - p[1] - p[3],
			H: box.Rect.H - p[0] - p[2],
		}
		s.items = append(s.items, DrawItem{
			Entity:  id,
			Text:    DisplayText(tc),
			Style:   s.layoutSystem.TextStyle(tc),
			Ink:     InkFor(tc.Role),
			Opacity: opacity,
			Scale:   t.Scale,
			Rect:    t.ApplyRect(content),
		})
		return
	}

	if para, ok := ecs.GetComponent[*components.ParagraphComponent](s.entityManager, id); ok {
		style := layout.TextStyle{Role: para.Role, Size: s.layoutSystem.FontSize(para.Role)}
		for i, line := range para.Lines {
			if i >= len(para.LineRects) {
				break
			}
			r := para.LineRects[i].Translate(box.Rect.X, box.Rect.Y)
			s.items = append(s.items, DrawItem{
				Entity:  id,
				Text:    line,
				Style:   style,
				Ink:     InkFor(para.Role),
				Opacity: opacity,
				Scale:   t.Scale,
				Rect:    t.ApplyRect(r),
			})
		}
	}
}

// collectGloss 释义水平居中于元素下方，姿态缩放以释义中心为原点
func (s *RenderSystem) collectGloss(id ecs.EntityID) {
	g, _ := ecs.GetComponent[*components.GlossComponent](s.entityManager, id)
	if !g.Visible || g.Pose[animation.ChannelOpacity] <= 0 {
		return
	}
	group, ok := s.layoutSystem.GroupOf(id)
	if !ok {
		return
	}
	groupStyle, ok := ecs.GetComponent[*components.StyleComponent](s.entityManager, group)
	if !ok || groupStyle.Opacity <= 0 {
		return
	}
	r, ok := s.layoutSystem.RenderedRect(id)
	if !ok {
		return
	}

	role := layout.RoleGloss
	if g.Title {
		role = layout.RoleTitleGloss
	}
	style := layout.TextStyle{Role: role, Size: s.layoutSystem.FontSize(role)}
	size := s.layoutSystem.Measurer().MeasureText(g.Text, style)

	t := s.layoutSystem.GroupTransform(group)
	scale := t.Scale * g.Pose[animation.ChannelScale]
	cx, _ := r.Center()
	top := r.Bottom() + (s.glossOffset+g.Pose[animation.ChannelOffsetY])*t.Scale
	cy := top + size.H*t.Scale/2

	s.items = append(s.items, DrawItem{
		Entity:  id,
		Text:    g.Text,
		Style:   style,
		Ink:     InkGloss,
		Opacity: groupStyle.Opacity * g.Pose[animation.ChannelOpacity],
		Scale:   scale,
		Rect:    layout.RectFromCenter(cx, cy, layout.Size{W: size.W * scale, H: size.H * scale}),
		Gloss:   true,
	})
}

// ProgressBar 底部进度条矩形，宽度为 p × 视口宽度
func (s *RenderSystem) ProgressBar(p float64) layout.Rect {
	w, h := s.layoutSystem.Viewport()
	return layout.Rect{X: 0, Y: h - s.barHeight, W: p * w, H: s.barHeight}
}
