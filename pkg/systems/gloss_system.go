package systems

import (
	"github.com/decker502/qohelet/pkg/animation"
	"github.com/decker502/qohelet/pkg/components"
	"github.com/decker502/qohelet/pkg/ecs"
	"github.com/decker502/qohelet/pkg/utils"
)

// GlossSystem 释义的选中、悬停与显现动画
//
// 点击单词（或希伯来标题）选中它，再次点击同一个取消；点击空白处取消选中。
// 同一时间最多一个选中项。只有所在分组可交互（不透明度 > 0.5）的元素才能被命中。
type GlossSystem struct {
	entityManager *ecs.EntityManager
	layout        *LayoutSystem

	wordTrack  *animation.Track
	titleTrack *animation.Track
	duration   float64

	selected string
}

// NewGlossSystem 创建释义系统
// duration 为显现动画时长（秒），轨道的段内缓动已包含时间曲线
func NewGlossSystem(em *ecs.EntityManager, ls *LayoutSystem, wordTrack, titleTrack *animation.Track, duration float64) *GlossSystem {
	return &GlossSystem{
		entityManager: em,
		layout:        ls,
		wordTrack:     wordTrack,
		titleTrack:    titleTrack,
		duration:      duration,
	}
}

// Selected 当前选中项 ID，未选中时为空串
func (s *GlossSystem) Selected() string {
	return s.selected
}

// Clear 取消选中
func (s *GlossSystem) Clear() {
	s.selected = ""
}

// Select 按 ID 直接选中（离线导出使用）；ID 不存在时返回 false
func (s *GlossSystem) Select(id string) bool {
	for _, e := range ecs.GetEntitiesWith1[*components.GlossComponent](s.entityManager) {
		gloss, _ := ecs.GetComponent[*components.GlossComponent](s.entityManager, e)
		if gloss.ID == id {
			s.selected = id
			return true
		}
	}
	return false
}

// HitTest 返回位于 (x, y) 的可交互释义元素
// 后创建的元素绘制在上层，因此逆序检测
func (s *GlossSystem) HitTest(x, y float64) (ecs.EntityID, bool) {
	entities := ecs.GetEntitiesWith2[*components.GlossComponent, *components.BoxComponent](s.entityManager)
	for i := len(entities) - 1; i >= 0; i-- {
		id := entities[i]
		if !s.interactive(id) {
			continue
		}
		r, ok := s.layout.RenderedRect(id)
		if ok && r.Contains(x, y) {
			return id, true
		}
	}
	return ecs.InvalidEntity, false
}

func (s *GlossSystem) interactive(id ecs.EntityID) bool {
	group, ok := s.layout.GroupOf(id)
	if !ok {
		return true
	}
	style, ok := ecs.GetComponent[*components.StyleComponent](s.entityManager, group)
	if !ok {
		return true
	}
	return style.Interactive
}

// Tap 处理一次点击
func (s *GlossSystem) Tap(x, y float64) {
	id, ok := s.HitTest(x, y)
	if !ok {
		s.Clear()
		return
	}
	gloss, _ := ecs.GetComponent[*components.GlossComponent](s.entityManager, id)
	if s.selected == gloss.ID {
		s.selected = ""
		return
	}
	s.selected = gloss.ID
}

// Hover 更新悬停状态（仅鼠标前端调用）
func (s *GlossSystem) Hover(x, y float64) {
	hit, ok := s.HitTest(x, y)
	for _, id := range ecs.GetEntitiesWith1[*components.GlossComponent](s.entityManager) {
		gloss, _ := ecs.GetComponent[*components.GlossComponent](s.entityManager, id)
		gloss.Hovered = ok && id == hit
	}
}

// Update 推进显现动画
func (s *GlossSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.GlossComponent](s.entityManager) {
		gloss, _ := ecs.GetComponent[*components.GlossComponent](s.entityManager, id)

		// 所在分组变为不可交互时悬停失效
		if gloss.Hovered && !s.interactive(id) {
			gloss.Hovered = false
		}

		active := gloss.Hovered || (s.selected != "" && s.selected == gloss.ID)
		if !active {
			gloss.Visible = false
			gloss.Elapsed = 0
			gloss.Pose = animation.Values{}
			continue
		}
		if !gloss.Visible {
			gloss.Visible = true
			gloss.Elapsed = 0
		} else {
			gloss.Elapsed += deltaTime
		}

		track := s.wordTrack
		if gloss.Title {
			track = s.titleTrack
		}
		t := 1.0
		if s.duration > 0 {
			t = utils.Clamp01(gloss.Elapsed / s.duration)
		}
		gloss.Pose = track.Sample(t)
	}
}
