package systems

import (
	"github.com/decker502/qohelet/pkg/animation"
	"github.com/decker502/qohelet/pkg/components"
	"github.com/decker502/qohelet/pkg/ecs"
)

// JourneySystem 驱动希伯来标题：显现、停留，然后飞入经文中的占位
type JourneySystem struct {
	entityManager *ecs.EntityManager
}

// NewJourneySystem 创建标题飞行系统
func NewJourneySystem(em *ecs.EntityManager) *JourneySystem {
	return &JourneySystem{entityManager: em}
}

// Update 根据进度与最近一次测量得到的目的地更新样式
func (s *JourneySystem) Update(p float64, dest animation.Destination) {
	entities := ecs.GetEntitiesWith2[*components.JourneyComponent, *components.StyleComponent](s.entityManager)
	for _, id := range entities {
		j, _ := ecs.GetComponent[*components.JourneyComponent](s.entityManager, id)
		style, _ := ecs.GetComponent[*components.StyleComponent](s.entityManager, id)

		pose := j.Journey.Pose(p, dest)
		style.SetOpacity(pose.Opacity)
		style.Scale = pose.Scale
		style.TranslateX = pose.X
		style.TranslateY = pose.Y
	}
}

// SlotSystem 让经文中的占位宽度随进度增长，为飞入的标题让出空间
type SlotSystem struct {
	entityManager *ecs.EntityManager
}

// NewSlotSystem 创建占位系统
func NewSlotSystem(em *ecs.EntityManager) *SlotSystem {
	return &SlotSystem{entityManager: em}
}

// Update 设置占位宽度 = dest.SlotWidth * ease(增长进度)
func (s *SlotSystem) Update(p float64, dest animation.Destination) {
	for _, id := range ecs.GetEntitiesWith1[*components.SlotComponent](s.entityManager) {
		slot, _ := ecs.GetComponent[*components.SlotComponent](s.entityManager, id)
		slot.Width = slot.Growth.Width(p, dest.SlotWidth)
	}
}
