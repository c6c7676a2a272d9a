package systems

import (
	"github.com/decker502/qohelet/pkg/animation"
	"github.com/decker502/qohelet/pkg/components"
	"github.com/decker502/qohelet/pkg/ecs"
)

// KeyframeSystem 用关键帧轨道驱动分组样式（英文标题、经文）
type KeyframeSystem struct {
	entityManager *ecs.EntityManager
}

// NewKeyframeSystem 创建关键帧系统
func NewKeyframeSystem(em *ecs.EntityManager) *KeyframeSystem {
	return &KeyframeSystem{entityManager: em}
}

// Update 在进度 p 处求值所有轨道，写入 StyleComponent
func (s *KeyframeSystem) Update(p float64) {
	entities := ecs.GetEntitiesWith2[*components.TrackComponent, *components.StyleComponent](s.entityManager)
	for _, id := range entities {
		track, _ := ecs.GetComponent[*components.TrackComponent](s.entityManager, id)
		style, _ := ecs.GetComponent[*components.StyleComponent](s.entityManager, id)
		if track.Track == nil {
			continue
		}

		v := track.Track.Sample(p)
		style.SetOpacity(v[animation.ChannelOpacity])
		style.Scale = v[animation.ChannelScale]
		style.TranslateX = 0
		style.TranslateY = v[animation.ChannelOffsetY]
	}
}
