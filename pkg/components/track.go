package components

import "github.com/decker502/qohelet/pkg/animation"

// TrackComponent 由关键帧轨道驱动的分组
type TrackComponent struct {
	Track *animation.Track
}

// JourneyComponent 由标题飞行曲线驱动的分组（希伯来标题）
type JourneyComponent struct {
	Journey animation.TitleJourney
}
