package animation

import "github.com/decker502/qohelet/pkg/utils"

// Destination 标题飞入词槽所需的目标几何快照
// 只在挂载和窗口尺寸变化时重新测量，两次测量之间保持不变
type Destination struct {
	// X, Y 标题中心到词槽中心的偏移（像素）
	X, Y float64
	// Scale 标题字号缩放到经文单词字号的比例
	Scale float64
	// SlotWidth 词槽最终需要预留的宽度（像素）
	SlotWidth float64
}

// Pose 一帧的变换结果
type Pose struct {
	Opacity float64
	Scale   float64
	X, Y    float64
}

// TitleJourney 希伯来文标题的分段动画
//
//	[0, RevealEnd]:       淡入，缩放 StartScale→1，Y StartY→RevealY
//	(RevealEnd, HoldEnd]: 停留，Y RevealY→HoldY（线性）
//	(HoldEnd, 1]:         飞向词槽，变换插值到 Destination
type TitleJourney struct {
	RevealEnd  float64 `yaml:"revealEnd"`
	HoldEnd    float64 `yaml:"holdEnd"`
	StartScale float64 `yaml:"startScale"`
	StartY     float64 `yaml:"startY"`
	RevealY    float64 `yaml:"revealY"`
	HoldY      float64 `yaml:"holdY"`
}

// DefaultTitleJourney 返回默认分段参数
func DefaultTitleJourney() TitleJourney {
	return TitleJourney{
		RevealEnd:  0.2,
		HoldEnd:    0.5,
		StartScale: 1.1,
		StartY:     28,
		RevealY:    20,
		HoldY:      15,
	}
}

// Pose 求进度 p 处的标题变换
func (j TitleJourney) Pose(p float64, dest Destination) Pose {
	switch {
	case p <= j.RevealEnd:
		e := utils.EaseInOutQuad(segment(p, 0, j.RevealEnd))
		return Pose{
			Opacity: e,
			Scale:   utils.Lerp(j.StartScale, 1, e),
			Y:       utils.Lerp(j.StartY, j.RevealY, e),
		}
	case p <= j.HoldEnd:
		return Pose{
			Opacity: 1,
			Scale:   1,
			Y:       utils.Lerp(j.RevealY, j.HoldY, segment(p, j.RevealEnd, j.HoldEnd)),
		}
	default:
		e := utils.EaseInOutQuad(segment(p, j.HoldEnd, 1))
		return Pose{
			Opacity: 1,
			Scale:   utils.Lerp(1, dest.Scale, e),
			X:       utils.Lerp(0, dest.X, e),
			Y:       utils.Lerp(j.HoldY, dest.Y, e),
		}
	}
}

// SlotGrowth 词槽宽度随进度展开
type SlotGrowth struct {
	Start float64 `yaml:"growStart"`
}

// Width 求进度 p 处的词槽宽度
func (g SlotGrowth) Width(p, full float64) float64 {
	t := segment(p, g.Start, 1)
	if t < 0 {
		t = 0
	}
	return full * utils.EaseInOutQuad(t)
}

// segment 把 p 映射到 [from, to] 区间内的局部进度，区间退化时按 1 处理
func segment(p, from, to float64) float64 {
	span := to - from
	if span == 0 {
		span = 1
	}
	return (p - from) / span
}
