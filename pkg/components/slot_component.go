package components

import "github.com/decker502/qohelet/pkg/animation"

// SlotComponent 经文中为希伯来标题预留的占位
type SlotComponent struct {
	// Width 当前宽度（随进度增长）
	Width float64
	// Growth 增长曲线
	Growth animation.SlotGrowth
}
