package components

import "github.com/decker502/qohelet/pkg/layout"

// BoxComponent 元素的布局矩形（未经分组变换，视口坐标）
// 由 LayoutSystem 每帧重新计算
type BoxComponent struct {
	Rect layout.Rect
}
