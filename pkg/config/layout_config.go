package config

// 布局配置
// 本文件定义了与视口宽度相关的流式尺寸，以及窗口的默认参数

// 窗口配置
const (
	// MinWindowWidth 窗口最小宽度（像素）
	MinWindowWidth = 320

	// MinWindowHeight 窗口最小高度（像素）
	MinWindowHeight = 480

	// WindowTitle 窗口标题
	WindowTitle = "Qohelet · Ecclesiastes 1:1"
)

// FluidSize 随视口宽度变化的尺寸，等价于 CSS clamp(Min, VW vw, Max)
type FluidSize struct {
	Min float64 `yaml:"min"`
	VW  float64 `yaml:"vw"`
	Max float64 `yaml:"max"`
}

// Resolve 根据视口宽度求出实际尺寸（像素）
// 参数：
//   - viewportWidth: 视口宽度（像素）
//
// 返回：
//   - viewportWidth * VW / 100，限制在 [Min, Max]
func (f FluidSize) Resolve(viewportWidth float64) float64 {
	v := viewportWidth * f.VW / 100
	if v < f.Min {
		return f.Min
	}
	if f.Max > 0 && v > f.Max {
		return f.Max
	}
	return v
}

// VerseWidth 经文区块的可用内容宽度
// min(VerseWidthVW vw, VerseMaxWidth) 减去左右内边距
func (l LayoutConfig) VerseWidth(viewportWidth float64) float64 {
	w := viewportWidth * l.VerseWidthVW / 100
	if l.VerseMaxWidth > 0 && w > l.VerseMaxWidth {
		w = l.VerseMaxWidth
	}
	w -= 2 * l.VersePadding
	if w < 0 {
		return 0
	}
	return w
}
