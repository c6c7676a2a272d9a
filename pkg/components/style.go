package components

// StyleComponent 分组的动态样式
// 每帧由 KeyframeSystem / JourneySystem 写入，由渲染与点击检测读取
type StyleComponent struct {
	Opacity    float64
	Scale      float64
	TranslateX float64
	TranslateY float64
	// Interactive 是否接收指针事件（不透明度大于 0.5 时为 true）
	Interactive bool
}

// InteractiveOpacity 可交互的不透明度阈值（严格大于）
const InteractiveOpacity = 0.5

// NewStyleComponent 单位样式：完全可见、无变换
func NewStyleComponent() *StyleComponent {
	return &StyleComponent{Opacity: 1, Scale: 1, Interactive: true}
}

// Reset 恢复为单位样式
func (s *StyleComponent) Reset() {
	*s = StyleComponent{Opacity: 1, Scale: 1, Interactive: true}
}

// SetOpacity 设置不透明度并同步 Interactive
func (s *StyleComponent) SetOpacity(o float64) {
	s.Opacity = o
	s.Interactive = o > InteractiveOpacity
}
