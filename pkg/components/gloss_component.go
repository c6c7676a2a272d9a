package components

import "github.com/decker502/qohelet/pkg/animation"

// GlossComponent 单词或标题下方的释义
//
// 选中（点击）或悬停时显现：Elapsed 从 0 开始累加，显现动画播放一次后停在末帧；
// 取消选中且不再悬停时立即隐藏。
type GlossComponent struct {
	// ID 选中标识（单词 ID 或 "title"）
	ID   string
	Text string
	// Title 标题释义使用较大字号与另一组关键帧
	Title bool

	Hovered bool
	// Elapsed 显现动画已播放时间（秒）
	Elapsed float64
	// Visible 当前是否显示
	Visible bool
	// Pose 当前显现姿态（opacity、scale、offsetY）
	Pose animation.Values
}
