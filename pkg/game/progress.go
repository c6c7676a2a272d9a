package game

import (
	"math"

	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/utils"
)

// 进度状态机默认参数
const (
	DefaultProgressRate    = 0.085
	DefaultProgressEpsilon = 1e-4
	DefaultAnchorDeadZone  = 0.01
)

// DefaultAnchors 默认锚点（升序）
func DefaultAnchors() []float64 {
	return []float64{0, 0.5, 1}
}

// ProgressState 进度状态机
//
// 持有两份进度：target 由输入直接设置，current 每帧以指数衰减逼近 target。
// 两者都限制在 [0,1]。没有离散的命名状态，只有三个锚点作为静止位置。
//
// 所有方法都在渲染循环所在的单一执行上下文中调用，不需要加锁。
type ProgressState struct {
	target  float64
	current float64

	rate     float64
	epsilon  float64
	deadZone float64
	anchors  []float64
}

// NewProgressState 根据配置创建进度状态机，初始进度为 0
// 配置中未填写（零值）的字段使用默认参数
func NewProgressState(cfg config.ProgressConfig) *ProgressState {
	ps := &ProgressState{
		rate:     cfg.Rate,
		epsilon:  cfg.Epsilon,
		deadZone: cfg.DeadZone,
		anchors:  append([]float64(nil), cfg.Anchors...),
	}
	if ps.rate <= 0 {
		ps.rate = DefaultProgressRate
	}
	if ps.epsilon <= 0 {
		ps.epsilon = DefaultProgressEpsilon
	}
	if ps.deadZone <= 0 {
		ps.deadZone = DefaultAnchorDeadZone
	}
	if len(ps.anchors) == 0 {
		ps.anchors = DefaultAnchors()
	}
	return ps
}

// Target 返回目标进度
func (ps *ProgressState) Target() float64 {
	return ps.target
}

// Current 返回平滑后的当前进度
func (ps *ProgressState) Current() float64 {
	return ps.current
}

// Anchors 返回锚点副本
func (ps *ProgressState) Anchors() []float64 {
	return append([]float64(nil), ps.anchors...)
}

// Tick 推进一帧：current 向 target 衰减，残差小于 epsilon 时直接吸附到 target
// 返回推进后的 current
func (ps *ProgressState) Tick() float64 {
	d := ps.target - ps.current
	if math.Abs(d) > ps.epsilon {
		ps.current += d * ps.rate
	} else {
		ps.current = ps.target
	}
	ps.current = utils.Clamp01(ps.current)
	return ps.current
}

// SetTarget 设置目标进度（限制在 [0,1]），不修改 current
func (ps *ProgressState) SetTarget(v float64) {
	ps.target = utils.Clamp01(v)
}

// Seek 同时设置 target 与 current，跳过平滑过程
// 用于离线导出帧与测试
func (ps *ProgressState) Seek(v float64) {
	ps.target = utils.Clamp01(v)
	ps.current = ps.target
}

// Settled 返回 current 是否已经等于 target
func (ps *ProgressState) Settled() bool {
	return ps.current == ps.target
}

// SnapToNearestAnchor 把 target 设为距离最近的锚点
// 距离相同时取锚点列表中靠前（值更小）的那个
func (ps *ProgressState) SnapToNearestAnchor() {
	best := ps.anchors[0]
	dist := math.Abs(ps.target - best)
	for _, a := range ps.anchors[1:] {
		if d := math.Abs(ps.target - a); d < dist {
			dist = d
			best = a
		}
	}
	ps.target = best
}

// Next 把 target 设为第一个比当前 target 大出 deadZone 以上的锚点
// 已在最后一个锚点时不做任何事，返回 false
func (ps *ProgressState) Next() bool {
	for _, a := range ps.anchors {
		if a > ps.target+ps.deadZone {
			ps.target = a
			return true
		}
	}
	return false
}

// Previous 把 target 设为最后一个比当前 target 小出 deadZone 以上的锚点
// 已在第一个锚点时不做任何事，返回 false
func (ps *ProgressState) Previous() bool {
	for i := len(ps.anchors) - 1; i >= 0; i-- {
		if a := ps.anchors[i]; a < ps.target-ps.deadZone {
			ps.target = a
			return true
		}
	}
	return false
}
