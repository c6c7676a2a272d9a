package game

import (
	"log"
	"math"

	"github.com/decker502/qohelet/pkg/components"
	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/utils"
)

// 输入映射默认参数
const (
	DefaultTouchSensitivity = 350.0
	DefaultWheelSensitivity = 600.0
	DefaultWheelIdle        = 0.15 // 秒
	DefaultTapSlop          = 6.0
)

// TapHandler 点击回调（拖拽距离未超过 tapSlop 的手势）
type TapHandler func(x, y float64)

// HoverHandler 悬停回调
type HoverHandler func(x, y float64)

// gesture 进行中的拖拽手势
type gesture struct {
	active      bool
	startX      float64
	startY      float64
	startTarget float64
	moved       bool
}

// InputMapper 把拖拽、滚轮和按键映射为进度状态机的目标更新
//
// 三种输入的语义有意不同：
//   - 拖拽：相对手势起点的 target 设置绝对值，结束时吸附锚点
//   - 滚轮：在当前 target 上增量累加，停止 WheelIdle 秒后吸附锚点
//   - 按键：直接跳到下一个/上一个锚点
type InputMapper struct {
	progress *ProgressState

	touchSensitivity float64
	wheelSensitivity float64
	wheelIdle        float64
	tapSlop          float64

	drag      gesture
	idleTimer components.TimerComponent

	source   EventSource
	attached bool

	onTap   TapHandler
	onHover HoverHandler
}

// NewInputMapper 创建输入映射层
// 配置中为零的参数使用默认值
func NewInputMapper(progress *ProgressState, cfg config.InputConfig) *InputMapper {
	m := &InputMapper{
		progress:         progress,
		touchSensitivity: cfg.TouchSensitivity,
		wheelSensitivity: cfg.WheelSensitivity,
		wheelIdle:        cfg.WheelIdleMs / 1000,
		tapSlop:          cfg.TapSlop,
		idleTimer:        components.TimerComponent{Name: "wheel_idle"},
	}
	if m.touchSensitivity <= 0 {
		m.touchSensitivity = DefaultTouchSensitivity
	}
	if m.wheelSensitivity <= 0 {
		m.wheelSensitivity = DefaultWheelSensitivity
	}
	if cfg.WheelIdleMs <= 0 {
		m.wheelIdle = DefaultWheelIdle
	}
	if m.tapSlop <= 0 {
		m.tapSlop = DefaultTapSlop
	}
	return m
}

// SetTapHandler 设置点击回调
func (m *InputMapper) SetTapHandler(h TapHandler) {
	m.onTap = h
}

// SetHoverHandler 设置悬停回调
func (m *InputMapper) SetHoverHandler(h HoverHandler) {
	m.onHover = h
}

// Attach 绑定事件源；已绑定时不做任何事并返回 false
func (m *InputMapper) Attach(source EventSource) bool {
	if m.attached {
		return false
	}
	m.source = source
	m.attached = true
	log.Printf("[InputMapper] Attached")
	return true
}

// Detach 解除事件源绑定，取消进行中的手势和待触发的吸附计时器
// 未绑定时不做任何事并返回 false
func (m *InputMapper) Detach() bool {
	if !m.attached {
		return false
	}
	m.source = nil
	m.attached = false
	m.drag = gesture{}
	m.idleTimer.Stop()
	log.Printf("[InputMapper] Detached")
	return true
}

// IsAttached 返回是否已绑定事件源
func (m *InputMapper) IsAttached() bool {
	return m.attached
}

// IdlePending 返回滚轮吸附计时器是否正在计时
func (m *InputMapper) IdlePending() bool {
	return m.idleTimer.IsActive
}

// Update 每帧调用：拉取事件源中的事件并推进滚轮吸附计时器
func (m *InputMapper) Update(deltaTime float64) {
	if !m.attached {
		return
	}
	if m.source != nil {
		for _, ev := range m.source.Poll() {
			m.Dispatch(ev)
		}
	}
	if m.idleTimer.Update(deltaTime) {
		m.progress.SnapToNearestAnchor()
	}
}

// Dispatch 处理单个输入事件
// 返回 true 表示事件已被消费，前端应屏蔽平台默认行为（页面滚动等）
func (m *InputMapper) Dispatch(ev InputEvent) bool {
	switch ev.Kind {
	case EventTouchStart:
		m.TouchStart(ev.X, ev.Y)
	case EventTouchMove:
		m.TouchMove(ev.X, ev.Y)
	case EventTouchEnd:
		m.TouchEnd(ev.X, ev.Y)
	case EventWheel:
		return m.Wheel(ev.DeltaX, ev.DeltaY)
	case EventKey:
		return m.Key(ev.Key)
	case EventHover:
		if m.onHover != nil {
			m.onHover(ev.X, ev.Y)
		}
	}
	return false
}

// TouchStart 记录手势起点和此刻的 target
func (m *InputMapper) TouchStart(x, y float64) {
	m.drag = gesture{
		active:      true,
		startX:      x,
		startY:      y,
		startTarget: m.progress.Target(),
	}
}

// TouchMove 根据相对起点的位移设置 target
// 纵向位移占优时取纵向，否则取横向；向上/向左拖动增加进度
func (m *InputMapper) TouchMove(x, y float64) {
	if !m.drag.active {
		return
	}
	dx := x - m.drag.startX
	dy := y - m.drag.startY
	if math.Hypot(dx, dy) > m.tapSlop {
		m.drag.moved = true
	}

	delta := -dx
	if math.Abs(dy) > math.Abs(dx) {
		delta = -dy
	}
	m.progress.SetTarget(utils.Clamp01(m.drag.startTarget + delta/m.touchSensitivity))
}

// TouchEnd 结束手势并吸附到最近的锚点
// 几乎没有移动的手势同时作为一次点击上报
func (m *InputMapper) TouchEnd(x, y float64) {
	wasTap := m.drag.active && !m.drag.moved
	m.drag = gesture{}
	m.progress.SnapToNearestAnchor()

	if wasTap && m.onTap != nil {
		m.onTap(x, y)
	}
}

// Wheel 按较大分量在当前 target 上增量累加，并重新开始吸附计时
// 总是返回 true：滚轮事件必须屏蔽平台默认滚动
func (m *InputMapper) Wheel(deltaX, deltaY float64) bool {
	d := deltaX
	if math.Abs(deltaY) > math.Abs(deltaX) {
		d = deltaY
	}
	m.progress.SetTarget(utils.Clamp01(m.progress.Target() + d/m.wheelSensitivity))
	m.idleTimer.Start(m.wheelIdle)
	return true
}

// Key 向前键跳到下一个锚点，向后键跳到上一个锚点
// 返回 true 表示按键已被消费
func (m *InputMapper) Key(k Key) bool {
	switch {
	case k.IsForward():
		m.progress.Next()
		return true
	case k.IsBackward():
		m.progress.Previous()
		return true
	}
	return false
}
