package game

import (
	"math"
	"testing"

	"github.com/decker502/qohelet/pkg/config"
)

const frameDT = 1.0 / 60

// fakeSource 测试用事件源，每次 Poll 取走所有排队事件
type fakeSource struct {
	queue []InputEvent
	polls int
}

func (s *fakeSource) Push(evs ...InputEvent) {
	s.queue = append(s.queue, evs...)
}

func (s *fakeSource) Poll() []InputEvent {
	s.polls++
	evs := s.queue
	s.queue = nil
	return evs
}

func newTestMapper() (*InputMapper, *ProgressState) {
	ps := newDefaultProgress()
	m := NewInputMapper(ps, config.InputConfig{
		TouchSensitivity: 350,
		WheelSensitivity: 600,
		WheelIdleMs:      150,
		TapSlop:          6,
	})
	return m, ps
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTouchDrag(t *testing.T) {
	tests := []struct {
		name       string
		startAt    float64
		moveX      float64
		moveY      float64
		wantTarget float64
		wantSnap   float64
	}{
		{"向上拖动 175px 前进半程", 0, 0, -175, 0.5, 0.5},
		{"横向位移占优时取横向", 0, -70, 10, 0.2, 0},
		{"向下拖动回退", 1, 0, 105, 0.7, 0.5},
		{"越界拖动被限制", 0.5, 0, -1000, 1, 1},
		{"纵横相等时取横向", 0, -35, -35, 0.1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ps := newTestMapper()
			ps.SetTarget(tt.startAt)

			m.TouchStart(100, 500)
			m.TouchMove(100+tt.moveX, 500+tt.moveY)
			if !almostEqual(ps.Target(), tt.wantTarget) {
				t.Errorf("移动后 target = %v, 期望 %v", ps.Target(), tt.wantTarget)
			}
			m.TouchEnd(100+tt.moveX, 500+tt.moveY)
			if ps.Target() != tt.wantSnap {
				t.Errorf("结束后 target = %v, 期望吸附到 %v", ps.Target(), tt.wantSnap)
			}
		})
	}
}

// TestTouchDragRelativeToStart 多次移动都相对手势起点计算，而不是累加
func TestTouchDragRelativeToStart(t *testing.T) {
	m, ps := newTestMapper()
	m.TouchStart(0, 400)
	m.TouchMove(0, 300)
	m.TouchMove(0, 330)
	m.TouchMove(0, 365)
	if !almostEqual(ps.Target(), 0.1) {
		t.Errorf("target = %v, 期望 0.1", ps.Target())
	}
}

func TestTouchMoveWithoutStart(t *testing.T) {
	m, ps := newTestMapper()
	m.TouchMove(0, -500)
	if ps.Target() != 0 {
		t.Errorf("未开始手势时移动不应改变 target, 实际 %v", ps.Target())
	}
}

func TestTap(t *testing.T) {
	m, _ := newTestMapper()
	var taps [][2]float64
	m.SetTapHandler(func(x, y float64) {
		taps = append(taps, [2]float64{x, y})
	})

	// 位移在 tapSlop 以内：算作点击
	m.TouchStart(50, 50)
	m.TouchMove(53, 52)
	m.TouchEnd(53, 52)

	// 超过 tapSlop：只是拖拽
	m.TouchStart(50, 50)
	m.TouchMove(50, 80)
	m.TouchMove(50, 51)
	m.TouchEnd(50, 51)

	if len(taps) != 1 {
		t.Fatalf("点击次数 = %d, 期望 1", len(taps))
	}
	if taps[0] != [2]float64{53, 52} {
		t.Errorf("点击位置 = %v, 期望 [53 52]", taps[0])
	}
}

func TestWheelAccumulates(t *testing.T) {
	m, ps := newTestMapper()
	if !m.Wheel(0, 120) {
		t.Error("滚轮事件应被消费")
	}
	m.Wheel(0, 120)
	if !almostEqual(ps.Target(), 0.4) {
		t.Errorf("两次 120px 后 target = %v, 期望 0.4", ps.Target())
	}

	// 横向分量更大时取横向
	m.Wheel(-60, 10)
	if !almostEqual(ps.Target(), 0.3) {
		t.Errorf("横向 -60px 后 target = %v, 期望 0.3", ps.Target())
	}

	m.Wheel(0, -5000)
	if ps.Target() != 0 {
		t.Errorf("越界滚动应限制到 0, 实际 %v", ps.Target())
	}
}

// TestWheelIdleSnap 滚轮停止 150ms 后吸附；期间继续滚动会重新计时
func TestWheelIdleSnap(t *testing.T) {
	m, ps := newTestMapper()
	src := &fakeSource{}
	m.Attach(src)

	src.Push(InputEvent{Kind: EventWheel, DeltaY: 200})
	m.Update(0.1)
	if !almostEqual(ps.Target(), 1.0/3) {
		t.Fatalf("target = %v, 期望 1/3", ps.Target())
	}

	src.Push(InputEvent{Kind: EventWheel, DeltaY: 10})
	m.Update(0.1)
	if ps.Target() == 0.5 {
		t.Fatal("继续滚动后计时应重置, 不应已经吸附")
	}
	m.Update(0.04)
	if ps.Target() == 0.5 {
		t.Fatal("0.14s 时不应吸附")
	}
	m.Update(0.02)
	if ps.Target() != 0.5 {
		t.Errorf("空闲 0.16s 后 target = %v, 期望吸附到 0.5", ps.Target())
	}
	if m.IdlePending() {
		t.Error("吸附后计时器应停止")
	}
}

// TestWheelEndToEnd 总计 600px 的滚轮事件把 target 推到 1，空闲 150ms 后吸附
func TestWheelEndToEnd(t *testing.T) {
	m, ps := newTestMapper()
	src := &fakeSource{}
	m.Attach(src)

	for i := 0; i < 6; i++ {
		src.Push(InputEvent{Kind: EventWheel, DeltaY: 100})
	}
	m.Update(frameDT)
	if !almostEqual(ps.Target(), 1) {
		t.Fatalf("target = %v, 期望 1", ps.Target())
	}

	m.Update(0.1)
	if !m.IdlePending() {
		t.Fatal("0.1s 时吸附计时器应仍在计时")
	}
	m.Update(0.06)
	if m.IdlePending() {
		t.Fatal("0.16s 后吸附计时器应已触发")
	}
	if ps.Target() != 1 {
		t.Errorf("吸附后 target = %v, 期望 1", ps.Target())
	}

	frames := 0
	for !ps.Settled() && frames < 500 {
		ps.Tick()
		frames++
	}
	if ps.Current() != 1 {
		t.Errorf("current 最终应为 1, 实际 %v", ps.Current())
	}
}

func TestKeys(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		key      Key
		want     float64
		consumed bool
	}{
		{"下键前进", 0, KeyArrowDown, 0.5, true},
		{"右键前进", 0.5, KeyArrowRight, 1, true},
		{"空格前进", 0, KeySpace, 0.5, true},
		{"上键后退", 1, KeyArrowUp, 0.5, true},
		{"左键后退", 0.5, KeyArrowLeft, 0, true},
		{"末尾再前进不动", 1, KeyArrowDown, 1, true},
		{"其他按键忽略", 0.5, KeyUnknown, 0.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ps := newTestMapper()
			ps.SetTarget(tt.start)
			consumed := m.Dispatch(InputEvent{Kind: EventKey, Key: tt.key})
			if ps.Target() != tt.want || consumed != tt.consumed {
				t.Errorf("target=%v consumed=%v, 期望 %v %v", ps.Target(), consumed, tt.want, tt.consumed)
			}
		})
	}
}

func TestAttachDetach(t *testing.T) {
	m, ps := newTestMapper()
	src := &fakeSource{}

	if !m.Attach(src) {
		t.Fatal("首次 Attach 应成功")
	}
	if m.Attach(src) {
		t.Error("重复 Attach 应为空操作")
	}

	// 挂起的吸附和手势在 Detach 后都被取消
	m.Wheel(0, 200)
	m.TouchStart(0, 0)
	if !m.Detach() {
		t.Fatal("Detach 应成功")
	}
	if m.Detach() {
		t.Error("重复 Detach 应为空操作")
	}
	if m.IdlePending() {
		t.Error("Detach 后吸附计时器应已取消")
	}

	before := ps.Target()
	m.TouchMove(0, -300)
	if ps.Target() != before {
		t.Error("Detach 后旧手势不应继续生效")
	}

	src.Push(InputEvent{Kind: EventKey, Key: KeyArrowDown})
	m.Update(1)
	if src.polls != 0 {
		t.Error("Detach 后不应再拉取事件")
	}
	if ps.Target() != before {
		t.Errorf("Detach 后 target 不应变化, 实际 %v", ps.Target())
	}
}

func TestHoverDispatch(t *testing.T) {
	m, _ := newTestMapper()
	var got [2]float64
	m.SetHoverHandler(func(x, y float64) { got = [2]float64{x, y} })
	if m.Dispatch(InputEvent{Kind: EventHover, X: 12, Y: 34}) {
		t.Error("悬停事件不应被消费")
	}
	if got != [2]float64{12, 34} {
		t.Errorf("悬停位置 = %v", got)
	}
}
