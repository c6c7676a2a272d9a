package app

import (
	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/game"
	"github.com/decker502/qohelet/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyBindings ebiten 按键到场景按键的映射
var keyBindings = []struct {
	ebitenKey ebiten.Key
	key       game.Key
}{
	{ebiten.KeyArrowDown, game.KeyArrowDown},
	{ebiten.KeyArrowRight, game.KeyArrowRight},
	{ebiten.KeySpace, game.KeySpace},
	{ebiten.KeyArrowUp, game.KeyArrowUp},
	{ebiten.KeyArrowLeft, game.KeyArrowLeft},
}

// InputSource 把 ebiten 的输入状态转换为场景输入事件
//
// 同时支持触摸与鼠标，优先检测触摸：
//   - 只跟踪第一个触点；触点松开时 ebiten 已不再报告其位置，使用最后一次记录的位置
//   - 鼠标左键拖动等价于触摸拖动（可通过 input.mouseDrag 关闭，此时只保留点击）
//   - 鼠标移动（未按下）产生悬停事件
//   - 移动端（utils.IsMobile）不轮询鼠标，避免触摸模拟出的光标产生悬停
//   - 滚轮偏移按 wheelPixelsPerLine 换算为像素，方向与浏览器 deltaY 一致（向下为正）
type InputSource struct {
	mouse         bool
	mouseDrag     bool
	pixelsPerLine float64

	touchID    ebiten.TouchID
	touching   bool
	lastTouchX int
	lastTouchY int

	mouseDown    bool
	lastCursorX  int
	lastCursorY  int
	cursorPolled bool

	events []game.InputEvent
}

// 确保 InputSource 实现 game.EventSource
var _ game.EventSource = (*InputSource)(nil)

// NewInputSource 创建 ebiten 输入源
func NewInputSource(cfg config.InputConfig) *InputSource {
	ppl := cfg.WheelPixelsPerLine
	if ppl <= 0 {
		ppl = 100
	}
	return &InputSource{mouse: !utils.IsMobile(), mouseDrag: cfg.MouseDrag, pixelsPerLine: ppl}
}

// Poll 返回本帧的输入事件；返回的切片在下一次调用时复用
func (s *InputSource) Poll() []game.InputEvent {
	s.events = s.events[:0]
	s.pollTouch()
	if s.mouse && !s.touching {
		s.pollMouse()
	}
	s.pollWheel()
	s.pollKeys()
	return s.events
}

func (s *InputSource) emit(ev game.InputEvent) {
	s.events = append(s.events, ev)
}

func (s *InputSource) pollTouch() {
	if !s.touching {
		ids := inpututil.AppendJustPressedTouchIDs(nil)
		if len(ids) == 0 {
			return
		}
		s.touchID = ids[0]
		s.touching = true
		s.lastTouchX, s.lastTouchY = ebiten.TouchPosition(s.touchID)
		s.emit(game.InputEvent{Kind: game.EventTouchStart, X: float64(s.lastTouchX), Y: float64(s.lastTouchY)})
		return
	}

	if inpututil.IsTouchJustReleased(s.touchID) {
		s.touching = false
		s.emit(game.InputEvent{Kind: game.EventTouchEnd, X: float64(s.lastTouchX), Y: float64(s.lastTouchY)})
		return
	}

	x, y := ebiten.TouchPosition(s.touchID)
	if x != s.lastTouchX || y != s.lastTouchY {
		s.lastTouchX, s.lastTouchY = x, y
		s.emit(game.InputEvent{Kind: game.EventTouchMove, X: float64(x), Y: float64(y)})
	}
}

func (s *InputSource) pollMouse() {
	x, y := ebiten.CursorPosition()
	moved := !s.cursorPolled || x != s.lastCursorX || y != s.lastCursorY
	s.lastCursorX, s.lastCursorY = x, y
	s.cursorPolled = true
	fx, fy := float64(x), float64(y)

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		s.mouseDown = true
		s.emit(game.InputEvent{Kind: game.EventTouchStart, X: fx, Y: fy})
	case s.mouseDown && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		s.mouseDown = false
		s.emit(game.InputEvent{Kind: game.EventTouchEnd, X: fx, Y: fy})
	case s.mouseDown && moved && s.mouseDrag:
		s.emit(game.InputEvent{Kind: game.EventTouchMove, X: fx, Y: fy})
	case !s.mouseDown && moved:
		s.emit(game.InputEvent{Kind: game.EventHover, X: fx, Y: fy})
	}
}

func (s *InputSource) pollWheel() {
	xoff, yoff := ebiten.Wheel()
	if xoff == 0 && yoff == 0 {
		return
	}
	s.emit(game.InputEvent{
		Kind:   game.EventWheel,
		DeltaX: -xoff * s.pixelsPerLine,
		DeltaY: -yoff * s.pixelsPerLine,
	})
}

func (s *InputSource) pollKeys() {
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.ebitenKey) {
			s.emit(game.InputEvent{Kind: game.EventKey, Key: b.key})
		}
	}
}
