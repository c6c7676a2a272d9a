package tty

import (
	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/game"
	"github.com/gdamore/tcell/v2"
)

// Translator 把 tcell 事件转换为场景输入事件
//
// 鼠标坐标取字符格中心；左键按下、拖动、松开对应触摸开始、移动、结束。
// 每个滚轮事件算一行，按 PixelsPerLine 换算为像素。
type Translator struct {
	CellWidth     float64
	CellHeight    float64
	PixelsPerLine float64
	MouseDrag     bool

	buttonDown bool
	lastCol    int
	lastRow    int
	positioned bool
}

// NewTranslator 创建事件转换器
func NewTranslator(cellWidth, cellHeight float64, cfg config.InputConfig) *Translator {
	ppl := cfg.WheelPixelsPerLine
	if ppl <= 0 {
		ppl = 100
	}
	return &Translator{
		CellWidth:     cellWidth,
		CellHeight:    cellHeight,
		PixelsPerLine: ppl,
		MouseDrag:     cfg.MouseDrag,
	}
}

// Translate 转换单个 tcell 事件；无关事件返回 nil
func (t *Translator) Translate(ev tcell.Event) []game.InputEvent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if k, ok := translateKey(ev); ok {
			return []game.InputEvent{{Kind: game.EventKey, Key: k}}
		}
	case *tcell.EventMouse:
		return t.translateMouse(ev)
	}
	return nil
}

func translateKey(ev *tcell.EventKey) (game.Key, bool) {
	switch ev.Key() {
	case tcell.KeyDown:
		return game.KeyArrowDown, true
	case tcell.KeyRight:
		return game.KeyArrowRight, true
	case tcell.KeyUp:
		return game.KeyArrowUp, true
	case tcell.KeyLeft:
		return game.KeyArrowLeft, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return game.KeySpace, true
		case 'j':
			return game.KeyArrowDown, true
		case 'k':
			return game.KeyArrowUp, true
		}
	}
	return game.KeyUnknown, false
}

func (t *Translator) translateMouse(ev *tcell.EventMouse) []game.InputEvent {
	col, row := ev.Position()
	moved := !t.positioned || col != t.lastCol || row != t.lastRow
	t.lastCol, t.lastRow, t.positioned = col, row, true

	x := (float64(col) + 0.5) * t.CellWidth
	y := (float64(row) + 0.5) * t.CellHeight
	buttons := ev.Buttons()

	var out []game.InputEvent

	var dx, dy float64
	if buttons&tcell.WheelUp != 0 {
		dy -= t.PixelsPerLine
	}
	if buttons&tcell.WheelDown != 0 {
		dy += t.PixelsPerLine
	}
	if buttons&tcell.WheelLeft != 0 {
		dx -= t.PixelsPerLine
	}
	if buttons&tcell.WheelRight != 0 {
		dx += t.PixelsPerLine
	}
	if dx != 0 || dy != 0 {
		out = append(out, game.InputEvent{Kind: game.EventWheel, DeltaX: dx, DeltaY: dy})
	}

	primary := buttons&tcell.Button1 != 0
	switch {
	case primary && !t.buttonDown:
		t.buttonDown = true
		out = append(out, game.InputEvent{Kind: game.EventTouchStart, X: x, Y: y})
	case primary && moved && t.MouseDrag:
		out = append(out, game.InputEvent{Kind: game.EventTouchMove, X: x, Y: y})
	case !primary && t.buttonDown:
		t.buttonDown = false
		out = append(out, game.InputEvent{Kind: game.EventTouchEnd, X: x, Y: y})
	case !primary && moved:
		out = append(out, game.InputEvent{Kind: game.EventHover, X: x, Y: y})
	}
	return out
}

// IsQuit Esc、Ctrl+C 或 q 退出
func IsQuit(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return key.Rune() == 'q'
	}
	return false
}

// EventQueue 终端事件源
// 事件在主循环里转换后入队，场景每帧通过 Poll 取走
type EventQueue struct {
	translator *Translator
	queue      []game.InputEvent
}

// 确保 EventQueue 实现 game.EventSource
var _ game.EventSource = (*EventQueue)(nil)

// NewEventQueue 创建事件队列
func NewEventQueue(t *Translator) *EventQueue {
	return &EventQueue{translator: t}
}

// Push 转换并排队一个 tcell 事件
func (q *EventQueue) Push(ev tcell.Event) {
	q.queue = append(q.queue, q.translator.Translate(ev)...)
}

// Poll 实现 game.EventSource
func (q *EventQueue) Poll() []game.InputEvent {
	evs := q.queue
	q.queue = nil
	return evs
}
