package game

// EventKind 输入事件类型
type EventKind int

const (
	// EventTouchStart 拖拽手势开始（触摸按下或鼠标左键按下）
	EventTouchStart EventKind = iota
	// EventTouchMove 拖拽手势移动
	EventTouchMove
	// EventTouchEnd 拖拽手势结束
	EventTouchEnd
	// EventWheel 滚轮（DeltaX/DeltaY 为像素，向下/向右为正）
	EventWheel
	// EventKey 按键按下
	EventKey
	// EventHover 指针悬停移动（未按下）
	EventHover
)

// Key 与平台无关的按键标识
type Key int

const (
	KeyUnknown Key = iota
	KeyArrowDown
	KeyArrowRight
	KeySpace
	KeyArrowUp
	KeyArrowLeft
)

// InputEvent 平台输入事件
// 各前端（ebiten、终端）把原生事件翻译成 InputEvent 后交给 InputMapper
type InputEvent struct {
	Kind   EventKind
	X, Y   float64
	DeltaX float64
	DeltaY float64
	Key    Key
}

// EventSource 平台事件源
// Poll 返回自上次调用以来积累的事件，在渲染循环中每帧调用一次
type EventSource interface {
	Poll() []InputEvent
}

// IsForward 向前翻页的按键（下、右、空格）
func (k Key) IsForward() bool {
	return k == KeyArrowDown || k == KeyArrowRight || k == KeySpace
}

// IsBackward 向后翻页的按键（上、左）
func (k Key) IsBackward() bool {
	return k == KeyArrowUp || k == KeyArrowLeft
}
