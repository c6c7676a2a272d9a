// Package layout 提供场景排版所需的几何与文字度量工具
//
// # 坐标系统
//
// 所有坐标均为逻辑像素，原点在视口左上角，Y 轴向下。
//   - **布局矩形**：元素在没有任何变换时的位置（BoxComponent.Rect）
//   - **渲染矩形**：布局矩形经过分组变换之后的位置（用于绘制与点击检测）
//
// # 分组变换
//
// 每个分组（英文标题、希伯来标题、经文）有一个以分组布局矩形中心为原点的变换：
//
//	rendered = origin + (p - origin) * Scale + (TX, TY)
//
// 与 CSS 的 `translate(x, y) scale(s)` 加默认 transform-origin 等价。
package layout

import "math"

// Size 宽高
type Size struct {
	W, H float64
}

// Rect 轴对齐矩形
type Rect struct {
	X, Y, W, H float64
}

// RectFromCenter 根据中心点和尺寸构造矩形
func RectFromCenter(cx, cy float64, size Size) Rect {
	return Rect{X: cx - size.W/2, Y: cy - size.H/2, W: size.W, H: size.H}
}

// Center 矩形中心
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Right 右边界
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom 下边界
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Size 返回矩形尺寸
func (r Rect) Size() Size { return Size{W: r.W, H: r.H} }

// Contains 点是否在矩形内（含左上边界，不含右下边界）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Translate 平移矩形
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Pad 按内边距扩大尺寸（把文字尺寸扩展为带内边距的盒子）
func (s Size) Pad(top, right, bottom, left float64) Size {
	return Size{W: s.W + left + right, H: s.H + top + bottom}
}

// Transform 以 (OriginX, OriginY) 为中心的缩放 + 平移
type Transform struct {
	OriginX, OriginY float64
	Scale            float64
	TX, TY           float64
}

// Identity 以指定点为中心的单位变换
func Identity(originX, originY float64) Transform {
	return Transform{OriginX: originX, OriginY: originY, Scale: 1}
}

// IsIdentity 是否为单位变换
func (t Transform) IsIdentity() bool {
	return t.Scale == 1 && t.TX == 0 && t.TY == 0
}

// ApplyPoint 变换一个点
func (t Transform) ApplyPoint(x, y float64) (float64, float64) {
	return t.OriginX + (x-t.OriginX)*t.Scale + t.TX,
		t.OriginY + (y-t.OriginY)*t.Scale + t.TY
}

// ApplyRect 变换一个矩形
// 负缩放时左上角与右下角互换，结果仍保证 W、H 非负
func (t Transform) ApplyRect(r Rect) Rect {
	x0, y0 := t.ApplyPoint(r.X, r.Y)
	x1, y1 := t.ApplyPoint(r.X+r.W, r.Y+r.H)
	return Rect{
		X: math.Min(x0, x1),
		Y: math.Min(y0, y1),
		W: math.Abs(x1 - x0),
		H: math.Abs(y1 - y0),
	}
}
