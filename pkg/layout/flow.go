package layout

import (
	"github.com/decker502/qohelet/pkg/utils"
)

// FlowOptions 换行流式排版参数（flex-wrap + justify-content: center）
type FlowOptions struct {
	// MaxWidth 行宽上限
	MaxWidth float64
	// ColumnGap 同一行相邻元素之间的间距
	ColumnGap float64
	// RowGap 行间距
	RowGap float64
	// RTL 为 true 时每行第一个元素在最右边
	RTL bool
}

// FlowResult 排版结果
type FlowResult struct {
	// Rects 与输入顺序一一对应的元素矩形（相对区块左上角）
	Rects []Rect
	// Rows 每行包含的元素下标
	Rows [][]int
	// Size 区块尺寸：宽度为 MaxWidth，高度为所有行高与行间距之和
	Size Size
}

// Flow 把一组元素按行排列，每行水平居中
//
// 规则：
//   - 元素放得下（当前行宽 + 间距 + 元素宽 ≤ MaxWidth）时留在当前行，否则换行
//   - 每行第一个元素总是放得下，超宽元素独占一行
//   - 零宽元素同样参与间距计算
//   - 行高为该行最高元素的高度；元素高度被拉伸到行高
func Flow(items []Size, opts FlowOptions) FlowResult {
	res := FlowResult{Rects: make([]Rect, len(items))}
	if len(items) == 0 {
		res.Size = Size{W: opts.MaxWidth}
		return res
	}

	// 1. 断行
	var (
		row      []int
		rowWidth float64
	)
	for i, it := range items {
		if len(row) > 0 && rowWidth+opts.ColumnGap+it.W > opts.MaxWidth {
			res.Rows = append(res.Rows, row)
			row, rowWidth = nil, 0
		}
		if len(row) > 0 {
			rowWidth += opts.ColumnGap
		}
		rowWidth += it.W
		row = append(row, i)
	}
	res.Rows = append(res.Rows, row)

	// 2. 逐行定位
	y := 0.0
	for r, idx := range res.Rows {
		if r > 0 {
			y += opts.RowGap
		}
		width, height := 0.0, 0.0
		for k, i := range idx {
			if k > 0 {
				width += opts.ColumnGap
			}
			width += items[i].W
			if items[i].H > height {
				height = items[i].H
			}
		}

		x := (opts.MaxWidth - width) / 2
		if opts.RTL {
			x = opts.MaxWidth - x
		}
		for _, i := range idx {
			w := items[i].W
			if opts.RTL {
				x -= w
				res.Rects[i] = Rect{X: x, Y: y, W: w, H: height}
				x -= opts.ColumnGap
			} else {
				res.Rects[i] = Rect{X: x, Y: y, W: w, H: height}
				x += w + opts.ColumnGap
			}
		}
		y += height
	}

	res.Size = Size{W: opts.MaxWidth, H: y}
	return res
}

// Paragraph 居中段落排版
type Paragraph struct {
	Lines      []string
	LineRects  []Rect
	LineHeight float64
	Size       Size
}

// LayoutParagraph 把文字按宽度换行，每行居中，行高为 style.Size*lineHeight
func LayoutParagraph(text string, style TextStyle, maxWidth, lineHeight float64, m Measurer) Paragraph {
	measure := func(s string) float64 { return m.MeasureText(s, style).W }
	lines := utils.WrapText(text, maxWidth, measure)

	p := Paragraph{
		Lines:      lines,
		LineRects:  make([]Rect, len(lines)),
		LineHeight: style.Size * lineHeight,
	}
	for i, line := range lines {
		w := measure(line)
		p.LineRects[i] = Rect{
			X: (maxWidth - w) / 2,
			Y: float64(i) * p.LineHeight,
			W: w,
			H: p.LineHeight,
		}
	}
	p.Size = Size{W: maxWidth, H: float64(len(lines)) * p.LineHeight}
	return p
}
