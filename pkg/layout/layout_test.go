package layout

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func rectEqual(a, b Rect) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon &&
		math.Abs(a.W-b.W) < epsilon && math.Abs(a.H-b.H) < epsilon
}

func TestRect(t *testing.T) {
	r := RectFromCenter(50, 40, Size{W: 20, H: 10})
	if !rectEqual(r, Rect{X: 40, Y: 35, W: 20, H: 10}) {
		t.Fatalf("RectFromCenter = %+v", r)
	}
	cx, cy := r.Center()
	if cx != 50 || cy != 40 {
		t.Errorf("Center = (%v, %v), 期望 (50, 40)", cx, cy)
	}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"中心", 50, 40, true},
		{"左上角", 40, 35, true},
		{"右边界外", 60, 40, false},
		{"下边界外", 50, 45, false},
		{"左侧外", 39.9, 40, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, 期望 %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestTransform(t *testing.T) {
	tr := Transform{OriginX: 50, OriginY: 50, Scale: 2, TX: 10}

	x, y := tr.ApplyPoint(60, 50)
	if x != 80 || y != 50 {
		t.Errorf("ApplyPoint(60, 50) = (%v, %v), 期望 (80, 50)", x, y)
	}

	got := tr.ApplyRect(Rect{X: 40, Y: 40, W: 20, H: 20})
	if !rectEqual(got, Rect{X: 40, Y: 30, W: 40, H: 40}) {
		t.Errorf("ApplyRect = %+v", got)
	}

	// 原点不动
	ox, oy := tr.ApplyPoint(50, 50)
	if ox != 60 || oy != 50 {
		t.Errorf("原点应只受平移影响, 实际 (%v, %v)", ox, oy)
	}

	if !Identity(3, 4).IsIdentity() {
		t.Error("Identity 应为单位变换")
	}
	id := Identity(0, 0).ApplyRect(Rect{X: 1, Y: 2, W: 3, H: 4})
	if !rectEqual(id, Rect{X: 1, Y: 2, W: 3, H: 4}) {
		t.Errorf("单位变换改变了矩形: %+v", id)
	}
}

func TestFlow(t *testing.T) {
	item := Size{W: 10, H: 5}

	tests := []struct {
		name     string
		items    []Size
		opts     FlowOptions
		wantRows int
		want     []Rect
		wantH    float64
	}{
		{
			name:     "单行从左到右居中",
			items:    []Size{item, item, item},
			opts:     FlowOptions{MaxWidth: 35, ColumnGap: 2},
			wantRows: 1,
			want:     []Rect{{0.5, 0, 10, 5}, {12.5, 0, 10, 5}, {24.5, 0, 10, 5}},
			wantH:    5,
		},
		{
			name:     "单行从右到左：第一个元素在最右",
			items:    []Size{item, item, item},
			opts:     FlowOptions{MaxWidth: 35, ColumnGap: 2, RTL: true},
			wantRows: 1,
			want:     []Rect{{24.5, 0, 10, 5}, {12.5, 0, 10, 5}, {0.5, 0, 10, 5}},
			wantH:    5,
		},
		{
			name:     "换行后每行各自居中",
			items:    []Size{item, item, item},
			opts:     FlowOptions{MaxWidth: 25, ColumnGap: 2, RowGap: 3, RTL: true},
			wantRows: 2,
			want:     []Rect{{13.5, 0, 10, 5}, {1.5, 0, 10, 5}, {7.5, 8, 10, 5}},
			wantH:    13,
		},
		{
			name:     "零宽元素两侧的间距都计入",
			items:    []Size{item, {W: 0, H: 0}, item},
			opts:     FlowOptions{MaxWidth: 30, ColumnGap: 2},
			wantRows: 1,
			want:     []Rect{{3, 0, 10, 5}, {15, 0, 0, 5}, {17, 0, 10, 5}},
			wantH:    5,
		},
		{
			name:     "超宽元素独占一行",
			items:    []Size{{W: 50, H: 5}, item},
			opts:     FlowOptions{MaxWidth: 25, ColumnGap: 2},
			wantRows: 2,
			want:     []Rect{{-12.5, 0, 50, 5}, {7.5, 5, 10, 5}},
			wantH:    10,
		},
		{
			name:     "同一行元素被拉伸到行高",
			items:    []Size{{W: 10, H: 5}, {W: 10, H: 8}},
			opts:     FlowOptions{MaxWidth: 22, ColumnGap: 2},
			wantRows: 1,
			want:     []Rect{{0, 0, 10, 8}, {12, 0, 10, 8}},
			wantH:    8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Flow(tt.items, tt.opts)
			if len(res.Rows) != tt.wantRows {
				t.Fatalf("行数 = %d, 期望 %d", len(res.Rows), tt.wantRows)
			}
			for i, want := range tt.want {
				if !rectEqual(res.Rects[i], want) {
					t.Errorf("元素 %d: %+v, 期望 %+v", i, res.Rects[i], want)
				}
			}
			if math.Abs(res.Size.H-tt.wantH) > epsilon {
				t.Errorf("区块高度 = %v, 期望 %v", res.Size.H, tt.wantH)
			}
		})
	}
}

func TestFlowEmpty(t *testing.T) {
	res := Flow(nil, FlowOptions{MaxWidth: 100})
	if len(res.Rects) != 0 || res.Size.H != 0 || res.Size.W != 100 {
		t.Errorf("空输入结果异常: %+v", res)
	}
}

func TestLayoutParagraph(t *testing.T) {
	m := FixedMeasurer{CharWidth: 0.5, LineHeight: 1.2}
	style := TextStyle{Role: RoleVerseEn, Size: 10}

	p := LayoutParagraph("aaa bbb ccc", style, 40, 1.8, m)
	if len(p.Lines) != 2 || p.Lines[0] != "aaa bbb" || p.Lines[1] != "ccc" {
		t.Fatalf("Lines = %q", p.Lines)
	}
	if !rectEqual(p.LineRects[0], Rect{X: 2.5, Y: 0, W: 35, H: 18}) {
		t.Errorf("第一行 = %+v", p.LineRects[0])
	}
	if !rectEqual(p.LineRects[1], Rect{X: 12.5, Y: 18, W: 15, H: 18}) {
		t.Errorf("第二行 = %+v", p.LineRects[1])
	}
	if math.Abs(p.Size.H-36) > epsilon {
		t.Errorf("段落高度 = %v, 期望 36", p.Size.H)
	}
}

func TestFixedMeasurer(t *testing.T) {
	m := FixedMeasurer{CharWidth: 0.5, LineHeight: 1.2}

	got := m.MeasureText("ABC", TextStyle{Size: 10, LetterSpacing: 2})
	if math.Abs(got.W-21) > epsilon || math.Abs(got.H-12) > epsilon {
		t.Errorf("MeasureText = %+v, 期望 {21 12}", got)
	}

	// 组合元音点不单独占宽
	he := m.MeasureText("דָּוִד", TextStyle{Size: 10})
	if math.Abs(he.W-15) > epsilon {
		t.Errorf("带元音点的希伯来文宽度 = %v, 期望 15（3 个字素簇）", he.W)
	}
}

func TestCachedMeasurer(t *testing.T) {
	calls := 0
	inner := MeasureFunc(func(text string, style TextStyle) Size {
		calls++
		return Size{W: float64(len(text)) * style.Size, H: style.Size}
	})
	c := NewCachedMeasurer(inner)

	style := TextStyle{Role: RoleWord, Size: 24}
	for i := 0; i < 5; i++ {
		c.MeasureText("בֶּן", style)
	}
	if calls != 1 || c.Hits() != 4 {
		t.Errorf("calls=%d hits=%d, 期望 1 4", calls, c.Hits())
	}

	// 字号不同是不同的条目
	c.MeasureText("בֶּן", TextStyle{Role: RoleWord, Size: 30})
	if c.Len() != 2 {
		t.Errorf("缓存条目 = %d, 期望 2", c.Len())
	}

	c.Reset()
	if c.Len() != 0 || c.Hits() != 0 {
		t.Error("Reset 后缓存应为空")
	}
}

// resettableMeasurer 记录 Reset 调用次数
type resettableMeasurer struct {
	FixedMeasurer
	resets int
}

func (m *resettableMeasurer) Reset() { m.resets++ }

func TestCachedMeasurerResetsInner(t *testing.T) {
	inner := &resettableMeasurer{FixedMeasurer: FixedMeasurer{CharWidth: 0.5, LineHeight: 1.2}}
	c := NewCachedMeasurer(inner)
	c.MeasureText("son of", TextStyle{Size: 12})

	c.Reset()
	c.Reset()
	if inner.resets != 2 {
		t.Errorf("内层 Reset 次数 = %d, 期望 2", inner.resets)
	}

	// 没有实现 Resetter 的度量器不受影响
	NewCachedMeasurer(FixedMeasurer{CharWidth: 1, LineHeight: 1}).Reset()
}

func TestFontRole(t *testing.T) {
	tests := []struct {
		role   FontRole
		name   string
		hebrew bool
		italic bool
	}{
		{RoleTitleEn, "titleEn", false, false},
		{RoleTitleHe, "titleHe", true, false},
		{RoleWord, "word", true, false},
		{RoleVerseEn, "verseEn", false, true},
		{RoleGloss, "gloss", false, true},
		{RoleTitleGloss, "titleGloss", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.role.String() != tt.name || tt.role.IsHebrew() != tt.hebrew || tt.role.IsItalic() != tt.italic {
				t.Errorf("%v: hebrew=%v italic=%v", tt.role, tt.role.IsHebrew(), tt.role.IsItalic())
			}
		})
	}
}
