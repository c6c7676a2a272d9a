// Package tty 终端前端
//
// 终端里每个字符格对应 CellWidth × CellHeight 个逻辑像素：
// 排版仍在逻辑像素空间进行，绘制时再把矩形中心换算回字符格。
// 终端无法缩放文字，缩放只影响位置；不透明度通过与背景色混合表现。
package tty

import (
	"github.com/decker502/qohelet/pkg/layout"
	"github.com/decker502/qohelet/pkg/utils"
	"github.com/mattn/go-runewidth"
)

// 默认字符格尺寸（逻辑像素）
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// CellMeasurer 按终端显示宽度度量文字
// 宽度 = 字符格数 × CellWidth，高度固定为一行；字号与字间距不影响结果
type CellMeasurer struct {
	CellWidth  float64
	CellHeight float64
}

// MeasureText 实现 layout.Measurer
func (m CellMeasurer) MeasureText(text string, _ layout.TextStyle) layout.Size {
	return layout.Size{W: float64(Cells(text)) * m.CellWidth, H: m.CellHeight}
}

// Cells 文字占用的字符格数
// 逐个字素簇计算：组合字符（希伯来元音点）归入基字符所在的簇，不额外占格
func Cells(text string) int {
	n := 0
	for _, g := range utils.Graphemes(text) {
		n += runewidth.StringWidth(g)
	}
	return n
}
