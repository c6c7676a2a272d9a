package components

import "github.com/decker502/qohelet/pkg/layout"

// TextComponent 单行文字元素
type TextComponent struct {
	Text string
	// Role 文字角色，决定字体与字号
	Role layout.FontRole
	// Uppercase 为 true 时以大写显示
	Uppercase bool
	// LetterSpacingEm 字间距（相对字号）
	LetterSpacingEm float64
	// Padding 文字四周的内边距（上、右、下、左）
	Padding [4]float64
}

// ParagraphComponent 自动换行的段落（英文经文）
type ParagraphComponent struct {
	Text string
	Role layout.FontRole
	// LineHeight 行高倍数
	LineHeight float64
	// Lines 排版结果，由 LayoutSystem 写入；LineRects 相对段落布局矩形
	Lines     []string
	LineRects []layout.Rect
}
