package utils

import (
	"strings"

	"github.com/rivo/uniseg"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - maxWidth: 最大宽度（像素）
//   - measure: 测量单行文本宽度的函数（由具体渲染后端提供）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 优先在空格处断行
//   - 如果单词太长超过最大宽度，按字素簇强制断行
func WrapText(textStr string, maxWidth float64, measure func(string) float64) []string {
	if textStr == "" || measure == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	if measure(textStr) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(textStr) {
		testLine := word
		if currentLine != "" {
			testLine = currentLine + " " + word
		}

		if measure(testLine) <= maxWidth {
			currentLine = testLine
			continue
		}

		if currentLine != "" {
			lines = append(lines, currentLine)
			currentLine = ""
		}

		// 单个单词超宽，强制按字素簇断开
		if measure(word) > maxWidth {
			for _, g := range Graphemes(word) {
				if currentLine != "" && measure(currentLine+g) > maxWidth {
					lines = append(lines, currentLine)
					currentLine = ""
				}
				currentLine += g
			}
			continue
		}
		currentLine = word
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	if len(lines) == 0 {
		lines = []string{textStr}
	}
	return lines
}

// Graphemes 将字符串拆分为扩展字素簇
// 希伯来文的元音点（niqqud）与其基字符属于同一个簇
func Graphemes(s string) []string {
	result := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		result = append(result, g.Str())
	}
	return result
}

// VisualOrder 将从右到左书写的逻辑顺序文本转换为从左到右的显示顺序
// 用于不做双向排版的后端（终端、位图光栅器）；簇内的组合字符保持原序
func VisualOrder(s string) string {
	clusters := Graphemes(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := len(clusters) - 1; i >= 0; i-- {
		b.WriteString(clusters[i])
	}
	return b.String()
}
