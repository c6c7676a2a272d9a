package layout

import (
	"github.com/decker502/qohelet/pkg/utils"
)

// FontRole 文字角色，前端据此选择字体
type FontRole int

const (
	RoleTitleEn FontRole = iota
	RoleTitleHe
	RoleWord
	RoleVerseEn
	RoleGloss
	RoleTitleGloss
)

var roleNames = [...]string{"titleEn", "titleHe", "word", "verseEn", "gloss", "titleGloss"}

func (r FontRole) String() string {
	if int(r) >= 0 && int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// IsHebrew 该角色的文字是否为希伯来文（从右向左）
func (r FontRole) IsHebrew() bool {
	return r == RoleTitleHe || r == RoleWord
}

// IsItalic 英文经文与释义使用斜体
func (r FontRole) IsItalic() bool {
	return r == RoleVerseEn || r == RoleGloss || r == RoleTitleGloss
}

// TextStyle 文字样式
type TextStyle struct {
	Role FontRole
	// Size 字号（像素）
	Size float64
	// LetterSpacing 字间距（像素），加在每个字素簇之后
	LetterSpacing float64
}

// RTL 是否从右向左排版
func (s TextStyle) RTL() bool {
	return s.Role.IsHebrew()
}

// Measurer 文字度量
// 返回单行文字的排版宽度与行高（像素），不做换行
type Measurer interface {
	MeasureText(text string, style TextStyle) Size
}

// Resetter 持有随字号增长的内部缓存（例如字体面）的度量器
// CachedMeasurer.Reset 会一并清空它
type Resetter interface {
	Reset()
}

// MeasureFunc 函数适配器
type MeasureFunc func(text string, style TextStyle) Size

// MeasureText 实现 Measurer
func (f MeasureFunc) MeasureText(text string, style TextStyle) Size {
	return f(text, style)
}

// LetterSpacingExtra 字间距带来的额外宽度
func LetterSpacingExtra(text string, spacing float64) float64 {
	if spacing == 0 {
		return 0
	}
	return spacing * float64(len(utils.Graphemes(text)))
}

// FixedMeasurer 等宽度量：每个字素簇宽 CharWidth*Size，行高 LineHeight*Size
// 用于测试以及没有字体时的退化路径
type FixedMeasurer struct {
	CharWidth  float64
	LineHeight float64
}

// MeasureText 实现 Measurer
func (m FixedMeasurer) MeasureText(text string, style TextStyle) Size {
	n := float64(len(utils.Graphemes(text)))
	return Size{
		W: n*m.CharWidth*style.Size + LetterSpacingExtra(text, style.LetterSpacing),
		H: m.LineHeight * style.Size,
	}
}

type metricsKey struct {
	text  string
	style TextStyle
}

// CachedMeasurer 缓存度量结果
// 经文每帧都要重新排版，文字内容不变，度量结果可以复用
type CachedMeasurer struct {
	inner Measurer
	cache map[metricsKey]Size
	hits  int
}

// NewCachedMeasurer 包装一个度量器
func NewCachedMeasurer(inner Measurer) *CachedMeasurer {
	return &CachedMeasurer{inner: inner, cache: make(map[metricsKey]Size)}
}

// MeasureText 实现 Measurer
func (c *CachedMeasurer) MeasureText(text string, style TextStyle) Size {
	key := metricsKey{text: text, style: style}
	if s, ok := c.cache[key]; ok {
		c.hits++
		return s
	}
	s := c.inner.MeasureText(text, style)
	c.cache[key] = s
	return s
}

// Reset 清空缓存（视口变化后字号改变，旧条目不再命中）
// 被包装的度量器实现 Resetter 时同时清空它的缓存
func (c *CachedMeasurer) Reset() {
	c.cache = make(map[metricsKey]Size)
	c.hits = 0
	if r, ok := c.inner.(Resetter); ok {
		r.Reset()
	}
}

// Len 缓存条目数
func (c *CachedMeasurer) Len() int { return len(c.cache) }

// Hits 自上次 Reset 以来的命中次数
func (c *CachedMeasurer) Hits() int { return c.hits }
