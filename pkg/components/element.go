package components

import "github.com/decker502/qohelet/pkg/ecs"

// 分组名称
const (
	GroupTitleEn = "en"
	GroupTitleHe = "he"
	GroupVerse   = "verse"
)

// 固定元素名称（单词元素使用配置中的 ID）
const (
	ElementTitleEn = "titleEn"
	ElementTitleHe = "title"
	ElementSlot    = "slot"
	ElementVerseEn = "verseEn"
)

// GroupComponent 标记实体为一个动画分组
// 分组拥有 StyleComponent，组内所有元素共享同一个变换与不透明度
type GroupComponent struct {
	// Name 分组名称（GroupTitleEn / GroupTitleHe / GroupVerse）
	Name string
}

// ElementComponent 分组内的元素（单词、占位槽、段落、标题文字）
type ElementComponent struct {
	// Name 元素名称，例如 "firstWord"、"slot"、"title"
	Name string
	// Group 所属分组实体
	Group ecs.EntityID
}
