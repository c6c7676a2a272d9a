package systems

import (
	"log"
	"strings"

	"github.com/decker502/qohelet/pkg/animation"
	"github.com/decker502/qohelet/pkg/components"
	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/ecs"
	"github.com/decker502/qohelet/pkg/layout"
)

// LayoutSystem 排版系统
//
// 职责：
//   - Reflow：根据视口尺寸、字号与占位宽度计算所有元素的布局矩形
//   - Measure：测量希伯来标题与经文占位，得出标题飞入的目的地
//   - RenderedRect：布局矩形经分组变换后的渲染矩形（绘制与点击检测共用）
//
// 每个分组整体居中于视口。单元素分组（两个标题）直接放置文字盒；
// 经文分组先把单词与占位按从右到左换行排列，再在下方放置英文段落。
type LayoutSystem struct {
	entityManager *ecs.EntityManager
	layoutCfg     config.LayoutConfig
	fontsCfg      config.FontsConfig
	measureWord   string

	measurer *layout.CachedMeasurer

	viewportWidth  float64
	viewportHeight float64
}

// NewLayoutSystem 创建排版系统
func NewLayoutSystem(em *ecs.EntityManager, cfg *config.SceneConfig, measurer layout.Measurer) *LayoutSystem {
	return &LayoutSystem{
		entityManager: em,
		layoutCfg:     cfg.Layout,
		fontsCfg:      cfg.Fonts,
		measureWord:   cfg.Content.MeasureWord,
		measurer:      layout.NewCachedMeasurer(measurer),
	}
}

// SetViewport 设置视口尺寸（逻辑像素）
// 宽度变化会改变所有流式字号，此时清空度量缓存
func (s *LayoutSystem) SetViewport(width, height float64) {
	if width != s.viewportWidth {
		s.measurer.Reset()
	}
	s.viewportWidth = width
	s.viewportHeight = height
}

// Viewport 返回视口尺寸
func (s *LayoutSystem) Viewport() (float64, float64) {
	return s.viewportWidth, s.viewportHeight
}

// Measurer 返回带缓存的度量器（渲染端复用同一份度量结果）
func (s *LayoutSystem) Measurer() layout.Measurer {
	return s.measurer
}

// FontSize 指定角色在当前视口下的字号
func (s *LayoutSystem) FontSize(role layout.FontRole) float64 {
	f := s.fontsCfg
	var size config.FluidSize
	switch role {
	case layout.RoleTitleEn:
		size = f.TitleEn
	case layout.RoleTitleHe:
		size = f.TitleHe
	case layout.RoleWord:
		size = f.Word
	case layout.RoleVerseEn:
		size = f.VerseEn
	case layout.RoleGloss:
		size = f.Gloss
	case layout.RoleTitleGloss:
		size = f.TitleGloss
	}
	return size.Resolve(s.viewportWidth)
}

// TextStyle 文字元素的完整样式
func (s *LayoutSystem) TextStyle(tc *components.TextComponent) layout.TextStyle {
	size := s.FontSize(tc.Role)
	return layout.TextStyle{Role: tc.Role, Size: size, LetterSpacing: tc.LetterSpacingEm * size}
}

// DisplayText 文字元素实际显示的内容
func DisplayText(tc *components.TextComponent) string {
	if tc.Uppercase {
		return strings.ToUpper(tc.Text)
	}
	return tc.Text
}

// Reflow 重新计算所有元素的布局矩形
// 视口尚未设置时不做任何事
func (s *LayoutSystem) Reflow() {
	if s.viewportWidth <= 0 || s.viewportHeight <= 0 {
		return
	}
	cx, cy := s.viewportWidth/2, s.viewportHeight/2

	for _, gid := range ecs.GetEntitiesWith2[*components.GroupComponent, *components.BoxComponent](s.entityManager) {
		children := s.children(gid)
		rects, size := s.layoutGroup(children)

		groupBox, _ := ecs.GetComponent[*components.BoxComponent](s.entityManager, gid)
		groupBox.Rect = layout.RectFromCenter(cx, cy, size)

		for i, id := range children {
			box, _ := ecs.GetComponent[*components.BoxComponent](s.entityManager, id)
			box.Rect = rects[i].Translate(groupBox.Rect.X, groupBox.Rect.Y)
		}
	}
}

// children 分组内的元素（按创建顺序）
func (s *LayoutSystem) children(group ecs.EntityID) []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith2[*components.ElementComponent, *components.BoxComponent](s.entityManager) {
		el, _ := ecs.GetComponent[*components.ElementComponent](s.entityManager, id)
		if el.Group == group {
			out = append(out, id)
		}
	}
	return out
}

// textSize 带内边距的文字盒尺寸
func (s *LayoutSystem) textSize(tc *components.TextComponent) layout.Size {
	size := s.measurer.MeasureText(DisplayText(tc), s.TextStyle(tc))
	p := tc.Padding
	return size.Pad(p[0], p[1], p[2], p[3])
}

// layoutGroup 计算分组内元素相对分组左上角的矩形，以及分组尺寸
func (s *LayoutSystem) layoutGroup(children []ecs.EntityID) ([]layout.Rect, layout.Size) {
	rects := make([]layout.Rect, len(children))

	// 单个文字元素：文字盒即分组
	if len(children) == 1 {
		if tc, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, children[0]); ok {
			size := s.textSize(tc)
			rects[0] = layout.Rect{W: size.W, H: size.H}
			return rects, size
		}
	}

	l := s.layoutCfg
	vw := s.viewportWidth
	contentWidth := l.VerseWidth(vw)
	pad := l.VersePadding

	// 1. 单词与占位：从右到左换行
	var (
		flowIdx   []int
		flowItems []layout.Size
		rtl       bool
	)
	for i, id := range children {
		if slot, ok := ecs.GetComponent[*components.SlotComponent](s.entityManager, id); ok {
			flowIdx = append(flowIdx, i)
			flowItems = append(flowItems, layout.Size{W: slot.Width})
			continue
		}
		if tc, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, id); ok {
			flowIdx = append(flowIdx, i)
			flowItems = append(flowItems, s.textSize(tc))
			rtl = rtl || tc.Role.IsHebrew()
		}
	}
	flow := layout.Flow(flowItems, layout.FlowOptions{
		MaxWidth:  contentWidth,
		ColumnGap: l.ColumnGap.Resolve(vw),
		RowGap:    l.RowGap.Resolve(vw),
		RTL:       rtl,
	})
	for k, i := range flowIdx {
		rects[i] = flow.Rects[k].Translate(pad, 0)
	}
	y := flow.Size.H

	// 2. 段落
	for i, id := range children {
		para, ok := ecs.GetComponent[*components.ParagraphComponent](s.entityManager, id)
		if !ok {
			continue
		}
		y += l.EnglishMarginTop.Resolve(vw)
		style := layout.TextStyle{Role: para.Role, Size: s.FontSize(para.Role)}
		laid := layout.LayoutParagraph(para.Text, style, contentWidth, para.LineHeight, s.measurer)
		para.Lines = laid.Lines
		para.LineRects = laid.LineRects
		rects[i] = layout.Rect{X: pad, Y: y, W: contentWidth, H: laid.Size.H}
		y += laid.Size.H
	}

	return rects, layout.Size{W: contentWidth + 2*pad, H: y}
}

// GroupTransform 分组当前的渲染变换（以分组布局矩形中心为原点）
func (s *LayoutSystem) GroupTransform(group ecs.EntityID) layout.Transform {
	box, ok := ecs.GetComponent[*components.BoxComponent](s.entityManager, group)
	if !ok {
		return layout.Identity(0, 0)
	}
	cx, cy := box.Rect.Center()
	style, ok := ecs.GetComponent[*components.StyleComponent](s.entityManager, group)
	if !ok {
		return layout.Identity(cx, cy)
	}
	return layout.Transform{
		OriginX: cx,
		OriginY: cy,
		Scale:   style.Scale,
		TX:      style.TranslateX,
		TY:      style.TranslateY,
	}
}

// GroupOf 元素所属的分组；分组实体返回自身
func (s *LayoutSystem) GroupOf(id ecs.EntityID) (ecs.EntityID, bool) {
	if el, ok := ecs.GetComponent[*components.ElementComponent](s.entityManager, id); ok {
		return el.Group, true
	}
	if ecs.HasComponent[*components.GroupComponent](s.entityManager, id) {
		return id, true
	}
	return ecs.InvalidEntity, false
}

// RenderedRect 元素经分组变换后的矩形
func (s *LayoutSystem) RenderedRect(id ecs.EntityID) (layout.Rect, bool) {
	box, ok := ecs.GetComponent[*components.BoxComponent](s.entityManager, id)
	if !ok {
		return layout.Rect{}, false
	}
	group, ok := s.GroupOf(id)
	if !ok {
		return box.Rect, true
	}
	return s.GroupTransform(group).ApplyRect(box.Rect), true
}

// measureTargets 测量所需的实体
type measureTargets struct {
	title, slot, word     ecs.EntityID
	titleGroup, slotGroup ecs.EntityID
}

func (s *LayoutSystem) lookupTargets() (measureTargets, bool) {
	var t measureTargets
	var ok bool
	em := s.entityManager
	if t.title, ok = em.Lookup(components.ElementTitleHe); !ok {
		return t, false
	}
	if t.slot, ok = em.Lookup(components.ElementSlot); !ok {
		return t, false
	}
	if t.word, ok = em.Lookup(s.measureWord); !ok {
		return t, false
	}
	if t.titleGroup, ok = s.GroupOf(t.title); !ok {
		return t, false
	}
	if t.slotGroup, ok = s.GroupOf(t.slot); !ok {
		return t, false
	}
	return t, true
}

// Measure 测量标题飞入占位所需的位移、缩放与占位宽度
//
// 测量期间暂时把标题分组和经文分组的样式恢复为单位样式（无变换、完全可见），
// 让占位取完整宽度，量完后恢复原样式并重新排版。
// 任何所需元素缺失、视口尚未设置或字号无效时返回 false，不修改任何状态。
func (s *LayoutSystem) Measure() (animation.Destination, bool) {
	if s.viewportWidth <= 0 || s.viewportHeight <= 0 {
		return animation.Destination{}, false
	}
	t, ok := s.lookupTargets()
	if !ok {
		return animation.Destination{}, false
	}
	em := s.entityManager
	titleText, ok1 := ecs.GetComponent[*components.TextComponent](em, t.title)
	wordText, ok2 := ecs.GetComponent[*components.TextComponent](em, t.word)
	slot, ok3 := ecs.GetComponent[*components.SlotComponent](em, t.slot)
	titleStyle, ok4 := ecs.GetComponent[*components.StyleComponent](em, t.titleGroup)
	verseStyle, ok5 := ecs.GetComponent[*components.StyleComponent](em, t.slotGroup)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return animation.Destination{}, false
	}

	titleSize := s.FontSize(titleText.Role)
	if titleSize <= 0 {
		return animation.Destination{}, false
	}
	scale := s.FontSize(wordText.Role) / titleSize

	// 1. 中和动画中的样式
	savedTitle, savedVerse, savedSlot := *titleStyle, *verseStyle, slot.Width
	titleStyle.Reset()
	verseStyle.Reset()
	defer func() {
		*titleStyle, *verseStyle = savedTitle, savedVerse
		slot.Width = savedSlot
		s.Reflow()
	}()

	// 2. 量标题
	s.Reflow()
	titleRect, _ := s.RenderedRect(t.title)

	// 3. 占位取完整宽度后量占位
	slotWidth := titleRect.W * scale
	slot.Width = slotWidth
	s.Reflow()
	slotRect, _ := s.RenderedRect(t.slot)

	tx, ty := titleRect.Center()
	sx, sy := slotRect.Center()
	dest := animation.Destination{
		X:         sx - tx,
		Y:         sy - ty,
		Scale:     scale,
		SlotWidth: slotWidth,
	}
	log.Printf("[LayoutSystem] Measured destination: offset=(%.1f, %.1f) scale=%.3f slot=%.1f (viewport %.0fx%.0f)",
		dest.X, dest.Y, dest.Scale, dest.SlotWidth, s.viewportWidth, s.viewportHeight)
	return dest, true
}
