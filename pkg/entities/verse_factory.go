package entities

import (
	"fmt"

	"github.com/decker502/qohelet/pkg/animation"
	"github.com/decker502/qohelet/pkg/components"
	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/ecs"
	"github.com/decker502/qohelet/pkg/layout"
)

// VerseEntities 经文场景的实体 ID
type VerseEntities struct {
	TitleEnGroup ecs.EntityID
	TitleHeGroup ecs.EntityID
	VerseGroup   ecs.EntityID

	TitleEn ecs.EntityID
	TitleHe ecs.EntityID
	Slot    ecs.EntityID
	VerseEn ecs.EntityID
	// Words 经文单词（不含占位），按阅读顺序
	Words []ecs.EntityID
}

func padding(p config.Padding) [4]float64 {
	return [4]float64{p.Top, p.Right, p.Bottom, p.Left}
}

// NewVerseEntities 根据场景配置创建全部实体
//
// 创建顺序即绘制顺序：英文标题、希伯来标题、经文。
// 分组实体以分组名登记，元素以元素名（单词用配置 ID）登记，供 Lookup 查找。
//
// 返回:
//   - VerseEntities: 创建的实体 ID
//   - error: 轨道构建失败时返回错误
func NewVerseEntities(em *ecs.EntityManager, cfg *config.SceneConfig) (VerseEntities, error) {
	var ids VerseEntities
	if em == nil {
		return ids, fmt.Errorf("entity manager cannot be nil")
	}

	enTrack, err := cfg.BuildTrack(config.TrackEn)
	if err != nil {
		return ids, fmt.Errorf("failed to build english title track: %w", err)
	}
	verseTrack, err := cfg.BuildTrack(config.TrackVerse)
	if err != nil {
		return ids, fmt.Errorf("failed to build verse track: %w", err)
	}

	// 1. 英文标题
	ids.TitleEnGroup = newGroup(em, components.GroupTitleEn, enTrack.Sample(0))
	em.AddComponent(ids.TitleEnGroup, &components.TrackComponent{Track: enTrack})

	ids.TitleEn = newElement(em, components.ElementTitleEn, ids.TitleEnGroup)
	em.AddComponent(ids.TitleEn, &components.TextComponent{
		Text:            cfg.Content.TitleEn,
		Role:            layout.RoleTitleEn,
		Uppercase:       true,
		LetterSpacingEm: cfg.Fonts.LetterSpacingEm,
	})

	// 2. 希伯来标题
	journey := cfg.Journey.TitleJourney
	start := journey.Pose(0, animation.Destination{})
	ids.TitleHeGroup = newGroup(em, components.GroupTitleHe, animation.Values{start.Opacity, start.Scale, start.Y, 0})
	em.AddComponent(ids.TitleHeGroup, &components.JourneyComponent{Journey: journey})

	ids.TitleHe = newElement(em, components.ElementTitleHe, ids.TitleHeGroup)
	em.AddComponent(ids.TitleHe, &components.TextComponent{
		Text:    cfg.Content.TitleHe.Text,
		Role:    layout.RoleTitleHe,
		Padding: padding(cfg.Layout.TitlePadding),
	})
	em.AddComponent(ids.TitleHe, &components.GlossComponent{
		ID:    components.ElementTitleHe,
		Text:  cfg.Content.TitleHe.Gloss,
		Title: true,
	})

	// 3. 经文
	ids.VerseGroup = newGroup(em, components.GroupVerse, verseTrack.Sample(0))
	em.AddComponent(ids.VerseGroup, &components.TrackComponent{Track: verseTrack})

	for _, w := range cfg.Content.Verse {
		if w.Slot {
			ids.Slot = newElement(em, components.ElementSlot, ids.VerseGroup)
			em.AddComponent(ids.Slot, &components.SlotComponent{Growth: cfg.Slot})
			continue
		}
		id := newElement(em, w.ID, ids.VerseGroup)
		em.AddComponent(id, &components.TextComponent{
			Text:    w.Text,
			Role:    layout.RoleWord,
			Padding: padding(cfg.Layout.WordPadding),
		})
		em.AddComponent(id, &components.GlossComponent{ID: w.ID, Text: w.Gloss})
		ids.Words = append(ids.Words, id)
	}

	ids.VerseEn = newElement(em, components.ElementVerseEn, ids.VerseGroup)
	em.AddComponent(ids.VerseEn, &components.ParagraphComponent{
		Text:       cfg.Content.VerseEn,
		Role:       layout.RoleVerseEn,
		LineHeight: cfg.Layout.EnglishLineHeight,
	})

	return ids, nil
}

// newGroup 创建分组实体，初始样式取自进度 0 处的取值
func newGroup(em *ecs.EntityManager, name string, initial animation.Values) ecs.EntityID {
	id := em.CreateNamedEntity(name)
	em.AddComponent(id, &components.GroupComponent{Name: name})
	em.AddComponent(id, &components.BoxComponent{})

	style := components.NewStyleComponent()
	style.SetOpacity(initial[animation.ChannelOpacity])
	style.Scale = initial[animation.ChannelScale]
	style.TranslateY = initial[animation.ChannelOffsetY]
	em.AddComponent(id, style)
	return id
}

func newElement(em *ecs.EntityManager, name string, group ecs.EntityID) ecs.EntityID {
	id := em.CreateNamedEntity(name)
	em.AddComponent(id, &components.ElementComponent{Name: name, Group: group})
	em.AddComponent(id, &components.BoxComponent{})
	return id
}
