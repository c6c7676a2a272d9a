package config

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"sort"

	"github.com/decker502/qohelet/pkg/animation"
	"github.com/decker502/qohelet/pkg/embedded"
	"github.com/decker502/qohelet/pkg/utils"
	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// DefaultSceneConfigPath 内嵌场景配置路径
const DefaultSceneConfigPath = "data/scene.yaml"

// SceneConfig 场景配置（对应 data/scene.yaml）
type SceneConfig struct {
	Viewport ViewportConfig              `yaml:"viewport"`
	Colors   ColorsConfig                `yaml:"colors"`
	Progress ProgressConfig              `yaml:"progress"`
	Input    InputConfig                 `yaml:"input"`
	Layout   LayoutConfig                `yaml:"layout"`
	Fonts    FontsConfig                 `yaml:"fonts"`
	Content  ContentConfig               `yaml:"content"`
	Tracks   map[string][]KeyframeConfig `yaml:"tracks"`
	Journey  JourneyConfig               `yaml:"journey"`
	Slot     animation.SlotGrowth        `yaml:"slot"`
	Gloss    GlossConfig                 `yaml:"gloss"`
}

// ViewportConfig 默认窗口尺寸
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ColorConfig 十六进制颜色 + 不透明度
type ColorConfig struct {
	Hex   string  `yaml:"hex"`
	Alpha float64 `yaml:"alpha"`
}

// NRGBA 解析为 color.NRGBA；解析失败返回错误
func (c ColorConfig) NRGBA() (color.NRGBA, error) {
	parsed, err := colorful.Hex(c.Hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", c.Hex, err)
	}
	r, g, b := parsed.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(utils.Clamp01(c.Alpha)*255 + 0.5)}, nil
}

// ColorsConfig 调色板
type ColorsConfig struct {
	Background ColorConfig `yaml:"background"`
	Gold       ColorConfig `yaml:"gold"`
	Ivory      ColorConfig `yaml:"ivory"`
	Gloss      ColorConfig `yaml:"gloss"`
	Progress   ColorConfig `yaml:"progress"`
}

// Palette 解析后的调色板
type Palette struct {
	Background color.NRGBA
	Gold       color.NRGBA
	Ivory      color.NRGBA
	Gloss      color.NRGBA
	Progress   color.NRGBA
}

// Palette 解析所有颜色
func (c ColorsConfig) Palette() (Palette, error) {
	var p Palette
	entries := []struct {
		name string
		src  ColorConfig
		dst  *color.NRGBA
	}{
		{"background", c.Background, &p.Background},
		{"gold", c.Gold, &p.Gold},
		{"ivory", c.Ivory, &p.Ivory},
		{"gloss", c.Gloss, &p.Gloss},
		{"progress", c.Progress, &p.Progress},
	}
	for _, e := range entries {
		v, err := e.src.NRGBA()
		if err != nil {
			return Palette{}, fmt.Errorf("colors.%s: %w", e.name, err)
		}
		*e.dst = v
	}
	return p, nil
}

// ProgressConfig 进度状态机参数
type ProgressConfig struct {
	Rate     float64   `yaml:"rate"`
	Epsilon  float64   `yaml:"epsilon"`
	Anchors  []float64 `yaml:"anchors"`
	DeadZone float64   `yaml:"deadZone"`
}

// InputConfig 输入映射参数
type InputConfig struct {
	TouchSensitivity   float64 `yaml:"touchSensitivity"`
	WheelSensitivity   float64 `yaml:"wheelSensitivity"`
	WheelIdleMs        float64 `yaml:"wheelIdleMs"`
	WheelPixelsPerLine float64 `yaml:"wheelPixelsPerLine"`
	TapSlop            float64 `yaml:"tapSlop"`
	MouseDrag          bool    `yaml:"mouseDrag"`
}

// Padding 四边内边距
type Padding struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// LayoutConfig 排版参数
type LayoutConfig struct {
	MeasureDelayMs    float64   `yaml:"measureDelayMs"`
	VerseMaxWidth     float64   `yaml:"verseMaxWidth"`
	VerseWidthVW      float64   `yaml:"verseWidthVW"`
	VersePadding      float64   `yaml:"versePadding"`
	ColumnGap         FluidSize `yaml:"columnGap"`
	RowGap            FluidSize `yaml:"rowGap"`
	EnglishMarginTop  FluidSize `yaml:"englishMarginTop"`
	EnglishLineHeight float64   `yaml:"englishLineHeight"`
	ProgressBarHeight float64   `yaml:"progressBarHeight"`
	TitlePadding      Padding   `yaml:"titlePadding"`
	WordPadding       Padding   `yaml:"wordPadding"`
	// GlossOffset 释义与元素底边之间的额外间距，释义姿态的 offsetY 另计
	GlossOffset       float64   `yaml:"glossOffset"`
}

// FontsConfig 字号与字体文件
type FontsConfig struct {
	TitleEn          FluidSize `yaml:"titleEn"`
	TitleHe          FluidSize `yaml:"titleHe"`
	Word             FluidSize `yaml:"word"`
	VerseEn          FluidSize `yaml:"verseEn"`
	Gloss            FluidSize `yaml:"gloss"`
	TitleGloss       FluidSize `yaml:"titleGloss"`
	LetterSpacingEm  float64   `yaml:"letterSpacingEm"`
	HebrewCandidates []string  `yaml:"hebrewCandidates"`
}

// GlossedText 带释义的文本
type GlossedText struct {
	ID    string `yaml:"id"`
	Text  string `yaml:"text"`
	Gloss string `yaml:"gloss"`
	Slot  bool   `yaml:"slot"`
}

// ContentConfig 静态文本内容
type ContentConfig struct {
	TitleEn     string        `yaml:"titleEn"`
	TitleHe     GlossedText   `yaml:"titleHe"`
	MeasureWord string        `yaml:"measureWord"`
	Verse       []GlossedText `yaml:"verse"`
	VerseEn     string        `yaml:"verseEn"`
}

// KeyframeConfig 单个关键帧
type KeyframeConfig struct {
	At     float64   `yaml:"at"`
	Values KeyValues `yaml:"values"`
}

// KeyValues 关键帧的通道取值；YAML 中写 ~ 的通道在该关键帧上不设置（解析为 NaN）
type KeyValues []float64

// UnmarshalYAML 把 null 元素解析为 NaN
func (v *KeyValues) UnmarshalYAML(node *yaml.Node) error {
	var raw []*float64
	if err := node.Decode(&raw); err != nil {
		return err
	}
	out := make(KeyValues, len(raw))
	for i, x := range raw {
		if x == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *x
	}
	*v = out
	return nil
}

// JourneyConfig 标题飞行参数
type JourneyConfig struct {
	animation.TitleJourney `yaml:",inline"`
	// InitialScale 首次测量之前使用的目标缩放
	InitialScale float64 `yaml:"initialScale"`
}

// GlossConfig 释义显现动画
type GlossConfig struct {
	Duration float64          `yaml:"duration"`
	Bezier   []float64        `yaml:"bezier"`
	Word     []KeyframeConfig `yaml:"word"`
	Title    []KeyframeConfig `yaml:"title"`
}

// Track names
const (
	TrackEn    = "en"
	TrackVerse = "verse"
)

// LoadSceneConfig 解析 YAML 场景配置并校验
func LoadSceneConfig(data []byte) (*SceneConfig, error) {
	var cfg SceneConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}
	return &cfg, nil
}

// LoadSceneConfigFile 从文件加载场景配置
// 以 "data/" 开头的路径优先从嵌入资源读取，其余从文件系统读取
func LoadSceneConfigFile(path string) (*SceneConfig, error) {
	var (
		data []byte
		err  error
	)
	if embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config %s: %w", path, err)
	}
	return LoadSceneConfig(data)
}

// Validate 校验配置
func (c *SceneConfig) Validate() error {
	p := c.Progress
	if p.Rate <= 0 || p.Rate > 1 {
		return fmt.Errorf("progress.rate must be in (0,1], got %v", p.Rate)
	}
	if p.Epsilon <= 0 {
		return fmt.Errorf("progress.epsilon must be positive, got %v", p.Epsilon)
	}
	if len(p.Anchors) == 0 {
		return fmt.Errorf("progress.anchors must not be empty")
	}
	if !sort.Float64sAreSorted(p.Anchors) {
		return fmt.Errorf("progress.anchors must be ascending, got %v", p.Anchors)
	}
	for _, a := range p.Anchors {
		if a < 0 || a > 1 {
			return fmt.Errorf("progress.anchors must lie in [0,1], got %v", a)
		}
	}

	in := c.Input
	if in.TouchSensitivity <= 0 || in.WheelSensitivity <= 0 {
		return fmt.Errorf("input sensitivities must be positive")
	}
	if in.WheelIdleMs < 0 {
		return fmt.Errorf("input.wheelIdleMs must not be negative")
	}

	for _, name := range []string{TrackEn, TrackVerse} {
		keys, ok := c.Tracks[name]
		if !ok {
			return fmt.Errorf("tracks.%s is missing", name)
		}
		if err := validateCoverage("tracks."+name, keys); err != nil {
			return err
		}
	}
	for name, keys := range map[string][]KeyframeConfig{"gloss.word": c.Gloss.Word, "gloss.title": c.Gloss.Title} {
		if err := validateCoverage(name, keys); err != nil {
			return err
		}
	}
	if len(c.Gloss.Bezier) != 4 {
		return fmt.Errorf("gloss.bezier needs 4 control values, got %d", len(c.Gloss.Bezier))
	}

	slots := 0
	for _, w := range c.Content.Verse {
		if w.Slot {
			slots++
		}
	}
	if slots != 1 {
		return fmt.Errorf("content.verse must contain exactly one slot, got %d", slots)
	}

	if _, err := c.Colors.Palette(); err != nil {
		return err
	}
	return nil
}

// validateCoverage 轨道至少两个不同位置且覆盖 [0,1]
func validateCoverage(name string, keys []KeyframeConfig) error {
	if len(keys) < 2 {
		return fmt.Errorf("%s needs at least 2 keyframes", name)
	}
	lo, hi := keys[0].At, keys[0].At
	for _, k := range keys {
		if len(k.Values) > animation.ChannelCount {
			return fmt.Errorf("%s: keyframe at %v has %d values (max %d)", name, k.At, len(k.Values), animation.ChannelCount)
		}
		if k.At < lo {
			lo = k.At
		}
		if k.At > hi {
			hi = k.At
		}
	}
	if lo > 0 || hi < 1 {
		return fmt.Errorf("%s must cover [0,1], covers [%v,%v]", name, lo, hi)
	}
	return nil
}

// toKeyframes 把配置转换为动画关键帧；缺省通道补 0，NaN 通道标记为未设置
func toKeyframes(keys []KeyframeConfig) []animation.Keyframe {
	out := make([]animation.Keyframe, 0, len(keys))
	for _, k := range keys {
		frame := animation.Keyframe{At: k.At}
		for i, x := range k.Values {
			if math.IsNaN(x) {
				frame.Skip |= 1 << uint(i)
				continue
			}
			frame.Values[i] = x
		}
		out = append(out, frame)
	}
	return out
}

// BuildTrack 构建指定名称的场景轨道
func (c *SceneConfig) BuildTrack(name string) (*animation.Track, error) {
	keys, ok := c.Tracks[name]
	if !ok {
		return nil, fmt.Errorf("track %q not configured", name)
	}
	return animation.NewTrack(name, toKeyframes(keys))
}

// BuildGlossTracks 构建释义显现轨道（单词、标题）
// 时间曲线作用于每一段关键帧区间内部，与 CSS animation-timing-function 相同
func (c *SceneConfig) BuildGlossTracks() (word, title *animation.Track, err error) {
	timing := c.GlossTiming()
	word, err = animation.NewTrack("gloss.word", toKeyframes(c.Gloss.Word), animation.WithEasing(timing))
	if err != nil {
		return nil, nil, err
	}
	title, err = animation.NewTrack("gloss.title", toKeyframes(c.Gloss.Title), animation.WithEasing(timing))
	if err != nil {
		return nil, nil, err
	}
	return word, title, nil
}

// GlossTiming 释义显现的时间曲线
func (c *SceneConfig) GlossTiming() utils.EasingFunc {
	b := c.Gloss.Bezier
	return utils.CubicBezier(b[0], b[1], b[2], b[3])
}
