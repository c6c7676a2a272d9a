package app

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/decker502/qohelet/pkg/layout"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
)

type faceKey struct {
	role layout.FontRole
	size float64
}

// FontManager 管理文字字体
//
// 拉丁文字默认使用内置的 Go 字体（正体与斜体），可以用 --font 指定其他字体文件；
// 希伯来文字使用第一个能加载的候选字体，并以拉丁字体兜底（text.MultiFace）。
// 字体按 (角色, 字号) 缓存。
//
// FontManager 同时实现 layout.Measurer，排版与绘制使用同一套字体。
// 视口宽度变化时 LayoutSystem 通过 layout.Resetter 清空字体缓存。
type FontManager struct {
	regular *text.GoTextFaceSource
	italic  *text.GoTextFaceSource
	hebrew  *text.GoTextFaceSource

	faces map[faceKey]text.Face
}

// 确保 FontManager 实现 layout.Measurer 与 layout.Resetter
var (
	_ layout.Measurer = (*FontManager)(nil)
	_ layout.Resetter = (*FontManager)(nil)
)

// NewFontManager 创建字体管理器
//
// Parameters:
//   - latinPath: 拉丁字体文件，为空时使用内置 Go 字体
//   - hebrewCandidates: 希伯来字体候选路径，按顺序尝试，全部失败时使用拉丁字体
func NewFontManager(latinPath string, hebrewCandidates []string) (*FontManager, error) {
	fm := &FontManager{faces: make(map[faceKey]text.Face)}

	if latinPath != "" {
		source, err := loadFontFile(latinPath)
		if err != nil {
			return nil, err
		}
		fm.regular = source
		fm.italic = source
	} else {
		var err error
		if fm.regular, err = newFaceSource(goregular.TTF); err != nil {
			return nil, fmt.Errorf("failed to load builtin regular font: %w", err)
		}
		if fm.italic, err = newFaceSource(goitalic.TTF); err != nil {
			return nil, fmt.Errorf("failed to load builtin italic font: %w", err)
		}
	}

	for _, path := range hebrewCandidates {
		source, err := loadFontFile(path)
		if err != nil {
			log.Printf("[FontManager] Hebrew font candidate skipped: %v", err)
			continue
		}
		fm.hebrew = source
		log.Printf("[FontManager] Using Hebrew font %s", path)
		break
	}
	if fm.hebrew == nil {
		log.Printf("[FontManager] No Hebrew font found, falling back to the Latin face")
	}

	return fm, nil
}

func newFaceSource(data []byte) (*text.GoTextFaceSource, error) {
	return text.NewGoTextFaceSource(bytes.NewReader(data))
}

func loadFontFile(path string) (*text.GoTextFaceSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
	}
	source, err := newFaceSource(data)
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
	}
	return source, nil
}

// HasHebrew 是否加载了希伯来字体
func (fm *FontManager) HasHebrew() bool {
	return fm.hebrew != nil
}

// Face 返回指定角色与字号的字体（带缓存）
func (fm *FontManager) Face(role layout.FontRole, size float64) text.Face {
	key := faceKey{role: role, size: size}
	if face, ok := fm.faces[key]; ok {
		return face
	}

	var face text.Face
	switch {
	case role.IsHebrew():
		latin := &text.GoTextFace{
			Source:    fm.regular,
			Size:      size,
			Direction: text.DirectionRightToLeft,
			Language:  language.Hebrew,
		}
		face = latin
		if fm.hebrew != nil {
			he := &text.GoTextFace{
				Source:    fm.hebrew,
				Size:      size,
				Direction: text.DirectionRightToLeft,
				Language:  language.Hebrew,
			}
			multi, err := text.NewMultiFace(he, latin)
			if err != nil {
				log.Printf("[FontManager] NewMultiFace failed: %v", err)
				face = he
			} else {
				face = multi
			}
		}
	case role.IsItalic():
		face = &text.GoTextFace{Source: fm.italic, Size: size, Direction: text.DirectionLeftToRight}
	default:
		face = &text.GoTextFace{Source: fm.regular, Size: size, Direction: text.DirectionLeftToRight}
	}

	fm.faces[key] = face
	return face
}

// LineHeight 字体的单行高度
func LineHeight(face text.Face) float64 {
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// MeasureText 实现 layout.Measurer
func (fm *FontManager) MeasureText(s string, style layout.TextStyle) layout.Size {
	face := fm.Face(style.Role, style.Size)
	w, _ := text.Measure(s, face, 0)
	return layout.Size{
		W: w + layout.LetterSpacingExtra(s, style.LetterSpacing),
		H: LineHeight(face),
	}
}

// Reset 丢弃所有缓存的字体（字号随视口宽度连续变化，旧字号不会再用到）
func (fm *FontManager) Reset() {
	fm.faces = make(map[faceKey]text.Face)
}

// CachedFaces 已缓存的字体数量
func (fm *FontManager) CachedFaces() int {
	return len(fm.faces)
}
