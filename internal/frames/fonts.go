// Package frames 离线导出 PNG 帧序列
//
// 不打开窗口：字体由 golang.org/x/image/font/opentype 光栅化，
// 每一帧用独立的场景与字体面并行渲染。
package frames

import (
	"fmt"
	"log"
	"os"

	"github.com/decker502/qohelet/pkg/layout"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fonts 解析后的字体，可在多个 goroutine 之间共享
type Fonts struct {
	Regular *opentype.Font
	Italic  *opentype.Font
	// Hebrew 可能为 nil，此时希伯来文字使用 Regular
	Hebrew *opentype.Font
}

// LoadFonts 加载字体
// latinPath 为空时使用内置 Go 字体；希伯来候选字体按顺序尝试，全部失败时不报错
func LoadFonts(latinPath string, hebrewCandidates []string) (*Fonts, error) {
	f := &Fonts{}
	if latinPath != "" {
		parsed, err := parseFile(latinPath)
		if err != nil {
			return nil, err
		}
		f.Regular, f.Italic = parsed, parsed
	} else {
		var err error
		if f.Regular, err = opentype.Parse(goregular.TTF); err != nil {
			return nil, fmt.Errorf("failed to parse builtin regular font: %w", err)
		}
		if f.Italic, err = opentype.Parse(goitalic.TTF); err != nil {
			return nil, fmt.Errorf("failed to parse builtin italic font: %w", err)
		}
	}

	for _, path := range hebrewCandidates {
		parsed, err := parseFile(path)
		if err != nil {
			log.Printf("[Frames] Hebrew font candidate skipped: %v", err)
			continue
		}
		f.Hebrew = parsed
		log.Printf("[Frames] Using Hebrew font %s", path)
		break
	}
	return f, nil
}

func parseFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return parsed, nil
}

func (f *Fonts) forRole(role layout.FontRole) *opentype.Font {
	switch {
	case role.IsHebrew() && f.Hebrew != nil:
		return f.Hebrew
	case role.IsItalic():
		return f.Italic
	}
	return f.Regular
}

type faceKey struct {
	role layout.FontRole
	size float64
}

// FontSet 单个 goroutine 使用的字体面缓存
// font.Face 不能并发使用，每个渲染任务持有自己的 FontSet
type FontSet struct {
	fonts *Fonts
	faces map[faceKey]font.Face
}

// 确保 FontSet 实现 layout.Measurer
var _ layout.Measurer = (*FontSet)(nil)

// NewFontSet 创建字体面缓存
func NewFontSet(fonts *Fonts) *FontSet {
	return &FontSet{fonts: fonts, faces: make(map[faceKey]font.Face)}
}

// Face 指定角色与像素字号的字体面；创建失败时退回 basicfont
func (fs *FontSet) Face(role layout.FontRole, size float64) font.Face {
	key := faceKey{role: role, size: size}
	if face, ok := fs.faces[key]; ok {
		return face
	}
	face, err := opentype.NewFace(fs.fonts.forRole(role), &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		log.Printf("[Frames] NewFace(%v, %.1f) failed: %v", role, size, err)
		return basicfont.Face7x13
	}
	fs.faces[key] = face
	return face
}

// MeasureText 实现 layout.Measurer
func (fs *FontSet) MeasureText(s string, style layout.TextStyle) layout.Size {
	face := fs.Face(style.Role, style.Size)
	w := float64(font.MeasureString(face, s)) / 64
	return layout.Size{
		W: w + layout.LetterSpacingExtra(s, style.LetterSpacing),
		H: float64(face.Metrics().Height) / 64,
	}
}

// Close 释放所有字体面
func (fs *FontSet) Close() {
	for key, face := range fs.faces {
		face.Close()
		delete(fs.faces, key)
	}
}
