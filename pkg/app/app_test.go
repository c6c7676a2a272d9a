package app

import (
	"testing"

	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/utils"
)

const testConfigPath = "../../data/scene.yaml"

func TestNewAppLayout(t *testing.T) {
	a, err := NewApp(Config{Verbose: true, ConfigPath: testConfigPath})
	if err != nil {
		t.Fatalf("NewApp 失败: %v", err)
	}
	if !a.Scene().Mounted() {
		t.Fatal("NewApp 之后场景应已挂载")
	}
	if w, h := a.WindowSize(); w != 430 || h != 860 {
		t.Errorf("WindowSize = %dx%d, 期望 430x860", w, h)
	}

	w, h := a.Layout(500, 900)
	if w != 500 || h != 900 {
		t.Errorf("Layout 应返回窗口尺寸, 实际 %dx%d", w, h)
	}
	if vw, vh := a.Scene().Layout().Viewport(); vw != 500 || vh != 900 {
		t.Errorf("场景视口 = %vx%v, 期望 500x900", vw, vh)
	}
	if _, ok := a.Scene().Destination(); !ok {
		t.Error("挂载后的 Layout 变化应立即测量目的地")
	}
}

// TestResizeDropsStaleFaces 窗口宽度连续变化时字体缓存不随宽度数量增长
func TestResizeDropsStaleFaces(t *testing.T) {
	a, err := NewApp(Config{Verbose: true, ConfigPath: testConfigPath})
	if err != nil {
		t.Fatalf("NewApp 失败: %v", err)
	}
	for w := 320; w < 720; w += 20 {
		a.Layout(w, 900)
	}
	if n := a.renderer.fonts.CachedFaces(); n == 0 || n > 6 {
		t.Errorf("拖动窗口后缓存字体 = %d, 期望 1..6（每个角色至多一个字号）", n)
	}
}

func TestNewAppErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"配置文件不存在", Config{Verbose: true, ConfigPath: "/nonexistent/scene.yaml"}},
		{"字体文件不存在", Config{Verbose: true, ConfigPath: testConfigPath, FontPath: "/nonexistent/font.ttf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewApp(tt.cfg); err == nil {
				t.Error("应返回错误")
			}
		})
	}
}

func TestNewInputSource(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.InputConfig
		want float64
	}{
		{"使用配置的行高", config.InputConfig{WheelPixelsPerLine: 40}, 40},
		{"未配置时默认 100", config.InputConfig{}, 100},
	}
	for _, tt := range tests {
		if got := NewInputSource(tt.cfg).pixelsPerLine; got != tt.want {
			t.Errorf("%s: pixelsPerLine = %v, 期望 %v", tt.name, got, tt.want)
		}
	}
}

func TestInputSourceMobile(t *testing.T) {
	t.Setenv(utils.MobileEmulateEnv, "1")
	if NewInputSource(config.InputConfig{}).mouse {
		t.Error("移动模式下不应轮询鼠标")
	}
	t.Setenv(utils.MobileEmulateEnv, "")
	if !NewInputSource(config.InputConfig{}).mouse {
		t.Error("桌面模式下应轮询鼠标")
	}
}
