package systems

import (
	"testing"

	"github.com/decker502/qohelet/pkg/animation"
	"github.com/decker502/qohelet/pkg/components"
	"github.com/decker502/qohelet/pkg/ecs"
)

func style(t *testing.T, em *ecs.EntityManager, id ecs.EntityID) *components.StyleComponent {
	t.Helper()
	s, ok := ecs.GetComponent[*components.StyleComponent](em, id)
	if !ok {
		t.Fatalf("实体 %d 没有 StyleComponent", id)
	}
	return s
}

func TestKeyframeSystem(t *testing.T) {
	w := newTestWorld(t, 400, 800)
	sys := NewKeyframeSystem(w.em)

	tests := []struct {
		name        string
		p           float64
		group       func() ecs.EntityID
		opacity     float64
		scale       float64
		offsetY     float64
		interactive bool
	}{
		{"英文标题 p=0", 0, func() ecs.EntityID { return w.ids.TitleEnGroup }, 1, 1, 0, true},
		{"英文标题 p=1", 1, func() ecs.EntityID { return w.ids.TitleEnGroup }, 0, 0.94, -75, false},
		{"英文标题 p=0.5", 0.5, func() ecs.EntityID { return w.ids.TitleEnGroup }, 1, 1, -55, true},
		{"经文 p=0", 0, func() ecs.EntityID { return w.ids.VerseGroup }, 0, 1.05, 40, false},
		{"经文 p=0.75 正好 0.5 不可交互", 0.75, func() ecs.EntityID { return w.ids.VerseGroup }, 0.5, 1.01, 10, false},
		{"经文 p=1", 1, func() ecs.EntityID { return w.ids.VerseGroup }, 1, 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys.Update(tt.p)
			s := style(t, w.em, tt.group())
			if !near(s.Opacity, tt.opacity) || !near(s.Scale, tt.scale) || !near(s.TranslateY, tt.offsetY) {
				t.Errorf("样式 = (%v, %v, %v), 期望 (%v, %v, %v)", s.Opacity, s.Scale, s.TranslateY, tt.opacity, tt.scale, tt.offsetY)
			}
			if s.Interactive != tt.interactive {
				t.Errorf("Interactive = %v, 期望 %v", s.Interactive, tt.interactive)
			}
		})
	}
}

func TestJourneySystem(t *testing.T) {
	w := newTestWorld(t, 400, 800)
	sys := NewJourneySystem(w.em)
	dest := animation.Destination{X: -30, Y: 120, Scale: 0.44, SlotWidth: 50}

	tests := []struct {
		name    string
		p       float64
		opacity float64
		scale   float64
		x, y    float64
	}{
		{"起点", 0, 0, 1.1, 0, 28},
		{"显现结束", 0.2, 1, 1, 0, 20},
		{"停留结束", 0.5, 1, 1, 0, 15},
		{"飞行中点", 0.75, 1, 0.72, -15, 67.5},
		{"到达", 1, 1, 0.44, -30, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys.Update(tt.p, dest)
			s := style(t, w.em, w.ids.TitleHeGroup)
			if !near(s.Opacity, tt.opacity) || !near(s.Scale, tt.scale) || !near(s.TranslateX, tt.x) || !near(s.TranslateY, tt.y) {
				t.Errorf("样式 = %+v, 期望 opacity=%v scale=%v x=%v y=%v", *s, tt.opacity, tt.scale, tt.x, tt.y)
			}
		})
	}
}

func TestSlotSystem(t *testing.T) {
	w := newTestWorld(t, 400, 800)
	sys := NewSlotSystem(w.em)
	dest := animation.Destination{SlotWidth: 80}
	slot, _ := ecs.GetComponent[*components.SlotComponent](w.em, w.ids.Slot)

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 0},
		{0.6, 0},
		{0.8, 40},
		{1, 80},
	}
	for _, tt := range tests {
		sys.Update(tt.p, dest)
		if !near(slot.Width, tt.want) {
			t.Errorf("p=%v: 占位宽度 = %v, 期望 %v", tt.p, slot.Width, tt.want)
		}
	}
}
