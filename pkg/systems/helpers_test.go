package systems

import (
	"math"
	"os"
	"testing"

	"github.com/decker502/qohelet/pkg/config"
	"github.com/decker502/qohelet/pkg/ecs"
	"github.com/decker502/qohelet/pkg/entities"
	"github.com/decker502/qohelet/pkg/layout"
)

const epsilon = 1e-6

// testMeasurer 每个字素簇宽 0.5em，行高 1.2em
var testMeasurer = layout.FixedMeasurer{CharWidth: 0.5, LineHeight: 1.2}

func loadScene(t *testing.T) *config.SceneConfig {
	t.Helper()
	data, err := os.ReadFile("../../data/scene.yaml")
	if err != nil {
		t.Fatalf("读取 data/scene.yaml 失败: %v", err)
	}
	cfg, err := config.LoadSceneConfig(data)
	if err != nil {
		t.Fatalf("LoadSceneConfig 失败: %v", err)
	}
	return cfg
}

type testWorld struct {
	cfg    *config.SceneConfig
	em     *ecs.EntityManager
	ids    entities.VerseEntities
	layout *LayoutSystem
}

// newTestWorld 创建完整场景实体并按给定视口排版
func newTestWorld(t *testing.T, w, h float64) *testWorld {
	t.Helper()
	cfg := loadScene(t)
	em := ecs.NewEntityManager()
	ids, err := entities.NewVerseEntities(em, cfg)
	if err != nil {
		t.Fatalf("NewVerseEntities 失败: %v", err)
	}
	ls := NewLayoutSystem(em, cfg, testMeasurer)
	ls.SetViewport(w, h)
	ls.Reflow()
	return &testWorld{cfg: cfg, em: em, ids: ids, layout: ls}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}
