package frames

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const modulePath = "github.com/decker502/qohelet"

// localImports 返回目录下非测试源文件的全部导入
func localImports(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("读取 %s 失败: %v", dir, err)
	}
	fset := token.NewFileSet()
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("解析 %s 失败: %v", name, err)
		}
		for _, imp := range f.Imports {
			path, _ := strconv.Unquote(imp.Path.Value)
			out = append(out, path)
		}
	}
	return out
}

// TestHeadlessFrontendsAvoidEbiten 离线导出与终端前端的依赖闭包中不能出现 ebiten
func TestHeadlessFrontendsAvoidEbiten(t *testing.T) {
	root := filepath.Join("..", "..")
	queue := []string{"internal/frames", "internal/tty", "cmd/qohelet-frames", "cmd/qohelet-tty"}
	seen := make(map[string]bool)

	for len(queue) > 0 {
		pkg := queue[0]
		queue = queue[1:]
		if seen[pkg] {
			continue
		}
		seen[pkg] = true

		for _, imp := range localImports(t, filepath.Join(root, filepath.FromSlash(pkg))) {
			if strings.HasPrefix(imp, "github.com/hajimehoshi/ebiten") {
				t.Errorf("%s 导入了 %s", pkg, imp)
			}
			if rest, ok := strings.CutPrefix(imp, modulePath+"/"); ok {
				queue = append(queue, rest)
			}
		}
	}
	if !seen["pkg/game"] || !seen["pkg/scenes"] {
		t.Errorf("依赖闭包应包含 pkg/game 与 pkg/scenes: %v", seen)
	}
}
