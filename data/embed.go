// Package data 内嵌的场景配置
//
// 位于 data/ 目录内，任何入口（桌面、移动端、终端、离线导出）都可以导入，
// 不必把 yaml 复制到各自的包目录。
package data

import "embed"

// FS 以 data/ 目录为根的嵌入文件系统，交给 embedded.Init 使用
//
//go:embed scene.yaml
var FS embed.FS
