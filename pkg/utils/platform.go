//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 桌面端模拟移动模式的环境变量
const MobileEmulateEnv = "QOHELET_MOBILE_EMULATE"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false
// 设置环境变量 QOHELET_MOBILE_EMULATE=1 可在桌面上模拟移动端（只用触摸，不响应鼠标悬停）
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
