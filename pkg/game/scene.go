package game

// Scene 场景接口
// 场景逻辑与具体前端无关：ebiten、终端与离线导出共用同一个场景实现，
// 各前端只负责提供事件源、视口尺寸以及绘制。
type Scene interface {
	// Update 推进一帧，deltaTime 为距上一帧的时间（秒）
	Update(deltaTime float64)

	// Mount 挂载场景：绑定事件源并安排首次测量；重复调用无效果
	Mount(source EventSource)

	// Unmount 卸载场景：解除事件源、取消所有计时器，之后 Update 不再做任何事
	Unmount()

	// Resize 视口尺寸变化（逻辑像素）
	Resize(width, height float64)
}
