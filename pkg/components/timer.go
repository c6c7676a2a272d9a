package components

// TimerComponent 一次性计时器组件
// 用于处理需要时间延迟的行为（如滚轮停止后的吸附、挂载后的首次测量）
//
// 计时器由帧时间驱动（Update 传入 deltaTime），不依赖系统时钟，
// 因此同一输入序列在测试中总能得到相同结果。
type TimerComponent struct {
	Name        string  // 计时器名称，如 "wheel_idle"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsActive    bool    // 计时器是否正在计时
}

// Start 以指定时长（秒）启动或重新启动计时器
func (t *TimerComponent) Start(duration float64) {
	t.TargetTime = duration
	t.CurrentTime = 0
	t.IsActive = true
}

// Stop 取消计时器；已取消的计时器不会再触发
func (t *TimerComponent) Stop() {
	t.IsActive = false
	t.CurrentTime = 0
}

// Update 推进计时器
// 返回 true 表示计时器在本次调用中到期（每次 Start 最多触发一次）
func (t *TimerComponent) Update(deltaTime float64) bool {
	if !t.IsActive {
		return false
	}
	t.CurrentTime += deltaTime
	if t.CurrentTime >= t.TargetTime {
		t.IsActive = false
		return true
	}
	return false
}
