package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 参考：https://easings.net/

// EasingFunc 缓动函数类型
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
// 返回值 = 输入值（匀速运动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseInOutQuad 二次方缓入缓出
// 特点：开始慢，中间快，结束慢；关于 t=0.5 中心对称
// 公式：
//
//	t < 0.5: f(t) = 2t²
//	t >= 0.5: f(t) = 1 - (-2t + 2)² / 2
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b；t 不做限制，调用方负责 clamp
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi] 范围内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 将 v 限制在 [0, 1] 范围内
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// CubicBezier 返回与 CSS cubic-bezier(x1, y1, x2, y2) 等价的缓动函数
// 端点固定为 (0,0) 和 (1,1)；x1、x2 会被限制在 [0,1] 以保证曲线在 x 上单调
//
// 求解方式：先用牛顿迭代求参数 u 使 x(u)=t，导数过小时退回二分法
func CubicBezier(x1, y1, x2, y2 float64) EasingFunc {
	x1 = Clamp01(x1)
	x2 = Clamp01(x2)

	// 多项式系数：B(u) = ((a*u + b)*u + c)*u
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(u float64) float64 { return ((ax*u+bx)*u + cx) * u }
	sampleY := func(u float64) float64 { return ((ay*u+by)*u + cy) * u }
	slopeX := func(u float64) float64 { return (3*ax*u+2*bx)*u + cx }

	const epsilon = 1e-7

	solve := func(t float64) float64 {
		u := t
		for i := 0; i < 8; i++ {
			x := sampleX(u) - t
			if math.Abs(x) < epsilon {
				return u
			}
			d := slopeX(u)
			if math.Abs(d) < 1e-6 {
				break
			}
			u -= x / d
		}

		lo, hi := 0.0, 1.0
		u = t
		for i := 0; i < 64 && hi-lo > epsilon; i++ {
			x := sampleX(u)
			if math.Abs(x-t) < epsilon {
				return u
			}
			if x < t {
				lo = u
			} else {
				hi = u
			}
			u = (lo + hi) / 2
		}
		return u
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return sampleY(solve(t))
	}
}
