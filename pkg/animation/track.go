// Package animation 提供基于进度值的关键帧动画
//
// 所有求值函数都是纯函数：结果只取决于静态关键帧表和查询进度，
// 可以在每一帧安全调用。
package animation

import (
	"fmt"
	"sort"

	"github.com/decker502/qohelet/pkg/utils"
)

// Channel 关键帧通道索引
type Channel int

const (
	// ChannelOpacity 不透明度
	ChannelOpacity Channel = iota
	// ChannelScale 缩放
	ChannelScale
	// ChannelOffsetY 垂直位移（像素）
	ChannelOffsetY
	// ChannelReserved 保留通道，目前所有轨道都写 0
	ChannelReserved

	// ChannelCount 每个关键帧的通道数量
	ChannelCount = 4
)

// Values 一个关键帧上所有通道的取值
type Values [ChannelCount]float64

// Keyframe 单个控制点：进度位置 -> 通道取值
type Keyframe struct {
	At     float64
	Values Values
	// Skip 本关键帧未设置的通道（按 1<<Channel 置位），零值表示所有通道都有值
	// 未设置的通道在前后两个设置了它的关键帧之间插值
	Skip uint8
}

// Has 关键帧是否设置了通道 ch
func (k Keyframe) Has(ch Channel) bool {
	return k.Skip&(1<<uint(ch)) == 0
}

// Track 稀疏关键帧轨道
// 创建后不可修改；关键帧按位置升序排列且位置互不相同
type Track struct {
	name   string
	keys   []Keyframe
	easing utils.EasingFunc
	// sparse 至少一个关键帧缺少某些通道
	sparse bool
}

// TrackOption 轨道构造选项
type TrackOption func(*Track)

// WithEasing 指定相邻关键帧之间的缓动函数（默认 EaseInOutQuad）
func WithEasing(fn utils.EasingFunc) TrackOption {
	return func(t *Track) {
		if fn != nil {
			t.easing = fn
		}
	}
}

// NewTrack 创建关键帧轨道
// 关键帧会被复制并按位置排序一次；位置重复或为空时返回错误
func NewTrack(name string, keys []Keyframe, opts ...TrackOption) (*Track, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("track %q: no keyframes", name)
	}

	sorted := make([]Keyframe, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].At == sorted[i-1].At {
			return nil, fmt.Errorf("track %q: duplicate keyframe at %v", name, sorted[i].At)
		}
	}

	sparse := false
	for ch := Channel(0); ch < ChannelCount; ch++ {
		set := 0
		for _, k := range sorted {
			if k.Has(ch) {
				set++
			}
		}
		if set == 0 {
			return nil, fmt.Errorf("track %q: channel %d has no keyframe", name, ch)
		}
		if set < len(sorted) {
			sparse = true
		}
	}

	t := &Track{
		name:   name,
		keys:   sorted,
		easing: utils.EaseInOutQuad,
		sparse: sparse,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// MustTrack 与 NewTrack 相同，出错时 panic（仅用于静态表）
func MustTrack(name string, keys []Keyframe, opts ...TrackOption) *Track {
	t, err := NewTrack(name, keys, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name 返回轨道名称
func (t *Track) Name() string {
	return t.name
}

// Keys 返回排序后的关键帧副本
func (t *Track) Keys() []Keyframe {
	out := make([]Keyframe, len(t.keys))
	copy(out, t.keys)
	return out
}

// Domain 返回轨道覆盖的进度区间 [min, max]
func (t *Track) Domain() (lo, hi float64) {
	return t.keys[0].At, t.keys[len(t.keys)-1].At
}

// bracket 查找包含 p 的相邻关键帧 (lo, hi) 以及局部进度
// p 落在所有关键帧之外时，退化为首尾关键帧并把局部进度限制到 [0,1]
func (t *Track) bracket(p float64) (lo, hi Keyframe, local float64) {
	lo = t.keys[0]
	hi = t.keys[len(t.keys)-1]
	found := false
	for j := 0; j < len(t.keys)-1; j++ {
		if p >= t.keys[j].At && p <= t.keys[j+1].At {
			lo, hi = t.keys[j], t.keys[j+1]
			found = true
			break
		}
	}

	span := hi.At - lo.At
	if span == 0 {
		span = 1
	}
	local = (p - lo.At) / span
	if !found {
		local = utils.Clamp01(local)
	}
	return lo, hi, local
}

// evaluateSparse 只在设置了通道 ch 的关键帧之间插值
// p 在这些关键帧之外时保持最近一个关键帧的值
func (t *Track) evaluateSparse(p float64, ch Channel) float64 {
	var lo, hi *Keyframe
	for i := range t.keys {
		k := &t.keys[i]
		if !k.Has(ch) {
			continue
		}
		if k.At <= p {
			lo = k
		}
		if k.At >= p {
			hi = k
			break
		}
	}
	switch {
	case lo == nil:
		return hi.Values[ch]
	case hi == nil || hi.At == lo.At:
		return lo.Values[ch]
	}
	local := (p - lo.At) / (hi.At - lo.At)
	return utils.Lerp(lo.Values[ch], hi.Values[ch], t.easing(local))
}

// Evaluate 求轨道在进度 p 处指定通道的值
// p 应已被限制在 [0,1]
func (t *Track) Evaluate(p float64, ch Channel) float64 {
	if t.sparse {
		return t.evaluateSparse(p, ch)
	}
	lo, hi, local := t.bracket(p)
	return utils.Lerp(lo.Values[ch], hi.Values[ch], t.easing(local))
}

// Sample 一次求出所有通道的值
func (t *Track) Sample(p float64) Values {
	if t.sparse {
		var out Values
		for i := range out {
			out[i] = t.evaluateSparse(p, Channel(i))
		}
		return out
	}
	lo, hi, local := t.bracket(p)
	e := t.easing(local)
	var out Values
	for i := range out {
		out[i] = utils.Lerp(lo.Values[i], hi.Values[i], e)
	}
	return out
}
