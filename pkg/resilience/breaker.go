package resilience

import (
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Rule 描述一个熔断器的触发条件。
type Rule struct {
	// Half-Open 状态允许通过的探测请求数（0 时库会当作 1）
	MaxRequests uint32

	// Closed 状态计数窗口
	Interval time.Duration

	// Open 状态持续时间，到期进入 Half-Open
	Timeout time.Duration

	// 触发熔断条件（两种之一即可）
	TripConsecutiveFailures uint32  // 连续失败阈值
	TripFailureRate         float64 // 失败率阈值（0~1）
	TripMinRequests         uint32  // 失败率计算的最小样本数

	// IsSuccessful 决定哪些错误计入熔断失败。nil 时任何 error 都算失败。
	// HTTP 场景下 4xx 属于业务可预期错误，不代表依赖不健康，调用方
	// 应该在这里把它们放行。
	IsSuccessful func(err error) bool
}

func (r Rule) withDefaults() Rule {
	if r.MaxRequests == 0 {
		r.MaxRequests = 5
	}
	if r.Timeout <= 0 {
		r.Timeout = 3 * time.Second
	}
	if r.Interval <= 0 {
		r.Interval = 10 * time.Second
	}
	if r.TripConsecutiveFailures == 0 && r.TripFailureRate == 0 {
		r.TripConsecutiveFailures = 10
	}
	if r.TripMinRequests == 0 {
		r.TripMinRequests = 20
	}
	return r
}

// Group 按 key（一般是 "METHOD path"）懒创建熔断器。
type Group[T any] struct {
	mu sync.RWMutex
	m  map[string]*gobreaker.CircuitBreaker[T]

	rule Rule
}

func NewGroup[T any](rule Rule) *Group[T] {
	return &Group[T]{
		m:    make(map[string]*gobreaker.CircuitBreaker[T], 16),
		rule: rule.withDefaults(),
	}
}

func (g *Group[T]) Get(key string) *gobreaker.CircuitBreaker[T] {
	// 快路径：读锁
	g.mu.RLock()
	cb := g.m[key]
	g.mu.RUnlock()
	if cb != nil {
		return cb
	}

	// 慢路径：创建
	g.mu.Lock()
	defer g.mu.Unlock()

	if cb = g.m[key]; cb != nil {
		return cb
	}

	rule := g.rule
	st := gobreaker.Settings{
		Name:        key,
		MaxRequests: rule.MaxRequests,
		Interval:    rule.Interval,
		Timeout:     rule.Timeout,

		ReadyToTrip: func(c gobreaker.Counts) bool {
			// 1) 连续失败阈值优先（最直观）
			if rule.TripConsecutiveFailures > 0 && c.ConsecutiveFailures >= rule.TripConsecutiveFailures {
				return true
			}
			// 2) 失败率阈值（适合波动流量）
			if rule.TripFailureRate > 0 && c.Requests >= rule.TripMinRequests {
				failRate := float64(c.TotalFailures) / float64(c.Requests)
				return failRate >= rule.TripFailureRate
			}
			return false
		},

		IsSuccessful: rule.IsSuccessful,
	}

	cb = gobreaker.NewCircuitBreaker[T](st)
	g.m[key] = cb
	return cb
}

// Execute 在 key 对应的熔断器里跑 fn。
func (g *Group[T]) Execute(key string, fn func() (T, error)) (T, error) {
	return g.Get(key).Execute(fn)
}
