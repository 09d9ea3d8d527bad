package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
)

func TestGroup_TripsOnConsecutiveFailures(t *testing.T) {
	g := NewGroup[int](Rule{TripConsecutiveFailures: 3, Timeout: time.Minute})

	boom := errors.New("boom")
	for i := 0; i < 3; i++ {
		if _, err := g.Execute("GET v1/x", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
			t.Fatalf("want boom, got %v", err)
		}
	}

	_, err := g.Execute("GET v1/x", func() (int, error) { return 42, nil })
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("breaker should be open, got %v", err)
	}
}

func TestGroup_KeysAreIndependent(t *testing.T) {
	g := NewGroup[int](Rule{TripConsecutiveFailures: 1, Timeout: time.Minute})

	boom := errors.New("boom")
	_, _ = g.Execute("GET v1/a", func() (int, error) { return 0, boom })

	// v1/a 已熔断，v1/b 不受影响
	if _, err := g.Execute("GET v1/a", func() (int, error) { return 0, nil }); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("v1/a should be open, got %v", err)
	}
	got, err := g.Execute("GET v1/b", func() (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Fatalf("v1/b should pass, got %d err=%v", got, err)
	}
}

func TestGroup_IsSuccessfulFilter(t *testing.T) {
	expected := errors.New("expected business error")
	g := NewGroup[int](Rule{
		TripConsecutiveFailures: 1,
		Timeout:                 time.Minute,
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, expected)
		},
	})

	for i := 0; i < 5; i++ {
		_, _ = g.Execute("GET v1/x", func() (int, error) { return 0, expected })
	}

	// 业务可预期错误不计入失败，熔断器保持关闭
	if _, err := g.Execute("GET v1/x", func() (int, error) { return 1, nil }); err != nil {
		t.Fatalf("breaker should stay closed, got %v", err)
	}
}
