package daemon_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/cultura/pkg/daemon"
)

var _ = Describe("Scheduler", func() {
	It("runs immediately and then on every tick", func() {
		var runs atomic.Int32
		s := &daemon.Scheduler{
			Interval: 20 * time.Millisecond,
			Update: func(context.Context) error {
				runs.Add(1)
				return nil
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.Run(ctx) }()

		Eventually(runs.Load).Should(BeNumerically(">=", 3))
		cancel()
		Eventually(done).Should(Receive(BeNil()))
	})

	It("reports each run outcome", func() {
		var mu sync.Mutex
		var outcomes []error
		boom := errors.New("boom")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		s := &daemon.Scheduler{
			Interval: time.Hour,
			Update:   func(context.Context) error { return boom },
			OnResult: func(at time.Time, err error) {
				mu.Lock()
				defer mu.Unlock()
				outcomes = append(outcomes, err)
			},
		}
		go func() { _ = s.Run(ctx) }()

		Eventually(func() []error {
			mu.Lock()
			defer mu.Unlock()
			return append([]error(nil), outcomes...)
		}).Should(ConsistOf(MatchError(boom)))
	})

	It("does not run with an already cancelled context", func() {
		var runs atomic.Int32
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s := &daemon.Scheduler{
			Interval: time.Millisecond,
			Update: func(context.Context) error {
				runs.Add(1)
				return nil
			},
		}
		Expect(s.Run(ctx)).To(Succeed())
		Expect(runs.Load()).To(BeZero())
	})

	It("rejects invalid schedulers", func() {
		Expect((&daemon.Scheduler{Interval: time.Second}).Run(context.Background())).
			To(MatchError("scheduler has no update func"))
		Expect((&daemon.Scheduler{Update: func(context.Context) error { return nil }}).Run(context.Background())).
			To(MatchError("scheduler interval must be positive"))
	})
})
