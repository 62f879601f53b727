package health

import (
	"context"
	"strings"
	"sync"
	"testing"
)

func TestRegistryEmpty(t *testing.T) {
	r := NewRegistry()
	healthy, statuses := r.CheckAll(context.Background())
	if !healthy {
		t.Fatal("empty registry should be healthy")
	}
	if len(statuses) != 0 {
		t.Fatalf("expected 0 statuses, got %d", len(statuses))
	}
}

func TestRegistryAllHealthy(t *testing.T) {
	r := NewRegistry()
	r.Register("ledger", func(_ context.Context) Status {
		return Status{Name: "ledger", Healthy: true}
	})
	r.Register("explain", func(_ context.Context) Status {
		return Status{Name: "explain", Healthy: true, Detail: "ok"}
	})

	healthy, statuses := r.CheckAll(context.Background())
	if !healthy {
		t.Fatal("all-healthy registry should report healthy")
	}
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
}

func TestRegistryOneUnhealthy(t *testing.T) {
	r := NewRegistry()
	r.Register("ledger", func(_ context.Context) Status {
		return Status{Name: "ledger", Healthy: true}
	})
	r.Register("explain", func(_ context.Context) Status {
		return Status{Name: "explain", Healthy: false, Detail: "backend unreachable"}
	})

	healthy, statuses := r.CheckAll(context.Background())
	if healthy {
		t.Fatal("registry with unhealthy checker should report unhealthy")
	}
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if statuses[1].Detail != "backend unreachable" {
		t.Fatalf("expected detail 'backend unreachable', got %q", statuses[1].Detail)
	}
}

func TestLedgerChecker(t *testing.T) {
	check := LedgerChecker(func() int { return 42 }, 1000)
	st := check(context.Background())
	if !st.Healthy {
		t.Fatal("ledger checker should always be healthy")
	}
	if st.Detail != "42/1000 records" {
		t.Fatalf("unexpected detail %q", st.Detail)
	}
}

func TestExplainBackendChecker(t *testing.T) {
	st := ExplainBackendChecker(false)(context.Background())
	if !st.Healthy {
		t.Fatal("fallback-only mode is still healthy")
	}
	if !strings.Contains(st.Detail, "fallback") {
		t.Fatalf("unexpected detail %q", st.Detail)
	}

	st = ExplainBackendChecker(true)(context.Background())
	if !strings.Contains(st.Detail, "configured") {
		t.Fatalf("unexpected detail %q", st.Detail)
	}
}

func TestRegistryConcurrentRegisterAndCheck(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup

	// Register concurrently
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			r.Register("checker", func(_ context.Context) Status {
				return Status{Name: "checker", Healthy: true}
			})
		}(i)
	}

	// Check concurrently
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.CheckAll(context.Background())
		}()
	}

	wg.Wait()
}
