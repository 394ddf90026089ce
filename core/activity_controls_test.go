package core

import (
	"context"
	"sync"
	"testing"
	"time"
)

type pruningActivitySink struct {
	memoryActivitySink
	mu         sync.Mutex
	pruneCalls []ActivityRetentionPolicy
}

func (s *pruningActivitySink) Prune(_ context.Context, policy ActivityRetentionPolicy) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneCalls = append(s.pruneCalls, policy)
	return 7, nil
}

type blockingActivitySink struct {
	memoryActivitySink
	release chan struct{}
}

func (s *blockingActivitySink) Record(ctx context.Context, entry DispatchActivityEntry) error {
	<-s.release
	return s.memoryActivitySink.Record(ctx, entry)
}

func waitForEntries(t *testing.T, sink *memoryActivitySink, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(sink.recorded()) >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d entries, got %d", want, len(sink.recorded()))
}

func TestBufferedActivitySinkDrainsToPrimary(t *testing.T) {
	primary := &memoryActivitySink{}
	sink, err := NewBufferedActivitySink(primary, nil, ActivityRetentionPolicy{}, 8)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	defer sink.Close()

	entry := DispatchActivityEntry{Method: "GET", Endpoint: "device/abc", Status: DispatchActivityStatusOK}
	if err := sink.Record(context.Background(), entry); err != nil {
		t.Fatalf("record: %v", err)
	}
	waitForEntries(t, primary, 1)

	recorded := primary.recorded()[0]
	if recorded.CreatedAt.IsZero() {
		t.Fatal("expected created_at stamped on enqueue")
	}
	if recorded.Endpoint != "device/abc" {
		t.Fatalf("unexpected entry %+v", recorded)
	}
}

func TestBufferedActivitySinkFallsBackWhenFull(t *testing.T) {
	primary := &blockingActivitySink{release: make(chan struct{})}
	fallback := &memoryActivitySink{}
	sink, err := NewBufferedActivitySink(primary, fallback, ActivityRetentionPolicy{}, 1)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	defer func() {
		close(primary.release)
		sink.Close()
	}()

	entry := DispatchActivityEntry{Method: "GET", Endpoint: "device/abc", Status: DispatchActivityStatusOK}
	for i := 0; i < 3; i++ {
		if err := sink.Record(context.Background(), entry); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	if len(fallback.recorded()) == 0 {
		t.Fatal("expected overflow to reach the fallback sink")
	}
}

func TestBufferedActivitySinkListDelegates(t *testing.T) {
	primary := &memoryActivitySink{}
	_ = primary.Record(context.Background(), DispatchActivityEntry{
		Method: "DELETE", Endpoint: "device/abc", Status: DispatchActivityStatusError,
	})

	sink, err := NewBufferedActivitySink(primary, nil, ActivityRetentionPolicy{}, 8)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	defer sink.Close()

	page, err := sink.List(context.Background(), DispatchActivityFilter{Status: DispatchActivityStatusError})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected delegated list, got %+v", page)
	}
}

func TestBufferedActivitySinkEnforceRetention(t *testing.T) {
	primary := &pruningActivitySink{}
	policy := ActivityRetentionPolicy{TTL: 24 * time.Hour, RowCap: 100}
	sink, err := NewBufferedActivitySink(primary, nil, policy, 8)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	defer sink.Close()

	deleted, err := sink.EnforceRetention(context.Background())
	if err != nil {
		t.Fatalf("enforce retention: %v", err)
	}
	if deleted != 7 {
		t.Fatalf("expected pruner result, got %d", deleted)
	}
	primary.mu.Lock()
	defer primary.mu.Unlock()
	if len(primary.pruneCalls) != 1 || primary.pruneCalls[0].RowCap != 100 {
		t.Fatalf("expected policy forwarded, got %+v", primary.pruneCalls)
	}
}

func TestBufferedActivitySinkWithoutPruner(t *testing.T) {
	primary := &memoryActivitySink{}
	sink, err := NewBufferedActivitySink(primary, nil, ActivityRetentionPolicy{TTL: time.Hour}, 8)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	defer sink.Close()

	deleted, err := sink.EnforceRetention(context.Background())
	if err != nil {
		t.Fatalf("enforce retention: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("expected no-op without pruner, got %d", deleted)
	}
}

func TestNewBufferedActivitySinkRequiresPrimary(t *testing.T) {
	if _, err := NewBufferedActivitySink(nil, nil, ActivityRetentionPolicy{}, 8); err == nil {
		t.Fatal("expected error for nil primary")
	}
}

func TestBufferedActivitySinkCloseFlushesBuffer(t *testing.T) {
	primary := &memoryActivitySink{}
	sink, err := NewBufferedActivitySink(primary, nil, ActivityRetentionPolicy{}, 8)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}

	for i := 0; i < 5; i++ {
		entry := DispatchActivityEntry{Method: "POST", Endpoint: "device", Status: DispatchActivityStatusOK}
		if err := sink.Record(context.Background(), entry); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	sink.Close()
	if got := len(primary.recorded()); got != 5 {
		t.Fatalf("expected every buffered entry flushed on close, got %d", got)
	}
}
