package gojob

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/apachler/thingsboard-mcp-server/core"

	job "github.com/goliatone/go-job"
	"github.com/goliatone/go-job/queue"
	"github.com/goliatone/go-job/queue/worker"
)

func TestActivityPruneMessageRoundTrip(t *testing.T) {
	policy := core.ActivityRetentionPolicy{
		TTL:    48 * time.Hour,
		RowCap: 10000,
	}

	msg := NewActivityPruneMessage(policy, "prune-2026-08-31")
	if msg.JobID != JobIDActivityPrune {
		t.Fatalf("expected job id %q, got %q", JobIDActivityPrune, msg.JobID)
	}
	if msg.IdempotencyKey != "prune-2026-08-31" {
		t.Fatalf("expected idempotency key, got %q", msg.IdempotencyKey)
	}

	recovered := RetentionPolicyFromMessage(FromExecutionMessage(ToExecutionMessage(msg)))
	if recovered.TTL != policy.TTL {
		t.Fatalf("expected ttl %s, got %s", policy.TTL, recovered.TTL)
	}
	if recovered.RowCap != policy.RowCap {
		t.Fatalf("expected row cap %d, got %d", policy.RowCap, recovered.RowCap)
	}
}

func TestRetentionPolicyFromMessageTolerantDecoding(t *testing.T) {
	msg := &core.JobExecutionMessage{
		JobID: JobIDActivityPrune,
		Parameters: map[string]any{
			"ttl_seconds": float64(3600),
			"row_cap":     "250",
		},
	}
	policy := RetentionPolicyFromMessage(msg)
	if policy.TTL != time.Hour {
		t.Fatalf("expected ttl 1h from float seconds, got %s", policy.TTL)
	}
	if policy.RowCap != 250 {
		t.Fatalf("expected row cap 250 from string, got %d", policy.RowCap)
	}

	if got := RetentionPolicyFromMessage(nil); got.TTL != 0 || got.RowCap != 0 {
		t.Fatalf("expected zero policy for nil message, got %+v", got)
	}
}

func TestEnqueueAndDequeueAdapters(t *testing.T) {
	ctx := context.Background()
	enqueuer := &stubQueueEnqueuer{}
	enqueueAdapter := NewEnqueuerAdapter(enqueuer)

	msg := NewActivityPruneMessage(core.ActivityRetentionPolicy{TTL: time.Hour}, "idem-prune")
	if err := enqueueAdapter.Enqueue(ctx, msg); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if enqueuer.last == nil || enqueuer.last.JobID != JobIDActivityPrune {
		t.Fatalf("expected mapped go-job message")
	}

	dequeuer := &stubQueueDequeuer{delivery: &stubQueueDelivery{msg: enqueuer.last}}
	dequeueAdapter := NewDequeuerAdapter(dequeuer, RetryPolicy{})
	delivery, err := dequeueAdapter.Dequeue(ctx)
	if err != nil {
		t.Fatalf("dequeue: %v", err)
	}
	got := delivery.Message()
	if got == nil || got.JobID != JobIDActivityPrune {
		t.Fatalf("expected mapped dispatch message")
	}
	if err := delivery.Ack(ctx); err != nil {
		t.Fatalf("ack: %v", err)
	}
	if !dequeuer.delivery.(*stubQueueDelivery).acked {
		t.Fatalf("expected ack on underlying delivery")
	}
}

func TestNackRetryPolicyBoundaries(t *testing.T) {
	ctx := context.Background()
	rawDelivery := &stubQueueDelivery{
		msg: &job.ExecutionMessage{
			JobID: JobIDActivityPrune,
		},
	}
	adapter := NewDeliveryAdapter(rawDelivery, RetryPolicy{
		MaxAttempts:     3,
		MaxDelay:        10 * time.Second,
		DeadLetterOnMax: true,
	})

	if err := adapter.NackForAttempt(ctx, core.JobNackOptions{
		Delay:   30 * time.Second,
		Requeue: true,
		Reason:  "transient",
	}, 1); err != nil {
		t.Fatalf("nack attempt 1: %v", err)
	}
	if rawDelivery.nackOpts.Delay != 10*time.Second {
		t.Fatalf("expected delay to be bounded, got %s", rawDelivery.nackOpts.Delay)
	}
	if rawDelivery.nackOpts.Disposition != queue.NackDispositionRetry {
		t.Fatalf("expected retry disposition before max attempts, got %q", rawDelivery.nackOpts.Disposition)
	}

	if err := adapter.NackForAttempt(ctx, core.JobNackOptions{
		Delay:   time.Second,
		Requeue: true,
		Reason:  "still failing",
	}, 3); err != nil {
		t.Fatalf("nack max attempt: %v", err)
	}
	if rawDelivery.nackOpts.Disposition != queue.NackDispositionDeadLetter {
		t.Fatalf("expected dead-letter disposition on max attempts, got %q", rawDelivery.nackOpts.Disposition)
	}
}

func TestNackOptionsDispositionMapping(t *testing.T) {
	cases := []struct {
		name string
		in   core.JobNackOptions
		want queue.NackDisposition
	}{
		{"requeue maps to retry", core.JobNackOptions{Requeue: true, Delay: time.Second}, queue.NackDispositionRetry},
		{"dead letter wins over requeue", core.JobNackOptions{Requeue: true, DeadLetter: true}, queue.NackDispositionDeadLetter},
		{"neither maps to failed", core.JobNackOptions{Reason: "gave up"}, queue.NackDispositionFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := ToNackOptions(tc.in)
			if mapped.Disposition != tc.want {
				t.Fatalf("expected disposition %q, got %q", tc.want, mapped.Disposition)
			}
			if err := queue.ValidateNackOptions(mapped); err != nil {
				t.Fatalf("mapped options must validate: %v", err)
			}
			back := FromNackOptions(mapped)
			if back.Requeue != (tc.want == queue.NackDispositionRetry) {
				t.Fatalf("expected requeue round trip for %q", tc.want)
			}
			if back.DeadLetter != (tc.want == queue.NackDispositionDeadLetter) {
				t.Fatalf("expected dead-letter round trip for %q", tc.want)
			}
		})
	}

	canceled := FromNackOptions(queue.NackOptions{Disposition: queue.NackDispositionCanceled, Reason: "shutdown"})
	if canceled.Requeue || canceled.DeadLetter {
		t.Fatalf("expected canceled disposition to land as terminal nack, got %+v", canceled)
	}
}

func TestWorkerHookAdapterEventMapping(t *testing.T) {
	now := time.Now().UTC().Add(-time.Second)
	coreHook := &capturingHook{}
	adapter := NewWorkerHookAdapter(coreHook)

	evt := worker.Event{
		Message: &job.ExecutionMessage{
			JobID:          JobIDActivityPrune,
			IdempotencyKey: "idem-prune",
		},
		Attempt:   2,
		Delay:     5 * time.Second,
		Err:       errors.New("retry"),
		StartedAt: now,
		Duration:  250 * time.Millisecond,
	}

	adapter.OnRetry(context.Background(), evt)
	if coreHook.last.Message == nil {
		t.Fatalf("expected worker message mapping")
	}
	if coreHook.last.Message.JobID != JobIDActivityPrune {
		t.Fatalf("expected job id mapping, got %q", coreHook.last.Message.JobID)
	}
	if coreHook.last.Attempt != 2 {
		t.Fatalf("expected attempt 2, got %d", coreHook.last.Attempt)
	}
	if coreHook.last.Delay != 5*time.Second {
		t.Fatalf("expected delay 5s, got %s", coreHook.last.Delay)
	}
	if coreHook.last.Duration != 250*time.Millisecond {
		t.Fatalf("expected duration mapping")
	}
	if coreHook.last.StartedAt.IsZero() {
		t.Fatalf("expected started_at mapping")
	}
	if coreHook.last.Err == nil || coreHook.last.Err.Error() != "retry" {
		t.Fatalf("expected error mapping")
	}
}

type stubQueueEnqueuer struct {
	last *job.ExecutionMessage
}

func (s *stubQueueEnqueuer) Enqueue(_ context.Context, msg *job.ExecutionMessage) (queue.EnqueueReceipt, error) {
	s.last = msg
	return queue.EnqueueReceipt{DispatchID: "dispatch-1", EnqueuedAt: time.Now().UTC()}, nil
}

type stubQueueDequeuer struct {
	delivery queue.Delivery
}

func (s *stubQueueDequeuer) Dequeue(context.Context) (queue.Delivery, error) {
	return s.delivery, nil
}

type stubQueueDelivery struct {
	msg      *job.ExecutionMessage
	acked    bool
	nackOpts queue.NackOptions
}

func (s *stubQueueDelivery) Message() *job.ExecutionMessage {
	return s.msg
}

func (s *stubQueueDelivery) Ack(context.Context) error {
	s.acked = true
	return nil
}

func (s *stubQueueDelivery) Nack(_ context.Context, opts queue.NackOptions) error {
	s.nackOpts = opts
	return nil
}

type capturingHook struct {
	last core.JobWorkerEvent
}

func (h *capturingHook) OnStart(context.Context, core.JobWorkerEvent)   {}
func (h *capturingHook) OnSuccess(context.Context, core.JobWorkerEvent) {}
func (h *capturingHook) OnFailure(context.Context, core.JobWorkerEvent) {}
func (h *capturingHook) OnRetry(_ context.Context, event core.JobWorkerEvent) {
	h.last = event
}
