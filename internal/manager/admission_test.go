package manager

import (
	"context"
	"testing"
	"time"
)

func TestBeginInference_QueueTimeout(t *testing.T) {
	m, _ := newTestManager(t, ManagerConfig{MaxQueueDepth: 1, MaxWait: 20 * time.Millisecond})
	// First acquire to occupy both queue and gen slots
	rel, err := m.beginInference(context.Background())
	if err != nil {
		t.Fatalf("beginInference first: %v", err)
	}
	defer rel()
	// Second should timeout on queue slot (since depth=1)
	_, err = m.beginInference(context.Background())
	if !IsTooBusy(err) || TooBusyReason(err) != "queue_full" {
		t.Fatalf("expected queue_full tooBusyError, got %v", err)
	}
}

func TestBeginInference_GenTimeout(t *testing.T) {
	m, _ := newTestManager(t, ManagerConfig{MaxQueueDepth: 2, MaxWait: 20 * time.Millisecond})
	// Occupy genCh so acquisitions will block at gen stage
	m.genCh <- struct{}{}
	defer func() { <-m.genCh }()
	_, err := m.beginInference(context.Background())
	if !IsTooBusy(err) || TooBusyReason(err) != "wait_timeout" {
		t.Fatalf("expected wait_timeout tooBusyError, got %v", err)
	}
	if len(m.queueCh) != 0 {
		t.Fatalf("queue slot leaked: %d", len(m.queueCh))
	}
}

func TestBeginInference_CanceledContext(t *testing.T) {
	m, _ := newTestManager(t, ManagerConfig{MaxWait: time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.beginInference(ctx); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBeginInference_CancelWhileWaitingForGen(t *testing.T) {
	m, _ := newTestManager(t, ManagerConfig{MaxQueueDepth: 1, MaxWait: 500 * time.Millisecond})
	m.genCh <- struct{}{}
	defer func() { <-m.genCh }()
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	if _, err := m.beginInference(ctx); err == nil {
		t.Fatalf("expected error due to canceled context while waiting for gen slot")
	}
}

func TestActSerializesRuntimeCalls(t *testing.T) {
	rt := newBlockingRuntime()
	m, _ := newTestManager(t, ManagerConfig{Runtime: rt, MaxQueueDepth: 4, MaxWait: time.Second})
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := m.Act(context.Background(), exampleObs())
			errs <- err
		}()
	}
	<-rt.entered
	select {
	case <-rt.entered:
		t.Fatalf("second call entered the runtime while the first was in flight")
	case <-time.After(30 * time.Millisecond):
	}
	if st := m.Status(context.Background()); st.Inflight != 1 || st.QueueLen != 2 {
		t.Fatalf("unexpected status: inflight=%d queue=%d", st.Inflight, st.QueueLen)
	}
	close(rt.release)
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("Act: %v", err)
		}
	}
}
