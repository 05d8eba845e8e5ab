package manager

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"policyd/internal/runtime"
)

func TestEventPublisher_ActEmitsEvents(t *testing.T) {
	m, _ := newTestManager(t, ManagerConfig{})
	pub := NewMemoryPublisher()
	m.SetEventPublisher(pub)
	if _, err := m.Act(context.Background(), exampleObs()); err != nil {
		t.Fatalf("Act: %v", err)
	}
	evts := pub.Events()
	want := map[string]bool{
		"infer_start": false,
		"act_done":    false,
	}
	for _, e := range evts {
		if _, ok := want[e.Name]; ok {
			want[e.Name] = true
		}
		if e.SequenceID == "" {
			t.Fatalf("event %q without sequence id", e.Name)
		}
	}
	for k, v := range want {
		if !v {
			t.Fatalf("expected event %q to be published; got events: %+v", k, evts)
		}
	}
}

func TestLogPublisher_WarnsOnErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)
	m, _ := newTestManager(t, ManagerConfig{Runtime: runtime.NewFake(4, 4), Publisher: NewLogPublisher(logger)})
	if _, err := m.Act(context.Background(), exampleObs()); err == nil {
		t.Fatalf("expected decode error")
	}
	out := buf.String()
	if !strings.Contains(out, `"message":"decode_error"`) || !strings.Contains(out, `"level":"warn"`) {
		t.Fatalf("unexpected log output: %s", out)
	}
	if strings.Contains(out, "infer_start") {
		t.Fatalf("debug events should be filtered at info level: %s", out)
	}
}
