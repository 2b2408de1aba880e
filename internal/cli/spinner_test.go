package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinnerWithContext(t.Context(), "working...")

	done := make(chan struct{})
	go func() {
		s.Stop()
		s.Stop() // idempotent
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop without Start blocked")
	}
}

func TestSpinnerAnimatesAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerWithContext(t.Context(), "validating")
	s.w = &buf

	s.Start()
	time.Sleep(4 * spinnerInterval)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "validating") {
		t.Errorf("spinner never drew its message: %q", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("spinner did not clear its line: %q", out)
	}
}

func TestSpinnerStopsOnContextCancel(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(t.Context())
	s := newSpinnerWithContext(ctx, "validating")
	s.w = &buf

	s.Start()
	cancel()

	select {
	case <-s.idle:
	case <-time.After(time.Second):
		t.Fatal("spinner kept running after context cancellation")
	}
}
