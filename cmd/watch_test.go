package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fakeyudi/bocleaner/internal/logging"
)

// syncBuffer is a bytes.Buffer safe for the watch goroutine to write while
// the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestWatchFileRebuildsOnWrite(t *testing.T) {
	in := writeLog(t, "_zvt.txt", "12 0:00 Drone\n")
	out := filepath.Join(filepath.Dir(in), "zvt.txt")
	cfg.OutputDir, cfg.RulesFile = "", ""

	ctx, cancel := context.WithCancel(context.Background())
	progress := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, in, "text", progress, logging.Discard())
	}()

	waitFor(t, "initial clean", func() bool {
		return strings.Count(progress.String(), "Cleaned ") >= 1
	})
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "    0:00   Drone\n" {
		t.Errorf("initial output = %q", got)
	}

	if err := os.WriteFile(in, []byte("12 0:00 Drone\n14 0:20 Gateway\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "rebuild after write", func() bool {
		data, err := os.ReadFile(out)
		return err == nil && strings.Contains(string(data), "Gateway")
	})

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watchFile returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watchFile did not stop after cancel")
	}
}

func TestWatchFileKeepsLastGoodOutput(t *testing.T) {
	in := writeLog(t, "_zvt.txt", "12 0:00 Drone\n")
	out := filepath.Join(filepath.Dir(in), "zvt.txt")
	cfg.OutputDir, cfg.RulesFile = "", ""

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	progress := &syncBuffer{}
	logs := &syncBuffer{}
	go watchFile(ctx, in, "text", progress, logging.New(logs, logging.LevelDebug, "watch"))

	waitFor(t, "initial clean", func() bool {
		return strings.Contains(progress.String(), "Cleaned ")
	})

	if err := os.WriteFile(in, []byte("12 0:99 Drone\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "error log", func() bool {
		return strings.Contains(logs.String(), "ERROR watch: ")
	})

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "    0:00   Drone\n" {
		t.Errorf("a failed rebuild must keep the previous output, got %q", got)
	}
}
