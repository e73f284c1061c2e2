package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"
)

type dummyHandler struct{}

func (dummyHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestStartServerAndShutdown(t *testing.T) {
	srv := startServer(dummyHandler{}, "0") // random port
	if srv == nil {
		t.Fatalf("expected server")
	}

	time.Sleep(50 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	srv := startServer(dummyHandler{}, "0")

	cleaned := make(chan struct{})
	go func() {
		gracefulShutdown(context.Background(), srv, func() { close(cleaned) })
	}()

	// Give the goroutine time to register its signal handler.
	time.Sleep(50 * time.Millisecond)

	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}

func TestParseDateFlag(t *testing.T) {
	def := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := parseDateFlag("", def)
	if err != nil || !got.Equal(def) {
		t.Fatalf("empty flag: got %v err %v", got, err)
	}

	got, err = parseDateFlag("2023-10-27", def)
	if err != nil || got.Format("2006-01-02") != "2023-10-27" {
		t.Fatalf("valid flag: got %v err %v", got, err)
	}

	if _, err := parseDateFlag("27/10/2023", def); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSplitSymbols(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"spy", 1},
		{"spy, qqq ,IWM", 3},
		{",,", 0},
	}
	for _, c := range cases {
		got := splitSymbols(c.in)
		if len(got) != c.want {
			t.Fatalf("splitSymbols(%q) = %v, want %d entries", c.in, got, c.want)
		}
		for _, s := range got {
			if s != strings.ToUpper(s) {
				t.Fatalf("symbol not uppercased: %q", s)
			}
		}
	}
}
