package main

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingJanitor struct {
	stopped chan struct{}
}

func (j *recordingJanitor) Run(ctx context.Context) error {
	<-ctx.Done()
	close(j.stopped)
	return nil
}

func TestServe_ClosesClientsAfterRequestsDrain(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	entered := make(chan struct{})
	release := make(chan struct{})
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.WriteHeader(http.StatusOK)
	})}
	janitor := &recordingJanitor{stopped: make(chan struct{})}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	served := make(chan error, 1)
	go func() { served <- serve(ctx, srv, ln, janitor, zerolog.Nop()) }()

	status := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/")
		if err != nil {
			status <- 0
			return
		}
		resp.Body.Close()
		status <- resp.StatusCode
	}()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("request never reached the handler")
	}
	cancel()

	select {
	case <-janitor.stopped:
		t.Fatal("clients closed while a request was still in flight")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	if got := <-status; got != http.StatusOK {
		t.Fatalf("expected in-flight request to finish with 200, got %d", got)
	}

	select {
	case <-janitor.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("clients were not closed after shutdown")
	}
	if err := <-served; err != nil {
		t.Fatalf("serve returned %v", err)
	}
}
