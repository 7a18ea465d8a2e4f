package preview

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sync"
	"time"
)

// BackendWait bounds how long the proxy waits for a dev server to start
// accepting connections.
const BackendWait = 30 * time.Second

// Proxy forwards local requests to the currently detected dev-server port.
// The target can be retargeted while serving, so a port detected later in
// the output stream takes effect without a restart.
type Proxy struct {
	mu     sync.RWMutex
	target *url.URL
}

// NewProxy creates a proxy pointed at localhost:targetPort.
func NewProxy(targetPort int) *Proxy {
	p := &Proxy{}
	p.SetTargetPort(targetPort)
	return p
}

// SetTargetPort retargets the proxy at localhost:port.
func (p *Proxy) SetTargetPort(port int) {
	u, _ := url.Parse(LocalURL(port))
	p.mu.Lock()
	p.target = u
	p.mu.Unlock()
}

// Target returns the current backend URL.
func (p *Proxy) Target() *url.URL {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.target
}

// Handler returns the reverse-proxy handler.
func (p *Proxy) Handler() http.Handler {
	rp := &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(p.Target())
			r.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, fmt.Sprintf("preview backend unavailable: %v", err), http.StatusBadGateway)
		},
	}
	return rp
}

// ListenAndServe serves the proxy on the given local port until ctx is
// cancelled.
func (p *Proxy) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: p.Handler(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// WaitForBackend polls until localhost:port accepts TCP connections or the
// timeout elapses.
func WaitForBackend(ctx context.Context, port int, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	addr := fmt.Sprintf("localhost:%d", port)
	for {
		conn, err := net.DialTimeout("tcp", addr, time.Second)
		if err == nil {
			_ = conn.Close()
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("no server on %s after %s", addr, timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
}
