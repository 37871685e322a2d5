package server

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/quic-go/quic-go/http3"
)

// HTTP3Server wraps the http3.Server lifecycle.
type HTTP3Server struct {
	srv  *http3.Server
	pc   net.PacketConn
	addr string
	done chan struct{}
}

// NewHTTP3Server creates a server bound to addr with given TLS config and handler.
func NewHTTP3Server(addr string, tlsCfg *tls.Config, h http.Handler) *HTTP3Server {
	s := &http3.Server{Addr: addr, TLSConfig: http3.ConfigureTLSConfig(tlsCfg), Handler: h}
	return &HTTP3Server{srv: s, addr: addr}
}

// Start begins serving HTTP/3 and returns the bound address, which differs
// from the configured one when it ends with ":0".
func (s *HTTP3Server) Start() (string, error) {
	pc, err := net.ListenPacket("udp", s.addr)
	if err != nil {
		return "", err
	}
	s.pc = pc
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		_ = s.srv.Serve(pc)
	}()
	return pc.LocalAddr().String(), nil
}

// Done is closed once the serve loop has exited.
func (s *HTTP3Server) Done() <-chan struct{} {
	return s.done
}

// Stop closes the server, letting in-flight requests finish until ctx is done.
func (s *HTTP3Server) Stop(ctx context.Context) error {
	if s.pc == nil {
		return nil
	}

	err := s.srv.Shutdown(ctx)
	if err != nil {
		_ = s.srv.Close()
	}
	_ = s.pc.Close()

	select {
	case <-s.done:
	case <-time.After(time.Second):
	}
	return err
}

// HTTP3Client returns an http.Client using an HTTP/3 round tripper with given TLS config.
func HTTP3Client(tlsCfg *tls.Config, timeout time.Duration) *http.Client {
	tr := &http3.Transport{TLSClientConfig: tlsCfg}
	return &http.Client{Transport: tr, Timeout: timeout}
}

// CloseClient releases the QUIC connections of a client made by HTTP3Client.
func CloseClient(c *http.Client) {
	if tr, ok := c.Transport.(*http3.Transport); ok {
		_ = tr.Close()
	}
}
