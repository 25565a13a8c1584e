// Package zmq serves the format contract over a ZeroMQ REQ/REP socket pair.
package zmq

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/go-zeromq/zmq4"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/baditaflorin/go_text_formatter/internal/adapters/logger"
	"github.com/baditaflorin/go_text_formatter/internal/handler"
	"github.com/baditaflorin/go_text_formatter/internal/ports"
)

// DefaultPort is the reference port of the service.
const DefaultPort = 5555

// Server answers every received message with exactly one reply, strictly
// one request at a time.
type Server struct {
	endpoint string
	handler  *handler.Handler
	logger   ports.Logger

	mu     sync.Mutex
	socket zmq4.Socket
	ready  chan struct{}
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger sets the logger for request and lifecycle events.
func WithServerLogger(l ports.Logger) ServerOption {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer creates a Server that will bind to endpoint, e.g. "tcp://*:5555".
func NewServer(endpoint string, h *handler.Handler, opts ...ServerOption) *Server {
	s := &Server{
		endpoint: endpoint,
		handler:  h,
		logger:   logger.NewNopLogger(),
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Endpoint formats a tcp endpoint for a bind host and port.
func Endpoint(host string, port int) string {
	return "tcp://" + net.JoinHostPort(host, strconv.Itoa(port))
}

// ListenAndServe binds the socket and serves until ctx is cancelled. The
// socket is closed on return. Cancellation is not an error.
func (s *Server) ListenAndServe(ctx context.Context) error {
	socket := zmq4.NewRep(ctx)
	if err := socket.Listen(s.endpoint); err != nil {
		_ = socket.Close()
		return errors.Wrapf(err, "bind %s", s.endpoint)
	}

	s.mu.Lock()
	s.socket = socket
	s.mu.Unlock()
	close(s.ready)

	s.logger.Info("Server listening", "endpoint", s.endpoint, "address", socket.Addr())

	// Recv blocks without a deadline; closing the socket is what unblocks it.
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			_ = socket.Close()
		case <-stopped:
		}
	}()

	err := s.serve(ctx, socket)
	_ = socket.Close()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// Addr returns the bound address once the server is listening.
func (s *Server) Addr(ctx context.Context) (net.Addr, error) {
	select {
	case <-s.ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.socket.Addr(), nil
}

func (s *Server) serve(ctx context.Context, socket zmq4.Socket) error {
	for {
		msg, err := socket.Recv()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "receive request")
		}

		requestID := uuid.NewString()
		start := time.Now()
		payload := msg.Bytes()
		s.logger.Debug("Request received", "request_id", requestID, "payload", string(payload))

		reply := s.handler.Handle(payload)

		if err := socket.Send(zmq4.NewMsg(reply.Body)); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "send reply")
		}

		s.logger.Info("Request processed",
			"request_id", requestID,
			"outcome", string(reply.Outcome),
			"duration", time.Since(start),
		)
	}
}
