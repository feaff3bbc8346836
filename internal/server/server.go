package server

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"chesslink/internal/config"
)

// StopReason is sent to every live connection when the server goes
// down.
const StopReason = "server shutdown"

// Server runs the TCP accept loop: one goroutine per accepted
// connection, with a bounded number of concurrent connection slots.
type Server struct {
	logger    *zap.Logger
	clock     clockwork.Clock
	registry  *Registry
	analytics *Analytics

	maxClients  int
	gracePeriod time.Duration

	listener net.Listener
	slots    chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool

	connMu sync.Mutex
	conns  map[net.Conn]struct{}
}

type Option func(*Server)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

func WithMaxClients(n int) Option {
	return func(s *Server) {
		s.maxClients = n
	}
}

func WithGracePeriod(d time.Duration) Option {
	return func(s *Server) {
		s.gracePeriod = d
	}
}

func WithServerAnalytics(analytics *Analytics) Option {
	return func(s *Server) {
		s.analytics = analytics
	}
}

func New(opts ...Option) *Server {
	server := &Server{
		maxClients:  config.MaxClients,
		gracePeriod: config.ShutdownGracePeriod,
		conns:       make(map[net.Conn]struct{}),
	}

	for _, opt := range opts {
		opt(server)
	}

	if server.logger == nil {
		server.logger = zap.NewNop()
	}
	if server.clock == nil {
		server.clock = clockwork.NewRealClock()
	}

	server.slots = make(chan struct{}, server.maxClients)
	server.registry = NewRegistry(
		WithRegistryLogger(server.logger.Named("registry")),
		WithRegistryClock(server.clock),
		WithAnalytics(server.analytics),
	)

	return server
}

func (s *Server) Registry() *Registry {
	return s.registry
}

// Listen binds the listening socket without starting to accept.
func (s *Server) Listen(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	s.listener = listener
	s.logger.Info("server listening", zap.String("address", listener.Addr().String()))
	return nil
}

func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until the listener is closed. Each
// connection occupies one slot; when all slots are taken, accepting
// blocks until a connection finishes.
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.stopped.Load() {
				return nil
			}
			s.logger.Error("failed to accept connection", zap.Error(err))
			return err
		}

		s.logger.Info("client connected", zap.String("remote", conn.RemoteAddr().String()))

		s.slots <- struct{}{}
		s.trackConn(conn, true)
		s.wg.Add(1)

		handler := NewHandler(conn, s.registry,
			WithHandlerLogger(s.logger.Named("handler")),
			WithHandlerClock(s.clock),
		)
		go func() {
			defer s.wg.Done()
			defer func() { <-s.slots }()
			defer s.trackConn(conn, false)
			handler.Run()
		}()
	}
}

// Stop closes the listener, flips every registered connection to
// disconnected with a fixed reason and waits for the connection
// goroutines, force-closing lingering sockets after the grace period.
func (s *Server) Stop() {
	if !s.stopped.CompareAndSwap(false, true) {
		return
	}

	s.logger.Info("stopping server")

	if s.listener != nil {
		_ = s.listener.Close()
	}

	s.registry.DisconnectAll(StopReason)

	if !s.waitConnections(s.gracePeriod) {
		s.logger.Warn("grace period elapsed, closing remaining connections")
		s.connMu.Lock()
		for conn := range s.conns {
			_ = conn.Close()
		}
		s.connMu.Unlock()
		s.waitConnections(s.gracePeriod)
	}

	s.analytics.Close()
	s.logger.Info("server stopped")
}

func (s *Server) waitConnections(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (s *Server) trackConn(conn net.Conn, add bool) {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	if add {
		s.conns[conn] = struct{}{}
	} else {
		delete(s.conns, conn)
	}
}
