package tcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"go-hospital-server/config"
	"go-hospital-server/internal/delivery/tcp/protocol"
	"go-hospital-server/pkg/response"

	"github.com/sirupsen/logrus"
)

// Server accepts connections and runs one worker goroutine per
// connection: a blocking read-decode-dispatch-encode-write loop.
// Responses are written in request order; the observed protocol is
// strictly half-duplex per connection.
type Server struct {
	cfg    config.TCPConfig
	log    *logrus.Logger
	router *Router

	mu        sync.Mutex
	listeners []net.Listener
	conns     map[net.Conn]struct{}
	wg        sync.WaitGroup
	closed    bool
}

func NewServer(cfg config.TCPConfig, log *logrus.Logger, router *Router) *Server {
	return &Server{
		cfg:    cfg,
		log:    log,
		router: router,
		conns:  make(map[net.Conn]struct{}),
	}
}

// Start opens the canonical listener and, when configured, the legacy
// length-prefix listener on its own port. It blocks until Shutdown.
func (s *Server) Start() error {
	canonical, err := net.Listen("tcp", ":"+s.cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", s.cfg.Port, err)
	}
	s.addListener(canonical)
	s.log.Infof("TCP server listening on port %s (header framing)", s.cfg.Port)

	if s.cfg.LegacyPort != "" {
		legacy, err := net.Listen("tcp", ":"+s.cfg.LegacyPort)
		if err != nil {
			canonical.Close()
			return fmt.Errorf("failed to listen on legacy port %s: %w", s.cfg.LegacyPort, err)
		}
		s.addListener(legacy)
		s.log.Infof("TCP server listening on port %s (legacy length-prefix framing)", s.cfg.LegacyPort)

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.acceptLoop(legacy, protocol.NewLengthPrefixCodec())
		}()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.acceptLoop(canonical, protocol.NewHeaderCodec())
	}()

	s.wg.Wait()
	return nil
}

func (s *Server) addListener(l net.Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Addr returns the canonical listener's address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.listeners) == 0 {
		return nil
	}
	return s.listeners[0].Addr()
}

func (s *Server) acceptLoop(listener net.Listener, codec protocol.Codec) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return
			}
			s.log.Warnf("Accept failed: %+v", err)
			continue
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn, codec)
		}()
	}
}

func (s *Server) handleConnection(conn net.Conn, codec protocol.Codec) {
	remote := conn.RemoteAddr().String()
	log := s.log.WithField("remote", remote)
	log.Info("Client connected")

	defer func() {
		conn.Close()
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		log.Info("Client disconnected")
	}()

	for {
		if err := conn.SetReadDeadline(deadline(s.cfg.ReadTimeout)); err != nil {
			return
		}

		msgType, payload, err := codec.ReadFrame(conn)
		if err != nil {
			s.logReadError(log, err)
			return
		}

		switch msgType {
		case protocol.TypeHeartbeatPing:
			if err := s.writeFrame(conn, codec, protocol.TypeHeartbeatPong, nil); err != nil {
				log.Warnf("Failed to answer heartbeat: %+v", err)
				return
			}
			continue
		case protocol.TypeJSONRequest:
			// handled below
		default:
			log.Warnf("Ignoring frame of type %d", msgType)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RequestTimeout)
		resp := s.router.Dispatch(ctx, payload)
		cancel()

		body, err := json.Marshal(resp)
		if err != nil {
			log.Errorf("Failed to marshal response: %+v", err)
			body, _ = json.Marshal(response.Failure("internal server error"))
		}

		if err := s.writeFrame(conn, codec, protocol.TypeJSONResponse, body); err != nil {
			log.Warnf("Failed to write response: %+v", err)
			return
		}
	}
}

func (s *Server) writeFrame(conn net.Conn, codec protocol.Codec, msgType protocol.MessageType, payload []byte) error {
	if err := conn.SetWriteDeadline(deadline(s.cfg.WriteTimeout)); err != nil {
		return err
	}
	return codec.WriteFrame(conn, msgType, payload)
}

func (s *Server) logReadError(log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, io.EOF):
		// Clean disconnect.
	case protocol.IsFatal(err):
		log.Warnf("Protocol violation, closing connection: %+v", err)
	case errors.Is(err, net.ErrClosed):
		// Shutdown in progress.
	default:
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			log.Info("Connection idle timeout")
			return
		}
		log.Warnf("Read failed: %+v", err)
	}
}

// deadline converts a timeout into an absolute deadline; zero or
// negative timeouts disable the deadline.
func deadline(d time.Duration) time.Time {
	if d <= 0 {
		return time.Time{}
	}
	return time.Now().Add(d)
}

// Shutdown stops accepting, closes every live connection and waits for
// the workers to drain. In-flight transactions abort through their
// request contexts when connections drop.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	for _, l := range s.listeners {
		l.Close()
	}
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
