// Package server owns the TCP listener and UDP socket and implements the
// RFC 865 Quote-of-the-Day wire protocol over each, per spec.md §4.4.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/papapumpkin/qotd/internal/corpus"
	"github.com/papapumpkin/qotd/internal/selector"
)

// UDPBufferSize is the output datagram buffer. spec.md §4.4 requires at
// least 512 bytes; a response that would exceed it is truncated and still
// ends in LF (spec.md §9.3's default resolution of that Open Question).
const UDPBufferSize = 512

// Server owns the bound TCP and UDP endpoints. It has no mutable state of
// its own beyond the sockets: the live Corpus and Selector are supplied by
// the supervisor on every call, since only the supervisor may swap them.
type Server struct {
	tcpLn   *net.TCPListener
	udpConn *net.UDPConn
	log     zerolog.Logger
}

// Bind opens the TCP listener and UDP socket at host:tcpPort and
// host:udpPort (which may be equal). Both sockets have SO_REUSEADDR set so
// a restarted process can rebind without waiting out TIME_WAIT.
func Bind(host string, tcpPort, udpPort int, log zerolog.Logger) (*Server, error) {
	lc := net.ListenConfig{Control: controlReuseAddr}
	ctx := context.Background()

	tcpAddr := fmt.Sprintf("%s:%d", host, tcpPort)
	tcpListener, err := lc.Listen(ctx, "tcp", tcpAddr)
	if err != nil {
		return nil, fmt.Errorf("server: bind tcp %s: %w", tcpAddr, err)
	}
	tcpLn, ok := tcpListener.(*net.TCPListener)
	if !ok {
		tcpListener.Close()
		return nil, fmt.Errorf("server: unexpected TCP listener type %T", tcpListener)
	}

	udpAddr := fmt.Sprintf("%s:%d", host, udpPort)
	udpPacketConn, err := lc.ListenPacket(ctx, "udp", udpAddr)
	if err != nil {
		tcpLn.Close()
		return nil, fmt.Errorf("server: bind udp %s: %w", udpAddr, err)
	}
	udpConn, ok := udpPacketConn.(*net.UDPConn)
	if !ok {
		tcpLn.Close()
		udpPacketConn.Close()
		return nil, fmt.Errorf("server: unexpected UDP connection type %T", udpPacketConn)
	}

	return &Server{tcpLn: tcpLn, udpConn: udpConn, log: log}, nil
}

// TCPListener exposes the underlying listener so the supervisor's event
// loop can wait on its readiness.
func (s *Server) TCPListener() *net.TCPListener { return s.tcpLn }

// UDPConn exposes the underlying socket so the supervisor's event loop can
// wait on its readiness.
func (s *Server) UDPConn() *net.UDPConn { return s.udpConn }

// Close releases both sockets.
func (s *Server) Close() error {
	tcpErr := s.tcpLn.Close()
	udpErr := s.udpConn.Close()
	if tcpErr != nil {
		return tcpErr
	}
	return udpErr
}

// AcceptTCP attempts a single Accept with the given deadline. A timeout is
// not an error: it means no connection was ready within the loop's
// bounded wait, and the caller should return control to the event loop.
// When a connection is accepted, it is served to completion (one quote or
// nothing, then close) before AcceptTCP returns.
func (s *Server) AcceptTCP(deadline time.Duration, c *corpus.Corpus, sel *selector.Selector) {
	_ = s.tcpLn.SetDeadline(time.Now().Add(deadline))

	conn, err := s.tcpLn.Accept()
	if err != nil {
		if isTimeout(err) {
			return
		}
		s.log.Warn().Err(err).Msg("server: tcp accept error")
		return
	}
	s.serveTCP(conn, c, sel)
}

func (s *Server) serveTCP(conn net.Conn, c *corpus.Corpus, sel *selector.Selector) {
	defer conn.Close()

	if c.Size() == 0 {
		return
	}

	idx, ok := sel.Next()
	if !ok {
		// size==0 already handled above; this would be an invariant
		// violation (selector disagrees with corpus size).
		s.log.Warn().Msg("server: selector returned no index for a non-empty corpus")
		return
	}
	if idx < 0 || idx >= c.Size() {
		s.log.Warn().Int("index", idx).Int("size", c.Size()).Msg("server: selector index out of range, dropping request")
		return
	}

	payload := append([]byte(c.At(idx)), '\n')
	if _, err := conn.Write(payload); err != nil {
		logRequestError(s.log, "server: tcp write failed", err)
	}
}

// ReceiveUDP attempts a single ReadFrom with the given deadline. As with
// AcceptTCP, a timeout returns control to the event loop without error.
func (s *Server) ReceiveUDP(deadline time.Duration, c *corpus.Corpus, sel *selector.Selector) {
	_ = s.udpConn.SetReadDeadline(time.Now().Add(deadline))

	buf := make([]byte, 1024)
	_, addr, err := s.udpConn.ReadFrom(buf)
	if err != nil {
		if isTimeout(err) {
			return
		}
		logRequestError(s.log, "server: udp receive error", err)
		return
	}
	// Payload is intentionally discarded: RFC 865 ignores it.

	if c.Size() == 0 {
		return
	}

	idx, ok := sel.Next()
	if !ok {
		s.log.Warn().Msg("server: selector returned no index for a non-empty corpus")
		return
	}
	if idx < 0 || idx >= c.Size() {
		s.log.Warn().Int("index", idx).Int("size", c.Size()).Msg("server: selector index out of range, dropping request")
		return
	}

	response := append([]byte(c.At(idx)), '\n')
	if len(response) > UDPBufferSize {
		response = response[:UDPBufferSize-1]
		response = append(response, '\n')
		s.log.Warn().Int("length", len(c.At(idx))+1).Msg("server: udp response truncated to fit output buffer")
	}

	if _, err := s.udpConn.WriteTo(response, addr); err != nil {
		logRequestError(s.log, "server: udp send failed", err)
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// logRequestError logs request-local failures (peer reset, broken pipe,
// unreachable destination, message-too-big) at warning level and nothing
// more: spec.md §7 treats all of these as non-fatal, request-abandoning
// conditions.
func logRequestError(log zerolog.Logger, msg string, err error) {
	log.Warn().Err(err).Msg(msg)
}
