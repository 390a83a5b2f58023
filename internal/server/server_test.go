package server

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/papapumpkin/qotd/internal/corpus"
	"github.com/papapumpkin/qotd/internal/selector"
)

func mustBind(t *testing.T) *Server {
	t.Helper()
	s, err := Bind("127.0.0.1", 0, 0, zerolog.Nop())
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestTCPEmptyCorpusCloses is scenario S2 of spec.md §8.
func TestTCPEmptyCorpusCloses(t *testing.T) {
	s := mustBind(t)
	empty := &corpus.Corpus{}
	sel := selector.New(selector.Random, 0)

	go s.AcceptTCP(2*time.Second, empty, sel)

	conn, err := net.Dial("tcp", s.TCPListener().Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	buf := make([]byte, 16)
	n, err := conn.Read(buf)
	if n != 0 {
		t.Errorf("expected zero bytes, got %d: %q", n, buf[:n])
	}
	if err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}

// TestTCPServesSequentialQuotes is scenario S4 of spec.md §8.
func TestTCPServesSequentialQuotes(t *testing.T) {
	s := mustBind(t)
	c := &corpus.Corpus{Quotes: []string{"q0", "q1", "q2"}}
	sel := selector.New(selector.Sequential, 3)

	want := []string{"q0\n", "q1\n", "q2\n", "q0\n"}
	for _, w := range want {
		go s.AcceptTCP(2*time.Second, c, sel)
		conn, err := net.Dial("tcp", s.TCPListener().Addr().String())
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		got, err := io.ReadAll(conn)
		conn.Close()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(got) != w {
			t.Errorf("got %q, want %q", got, w)
		}
	}
}

// TestUDPEmptyCorpusIsSilent is scenario S3 of spec.md §8.
func TestUDPEmptyCorpusIsSilent(t *testing.T) {
	s := mustBind(t)
	empty := &corpus.Corpus{}
	sel := selector.New(selector.Random, 0)

	go s.ReceiveUDP(2*time.Second, empty, sel)

	client, err := net.Dial("udp", s.UDPConn().LocalAddr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()
	if _, err := client.Write([]byte("ping")); err != nil {
		t.Fatalf("write: %v", err)
	}

	client.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	buf := make([]byte, 16)
	_, err = client.Read(buf)
	if err == nil {
		t.Error("expected a read timeout (no response for an empty corpus)")
	}
}

func TestUDPRespondsWithQuote(t *testing.T) {
	s := mustBind(t)
	c := &corpus.Corpus{Quotes: []string{"hello world"}}
	sel := selector.New(selector.Sequential, 1)

	go s.ReceiveUDP(2*time.Second, c, sel)

	client, err := net.Dial("udp", s.UDPConn().LocalAddr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()
	if _, err := client.Write([]byte("ping")); err != nil {
		t.Fatalf("write: %v", err)
	}

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 64)
	n, err := client.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(buf[:n]) != "hello world\n" {
		t.Errorf("got %q, want %q", buf[:n], "hello world\n")
	}
}

func TestUDPTruncatesOversizedResponse(t *testing.T) {
	s := mustBind(t)
	huge := make([]byte, UDPBufferSize+100)
	for i := range huge {
		huge[i] = 'x'
	}
	c := &corpus.Corpus{Quotes: []string{string(huge)}}
	sel := selector.New(selector.Sequential, 1)

	go s.ReceiveUDP(2*time.Second, c, sel)

	client, err := net.Dial("udp", s.UDPConn().LocalAddr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()
	if _, err := client.Write([]byte("ping")); err != nil {
		t.Fatalf("write: %v", err)
	}

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, UDPBufferSize+200)
	n, err := client.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != UDPBufferSize {
		t.Errorf("response length = %d, want %d", n, UDPBufferSize)
	}
	if buf[n-1] != '\n' {
		t.Errorf("truncated response does not end in LF: %q", buf[:n])
	}
}
