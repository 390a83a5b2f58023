package supervisor

import (
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/papapumpkin/qotd/internal/selector"
	"github.com/papapumpkin/qotd/internal/server"
)

func dialOnceTCP(t *testing.T, addr string) string {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	got, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(got)
}

// TestHotReloadResetsSequential is scenario S5 of spec.md §8.
func TestHotReloadResetsSequential(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quotes.txt")
	if err := os.WriteFile(path, []byte("q0\nq1\nq2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	srv, err := server.Bind("127.0.0.1", 0, 0, zerolog.Nop())
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	defer srv.Close()

	sup := New(srv, []string{dir}, selector.Sequential, 80*time.Millisecond, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		sup.Run()
		close(done)
	}()
	defer func() {
		sup.Stop()
		<-done
	}()

	addr := srv.TCPListener().Addr().String()

	if got := dialOnceTCP(t, addr); got != "q0\n" {
		t.Fatalf("before reload: got %q, want %q", got, "q0\n")
	}

	future := time.Now().Add(time.Hour)
	if err := os.WriteFile(path, []byte("r0\nr1\nr2\nr3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	// Give the supervisor time to poll (interval 80ms) and rebuild.
	time.Sleep(400 * time.Millisecond)

	want := []string{"r0\n", "r1\n", "r2\n", "r3\n"}
	for i, w := range want {
		got := dialOnceTCP(t, addr)
		if got != w {
			t.Fatalf("after reload, connection %d: got %q, want %q", i, got, w)
		}
	}
}
