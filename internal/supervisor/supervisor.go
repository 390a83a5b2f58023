// Package supervisor drives the main loop: it multiplexes the two server
// sockets with a bounded wait, periodically polls for corpus changes, and
// atomically swaps the live corpus and resets the selector on rebuild. It
// is the "single logical thread of control" described in spec.md §5.
package supervisor

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/papapumpkin/qotd/internal/corpus"
	"github.com/papapumpkin/qotd/internal/selector"
	"github.com/papapumpkin/qotd/internal/server"
	"github.com/papapumpkin/qotd/internal/watcher"
)

// minWaitFloor is the "small value >= 100ms" in spec.md §4.5's
// "min(polling_interval, some small value >= 100ms)": each loop iteration
// waits at most min(interval, minWaitFloor), split evenly between the TCP
// and UDP sockets.
const minWaitFloor = 100 * time.Millisecond

// Supervisor owns every piece of mutable state in the process: the live
// Corpus pointer, the Selector, and the Watcher's file snapshots. All of it
// is touched only from Run's goroutine.
type Supervisor struct {
	srv     *server.Server
	builder *corpus.Builder
	watch   *watcher.Watcher
	dirs    []string
	mode    selector.Mode
	interval time.Duration
	log     zerolog.Logger

	live *corpus.Corpus
	sel  *selector.Selector

	lastPoll time.Time
	shutdown chan struct{}
}

// New builds a Supervisor. It performs the initial corpus build
// synchronously so Run starts with a live (possibly empty) corpus rather
// than an uninitialized one.
func New(srv *server.Server, dirs []string, mode selector.Mode, interval time.Duration, log zerolog.Logger) *Supervisor {
	builder := corpus.NewBuilder(log)
	live := builder.Build(dirs)

	return &Supervisor{
		srv:      srv,
		builder:  builder,
		watch:    watcher.New(dirs),
		dirs:     dirs,
		mode:     mode,
		interval: interval,
		log:      log,
		live:     live,
		sel:      selector.New(mode, live.Size()),
		lastPoll: time.Now(),
		shutdown: make(chan struct{}),
	}
}

// Stop signals Run to return at its next loop iteration.
func (s *Supervisor) Stop() {
	close(s.shutdown)
}

// Run executes the main loop until Stop is called. Per loop iteration it:
// waits on the TCP socket (servicing one ready connection), waits on the
// UDP socket (servicing one ready datagram) — TCP always before UDP,
// per spec.md §5's deterministic ordering — and, once the polling interval
// has elapsed, polls the watcher and rebuilds the corpus on change.
func (s *Supervisor) Run() {
	wait := s.interval
	if wait > minWaitFloor {
		wait = minWaitFloor
	}
	perSocket := wait / 2
	if perSocket <= 0 {
		perSocket = minWaitFloor / 2
	}

	s.log.Info().
		Dur("poll_interval", s.interval).
		Str("mode", modeName(s.mode)).
		Msg("supervisor: started")

	for {
		select {
		case <-s.shutdown:
			s.log.Info().Msg("supervisor: shutdown observed, exiting loop")
			return
		default:
		}

		s.srv.AcceptTCP(perSocket, s.live, s.sel)
		s.srv.ReceiveUDP(perSocket, s.live, s.sel)

		if time.Since(s.lastPoll) >= s.interval {
			s.pollAndMaybeRebuild()
			s.lastPoll = time.Now()
		}
	}
}

func (s *Supervisor) pollAndMaybeRebuild() {
	changed, err := s.watch.Poll()
	if err != nil {
		s.log.Warn().Err(err).Msg("supervisor: watcher poll failed")
		return
	}
	if !changed {
		return
	}

	s.log.Info().Msg("supervisor: change detected, rebuilding corpus")

	fresh := s.builder.Build(s.dirs)

	// Publication is a single pointer assignment: the old corpus keeps
	// serving any request already in flight, and the swap is atomic from
	// the point of view of this single-threaded loop (spec.md §4.5).
	s.live = fresh
	s.sel.Reset(fresh.Size())
}

func modeName(m selector.Mode) string {
	switch m {
	case selector.Sequential:
		return "sequential"
	case selector.RandomNoRepeat:
		return "random-no-repeat"
	case selector.ShuffleCycle:
		return "shuffle-cycle"
	default:
		return "random"
	}
}
