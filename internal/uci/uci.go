package uci

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/farfromperfect/ffp/internal/engine"
)

// UCI implements the minimum-viable subset of the Universal Chess
// Interface protocol: uci, isready, ucinewgame, position, go, d, perft,
// quit.
type UCI struct {
	eng *engine.Engine

	out io.Writer

	stop       atomic.Bool
	searching  atomic.Bool
	searchDone chan struct{}
}

// New creates a UCI handler driving the given engine, writing responses
// to stdout.
func New(eng *engine.Engine) *UCI {
	return &UCI{eng: eng, out: os.Stdout}
}

// Run reads commands from stdin until "quit" or end of input. "go" starts
// search on a background goroutine so the main loop keeps reading and
// dispatching "stop"/"isready" while a search is in flight. Every response
// line is flushed immediately.
func (u *UCI) Run() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !u.handleLine(line) {
			break
		}
	}
	if u.searchDone != nil {
		<-u.searchDone
	}
}

// handleLine dispatches a single command line. It returns false when the
// loop should terminate.
func (u *UCI) handleLine(line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "uci":
		u.println("id name ffp")
		u.println("id author ffp")
		u.println("uciok")
	case "isready":
		// isready must answer immediately regardless of an in-flight
		// search, since search runs on its own goroutine.
		u.println("readyok")
	case "ucinewgame":
		u.eng.SetStartPos()
	case "position":
		u.handlePosition(args)
	case "go":
		u.handleGo(args)
	case "stop":
		u.eng.Stop()
		u.stop.Store(true)
	case "d":
		u.println(u.eng.String())
	case "perft":
		u.handlePerft(args)
	case "quit":
		if u.searching.Load() {
			u.eng.Stop()
			u.stop.Store(true)
		}
		return false
	default:
		// Unrecognized commands are silently dropped, matching the
		// reference engine's UCI loop.
	}
	return true
}

// handlePosition implements "position [startpos|fen <FEN>] [moves <mv>...]".
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	idx := 0
	switch args[0] {
	case "startpos":
		u.eng.SetStartPos()
		idx = 1
	case "fen":
		end := 1
		for end < len(args) && args[end] != "moves" {
			end++
		}
		fen := strings.Join(args[1:end], " ")
		if err := u.eng.LoadFEN(fen); err != nil {
			return
		}
		idx = end
	default:
		return
	}

	if idx < len(args) && args[idx] == "moves" {
		for _, mv := range args[idx+1:] {
			// Illegal or malformed moves are silently dropped.
			_ = u.eng.ApplyMove(mv)
		}
	}
}

// handleGo implements "go [depth N] [movetime MS] [nodes N]". Search runs
// on its own goroutine; Run's main loop keeps reading commands, so "stop"
// and "isready" are answered without waiting for the search to finish.
func (u *UCI) handleGo(args []string) {
	if u.searching.Load() {
		// A search is already running; the reference engine ignores a
		// second "go" rather than queuing or racing goroutines.
		return
	}

	limits := engine.SearchLimits{Stop: &u.stop}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				if v, err := strconv.Atoi(args[i+1]); err == nil {
					limits.MaxDepth = v
				}
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				if v, err := strconv.Atoi(args[i+1]); err == nil {
					limits.TimeMs = v
				}
				i++
			}
		case "nodes":
			if i+1 < len(args) {
				if v, err := strconv.Atoi(args[i+1]); err == nil {
					limits.NodeLimit = uint64(v)
				}
				i++
			}
		}
	}

	// Copy the position synchronously, on this goroutine, before dispatch:
	// a "position" command arriving while the search goroutine is running
	// must not race with it over the engine's live position.
	pos := u.eng.Position().Copy()

	u.stop.Store(false)
	u.searching.Store(true)
	u.searchDone = make(chan struct{})

	go func() {
		result := u.eng.SearchPosition(pos, limits)
		u.println("bestmove " + result.BestMove.String())
		u.searching.Store(false)
		close(u.searchDone)
	}()
}

// handlePerft implements "perft N".
func (u *UCI) handlePerft(args []string) {
	if len(args) == 0 {
		return
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		return
	}
	nodes := u.eng.Perft(depth)
	u.println(fmt.Sprintf("nodes %d", nodes))
}

// println writes one response line. os.Stdout is unbuffered, so every
// write already reaches the consumer immediately.
func (u *UCI) println(s string) {
	fmt.Fprintln(u.out, s)
}
