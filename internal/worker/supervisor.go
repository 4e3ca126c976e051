// Package worker launches the external backend engine and supervises one
// processing session at a time: it feeds the task list over stdin, parses
// the line-oriented status protocol off stdout, and reports the session
// outcome.
package worker

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	apperrors "statdesk/internal/errors"
	"statdesk/internal/log"
	"statdesk/pkg/types"
)

// State is the supervisor's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateStarting
	StateRunning
	// Terminal session outcomes, carried in Outcome. The supervisor itself
	// returns to StateIdle as the outcome is reported.
	StateSucceeded
	StateFailed
	StateCancelled
)

// stderrTailLines bounds the stderr capture kept for failure reports.
const stderrTailLines = 20

// Outcome describes how a session ended.
type Outcome struct {
	State      State // StateSucceeded, StateFailed or StateCancelled
	ExitCode   int
	Err        error
	StderrTail string // last stderr lines, for the failure dialog
}

// Events are the supervisor's callbacks. They fire on internal goroutines;
// front-ends must marshal onto their event loop (fyne.Do, tea.Program.Send).
// Any callback may be nil.
type Events struct {
	Started  func()
	Status   func(StatusRecord)
	Log      func(line string)
	ErrLog   func(line string)
	Finished func(Outcome)
}

// Supervisor runs at most one backend process at a time.
type Supervisor struct {
	program string
	events  Events

	mu     sync.Mutex
	state  State
	cmd    *exec.Cmd
	killed bool
}

// DefaultProgramPath returns the expected backend location: a
// backend_engine directory beside the running executable.
func DefaultProgramPath() string {
	name := "backend_engine"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	dir := "."
	if exe, err := os.Executable(); err == nil {
		dir = filepath.Dir(exe)
	}
	return filepath.Join(dir, "backend_engine", name)
}

// New creates a supervisor for the given backend program.
func New(program string, events Events) *Supervisor {
	if program == "" {
		program = DefaultProgramPath()
	}
	return &Supervisor{program: program, events: events}
}

// Program returns the backend executable path the supervisor launches.
func (s *Supervisor) Program() string {
	return s.program
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Active reports whether a session is in flight.
func (s *Supervisor) Active() bool {
	st := s.State()
	return st == StateStarting || st == StateRunning
}

// Start validates and launches a processing session.
//
// Validation failures and launch failures are returned synchronously and
// leave the supervisor Idle; no event fires for them. On success the task
// list is written to the process's stdin (one path per line, UTF-8) and the
// stream is closed; the backend reads to end-of-input before it starts
// working, so failing to close would stall it indefinitely.
func (s *Supervisor) Start(tasks []string, cfg types.RunConfig) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return apperrors.ErrSessionActive
	}
	if len(tasks) == 0 {
		s.mu.Unlock()
		return apperrors.ErrEmptyTaskList
	}
	if !cfg.UseSourceDirAsOutput && cfg.OutputDir == "" {
		s.mu.Unlock()
		return apperrors.ErrMissingOutputDir
	}
	s.state = StateStarting
	s.mu.Unlock()

	args := []string{"--on-conflict", cfg.ConflictPolicy.CommandArg()}
	if !cfg.UseSourceDirAsOutput {
		args = append(args, "--output-dir", cfg.OutputDir)
	}

	cmd := exec.Command(s.program, args...)
	// Force UTF-8 text I/O in the Python backend regardless of host locale.
	cmd.Env = append(os.Environ(), "PYTHONIOENCODING=utf-8")

	stdin, err := cmd.StdinPipe()
	if err == nil {
		var stdout, stderr io.ReadCloser
		stdout, err = cmd.StdoutPipe()
		if err == nil {
			stderr, err = cmd.StderrPipe()
			if err == nil {
				err = cmd.Start()
			}
		}
		if err == nil {
			s.begin(cmd, stdin, stdout, stderr, tasks)
			return nil
		}
	}

	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()
	log.Errorf("backend engine failed to start: %v", err)
	return apperrors.NewLaunchError(s.program, err)
}

// begin wires the session goroutines once the process is up.
func (s *Supervisor) begin(cmd *exec.Cmd, stdin io.WriteCloser, stdout, stderr io.ReadCloser, tasks []string) {
	s.mu.Lock()
	s.cmd = cmd
	s.killed = false
	s.state = StateRunning
	s.mu.Unlock()

	log.Infof("backend engine started: %s (pid %d, %d tasks)", s.program, cmd.Process.Pid, len(tasks))
	if s.events.Started != nil {
		s.events.Started()
	}

	// Snapshot the task list; the caller may mutate its slice afterwards.
	queued := make([]string, len(tasks))
	copy(queued, tasks)

	go func() {
		w := bufio.NewWriter(stdin)
		for _, t := range queued {
			w.WriteString(t)
			w.WriteByte('\n')
		}
		if err := w.Flush(); err != nil {
			log.Warnf("writing task list to backend: %v", err)
		}
		// Closing stdin signals end-of-input; the backend reads the whole
		// list before producing any status output.
		stdin.Close()
	}()

	var wg sync.WaitGroup
	var tailMu sync.Mutex
	var tail []string

	wg.Add(2)
	go func() {
		defer wg.Done()
		s.readStdout(stdout)
	}()
	go func() {
		defer wg.Done()
		s.readStderr(stderr, &tailMu, &tail)
	}()

	go func() {
		wg.Wait()
		err := cmd.Wait()

		s.mu.Lock()
		killed := s.killed
		s.cmd = nil
		s.state = StateIdle
		s.mu.Unlock()

		tailMu.Lock()
		stderrTail := strings.Join(tail, "\n")
		tailMu.Unlock()

		outcome := classify(err, killed)
		outcome.StderrTail = stderrTail
		log.Infof("backend engine finished: state=%d exit=%d err=%v", outcome.State, outcome.ExitCode, outcome.Err)
		if s.events.Finished != nil {
			s.events.Finished(outcome)
		}
	}()
}

// Cancel forcibly terminates the running session. There is no graceful
// shutdown handshake; kill is the only way to end a run early.
func (s *Supervisor) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning && s.state != StateStarting {
		return
	}
	if s.cmd != nil && s.cmd.Process != nil {
		s.killed = true
		if err := s.cmd.Process.Kill(); err != nil {
			log.Warnf("killing backend engine: %v", err)
		}
	}
}

func (s *Supervisor) readStdout(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if rec, ok := ParseStatusLine(line); ok {
			if s.events.Status != nil {
				s.events.Status(rec)
			}
			continue
		}
		// Malformed status records fall through here and surface as log
		// lines, verbatim.
		if s.events.Log != nil {
			s.events.Log(line)
		}
	}
}

func (s *Supervisor) readStderr(r io.Reader, tailMu *sync.Mutex, tail *[]string) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		tailMu.Lock()
		*tail = append(*tail, line)
		if len(*tail) > stderrTailLines {
			*tail = (*tail)[len(*tail)-stderrTailLines:]
		}
		tailMu.Unlock()
		if s.events.ErrLog != nil {
			s.events.ErrLog(line)
		}
	}
}

// classify maps the process exit to a terminal outcome. A killed process is
// the cancelled-by-user path; there is no other signal source.
func classify(err error, killed bool) Outcome {
	if killed {
		return Outcome{State: StateCancelled, ExitCode: -1}
	}
	if err == nil {
		return Outcome{State: StateSucceeded}
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		code := exitErr.ExitCode()
		if code == -1 {
			// Terminated by a signal we didn't send ourselves; surface it
			// as a cancelled run rather than inventing an exit code.
			return Outcome{State: StateCancelled, ExitCode: -1, Err: err}
		}
		return Outcome{State: StateFailed, ExitCode: code, Err: err}
	}
	return Outcome{State: StateFailed, ExitCode: -1, Err: err}
}
