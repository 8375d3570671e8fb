// Package instance keeps a single dreamwall process owning the refresh loop.
//
// A lock file in the data directory records the owner's PID. A lock left by
// a process that is no longer alive, or whose PID now belongs to a different
// program, is treated as stale and taken over.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

// ErrAlreadyRunning is returned when another live dreamwall holds the lock.
var ErrAlreadyRunning = errors.New("another dreamwall instance is running")

// findProcess is swapped in tests.
var findProcess = ps.FindProcess

// Lock is a held instance lock.
type Lock struct {
	path string
	pid  int
}

// Acquire takes the lock at path.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	pid := os.Getpid()

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			_, werr := f.WriteString(strconv.Itoa(pid) + "\n")
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(path)
				return nil, fmt.Errorf("write lock: %w", errors.Join(werr, cerr))
			}
			return &Lock{path: path, pid: pid}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create lock: %w", err)
		}

		owner, running, err := Owner(path)
		if err != nil {
			return nil, err
		}
		if running && owner != pid {
			return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, owner)
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("remove stale lock: %w", err)
		}
	}
	return nil, fmt.Errorf("%w: lock at %s keeps reappearing", ErrAlreadyRunning, path)
}

// Owner reports the PID recorded at path and whether that process is a live
// dreamwall. A missing lock yields (0, false, nil).
func Owner(path string) (int, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read lock: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false, nil
	}
	proc, err := findProcess(pid)
	if err != nil || proc == nil {
		return pid, false, nil
	}
	return pid, sameProgram(proc.Executable()), nil
}

// Release removes the lock if this process still owns it.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read lock: %w", err)
	}
	if strings.TrimSpace(string(data)) != strconv.Itoa(l.pid) {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove lock: %w", err)
	}
	return nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

func sameProgram(exe string) bool {
	return normalize(exe) == normalize(selfName())
}

func selfName() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Base(exe)
	}
	return filepath.Base(os.Args[0])
}

func normalize(name string) string {
	return strings.TrimSuffix(strings.ToLower(filepath.Base(name)), ".exe")
}
