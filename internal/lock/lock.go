// Package lock keeps two cortisol processes from writing the same store at once.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/cortisol/internal/constants"
	"github.com/julianstephens/cortisol/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
	nowFunc         = time.Now
)

// ErrLocked is returned when another live cortisol process holds the lock
var ErrLocked = errors.New("another cortisol session is running")

// Holder describes the process recorded in a lockfile
type Holder struct {
	PID       int
	StartedAt time.Time
}

// Lock is a held session lock
type Lock struct {
	path string
	pid  int
}

// Path returns the lockfile location for a config directory
func Path(configDir string) string {
	return filepath.Join(configDir, constants.LockfileName)
}

// Acquire takes the session lock in configDir.
// A lockfile left behind by a process that is gone, or that is not cortisol, is replaced.
func Acquire(configDir string) (*Lock, error) {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	path := Path(configDir)
	pid := getpidFunc()
	content := fmt.Sprintf("%d|%s", pid, nowFunc().UTC().Format(time.RFC3339))

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			_, werr := f.WriteString(content)
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile: %w", errors.Join(werr, cerr))
			}
			logger.Debug("Session lock acquired", "path", path, "pid", pid)
			return &Lock{path: path, pid: pid}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		holder, err := Read(path)
		if err == nil && holder.PID != pid && isCortisol(holder.PID) {
			return nil, fmt.Errorf("%w (pid %d, since %s)", ErrLocked, holder.PID, holder.StartedAt.Local().Format(time.Kitchen))
		}

		logger.Warn("Replacing stale session lock", "path", path, "error", err)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}

	return nil, fmt.Errorf("%w: could not claim %s", ErrLocked, path)
}

// Release removes the lockfile if it still belongs to this lock
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	holder, err := Read(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if holder.PID != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	logger.Debug("Session lock released", "path", l.path)
	return nil
}

// Read parses a lockfile
func Read(path string) (Holder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Holder{}, err
	}

	pidPart, startedPart, ok := strings.Cut(strings.TrimSpace(string(content)), "|")
	if !ok {
		return Holder{}, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(pidPart)
	if err != nil || pid <= 0 {
		return Holder{}, errors.New("invalid process ID in lockfile")
	}
	startedAt, err := time.Parse(time.RFC3339, startedPart)
	if err != nil {
		return Holder{}, errors.New("invalid timestamp in lockfile")
	}
	return Holder{PID: pid, StartedAt: startedAt}, nil
}

// Status reports the live holder of the lock in configDir, if any
func Status(configDir string) (Holder, bool) {
	holder, err := Read(Path(configDir))
	if err != nil || !isCortisol(holder.PID) {
		return Holder{}, false
	}
	return holder, true
}

func isCortisol(pid int) bool {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.ProcessNamePrefix)
}
