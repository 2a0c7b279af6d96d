package lock

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int {
	return m.pid
}

func (m *mockProcess) PPid() int {
	return 0
}

func (m *mockProcess) Executable() string {
	return m.executable
}

func withProcesses(t *testing.T, pid int, running map[int]string) {
	t.Helper()
	oldFind, oldPid, oldNow := findProcessFunc, getpidFunc, nowFunc
	t.Cleanup(func() {
		findProcessFunc, getpidFunc, nowFunc = oldFind, oldPid, oldNow
	})

	getpidFunc = func() int { return pid }
	nowFunc = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	findProcessFunc = func(p int) (ps.Process, error) {
		exe, ok := running[p]
		if !ok {
			return nil, nil
		}
		return &mockProcess{pid: p, executable: exe}, nil
	}
}

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()
	withProcesses(t, 100, map[int]string{100: "cortisol"})

	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	holder, err := Read(Path(dir))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if holder.PID != 100 {
		t.Errorf("expected pid 100, got %d", holder.PID)
	}
	if _, ok := Status(dir); !ok {
		t.Error("expected Status to report the live holder")
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(Path(dir)); !os.IsNotExist(err) {
		t.Error("lockfile should be removed after release")
	}
	if err := l.Release(); err != nil {
		t.Errorf("second Release should be a no-op, got %v", err)
	}
}

func TestAcquireHeldByLiveProcess(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte("200|2024-03-01T08:00:00Z"), 0600); err != nil {
		t.Fatal(err)
	}
	withProcesses(t, 100, map[int]string{200: "cortisol"})

	_, err := Acquire(dir)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if !strings.Contains(err.Error(), "pid 200") {
		t.Errorf("expected holder pid in error, got %v", err)
	}
}

func TestAcquireReplacesStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		running map[int]string
	}{
		{
			name:    "process gone",
			content: "200|2024-03-01T08:00:00Z",
			running: map[int]string{},
		},
		{
			name:    "pid reused by another program",
			content: "200|2024-03-01T08:00:00Z",
			running: map[int]string{200: "firefox"},
		},
		{
			name:    "malformed",
			content: "garbage",
			running: map[int]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(Path(dir), []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			withProcesses(t, 100, tt.running)

			l, err := Acquire(dir)
			if err != nil {
				t.Fatalf("Acquire failed: %v", err)
			}
			defer l.Release()

			holder, err := Read(Path(dir))
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if holder.PID != 100 {
				t.Errorf("expected lock to be taken over by pid 100, got %d", holder.PID)
			}
		})
	}
}

func TestReleaseLeavesForeignLock(t *testing.T) {
	dir := t.TempDir()
	withProcesses(t, 100, map[int]string{100: "cortisol"})

	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if err := os.WriteFile(Path(dir), []byte("300|2024-03-01T08:00:00Z"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(Path(dir)); err != nil {
		t.Error("lockfile owned by another process should be kept")
	}
}

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"no separator", "123", "malformed"},
		{"bad pid", "abc|2024-03-01T08:00:00Z", "invalid process ID"},
		{"negative pid", "-4|2024-03-01T08:00:00Z", "invalid process ID"},
		{"bad time", "123|yesterday", "invalid timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := Path(t.TempDir())
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			_, err := Read(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
