package workspace

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// LockSuffix is appended to a file's path to name its lock file.
	LockSuffix = ".lock"
	// StaleLockTimeout is the age after which a lock file is considered
	// abandoned.
	StaleLockTimeout = 2 * time.Minute
)

// ErrLocked is returned when another process holds the lock for a file.
var ErrLocked = errors.New("file is being modified by another process")

// FileLock is a lock file holding the owner's PID and a token unique to
// this acquisition.
type FileLock struct {
	lockPath string
	token    string
	acquired bool
	stale    time.Duration
}

// NewFileLock creates a lock guarding target.
func NewFileLock(target string) *FileLock {
	return &FileLock{
		lockPath: target + LockSuffix,
		stale:    StaleLockTimeout,
	}
}

// TryAcquire attempts to acquire the lock.
// Returns true if acquired, false if another process holds it.
func (l *FileLock) TryAcquire() (bool, error) {
	l.breakStale()

	f, err := os.OpenFile(l.lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create lock file: %w", err)
	}
	defer f.Close()

	token := uuid.NewString()
	if _, err := fmt.Fprintf(f, "%d\n%s\n", os.Getpid(), token); err != nil {
		os.Remove(l.lockPath)
		return false, fmt.Errorf("failed to write lock file: %w", err)
	}

	l.token = token
	l.acquired = true
	return true, nil
}

// breakStale removes an abandoned lock file. The file is renamed to a
// private name first and put back if it turns out to be fresh.
func (l *FileLock) breakStale() {
	info, err := os.Stat(l.lockPath)
	if err != nil || time.Since(info.ModTime()) <= l.stale {
		return
	}

	grave := l.lockPath + ".stale-" + uuid.NewString()
	if err := os.Rename(l.lockPath, grave); err != nil {
		return
	}
	defer os.Remove(grave)

	if moved, err := os.Stat(grave); err == nil && time.Since(moved.ModTime()) <= l.stale {
		// Link fails if the path was taken again meanwhile.
		_ = os.Link(grave, l.lockPath)
	}
}

// Release releases the lock. A lock file that was reclaimed by another
// owner after going stale is left in place.
func (l *FileLock) Release() error {
	if !l.acquired {
		return nil
	}
	l.acquired = false

	_, token, err := l.read()
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if token != l.token {
		return nil
	}

	if err := os.Remove(l.lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// GetPID returns the PID stored in the lock file
func (l *FileLock) GetPID() (int, error) {
	pid, _, err := l.read()
	return pid, err
}

// read parses the lock file: the owner's PID on the first line and, for
// locks written by this package, the acquisition token on the second.
func (l *FileLock) read() (int, string, error) {
	data, err := os.ReadFile(l.lockPath)
	if err != nil {
		return 0, "", err
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0, "", errors.New("empty lock file")
	}
	pid, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, "", fmt.Errorf("invalid PID in lock file: %w", err)
	}
	var token string
	if len(fields) > 1 {
		token = fields[1]
	}
	return pid, token, nil
}

// Locker serialises read-modify-write cycles per file: goroutines of this
// process queue on a mutex, other processes are kept out by a FileLock.
type Locker struct {
	mu    sync.Mutex
	paths map[string]*sync.Mutex
}

// NewLocker creates an empty Locker.
func NewLocker() *Locker {
	return &Locker{paths: make(map[string]*sync.Mutex)}
}

func (l *Locker) pathMutex(path string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.paths[path]
	if !ok {
		m = &sync.Mutex{}
		l.paths[path] = m
	}
	return m
}

// Acquire blocks until no other goroutine holds path, then takes the lock
// file. It returns ErrLocked if another process holds the lock file.
func (l *Locker) Acquire(path string) (func(), error) {
	m := l.pathMutex(path)
	m.Lock()

	fl := NewFileLock(path)
	ok, err := fl.TryAcquire()
	if err != nil {
		m.Unlock()
		return nil, err
	}
	if !ok {
		m.Unlock()
		if pid, perr := fl.GetPID(); perr == nil {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, pid)
		}
		return nil, ErrLocked
	}

	return func() {
		fl.Release()
		m.Unlock()
	}, nil
}
