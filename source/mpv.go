package source

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"image"
	"math"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/framepeek-cli/framepeek/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond

	// stabilizeTolerance is how close the presented position must be to the
	// seek target before the frame is considered stabilized.
	stabilizeTolerance = 0.5
	stabilizeRetries   = 40
	stabilizeDelay     = 50 * time.Millisecond
)

// MPV implements Source by driving a hidden, paused mpv process over its
// JSON-IPC protocol. The process stays alive across frames, which makes
// consecutive nearby seeks much cheaper than respawning a decoder.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	target     string
	duration   float64
	mu         sync.Mutex // Protects socket writes and bind state
}

// NewMPV creates a new mpv-backed frame source (does not start the process).
func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
	}
}

// Bind starts a hidden mpv instance paused on the media target. If an
// instance is already running, it loads the new target into it via IPC.
func (m *MPV) Bind(target string) error {
	safeTarget, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	m.mu.Lock()
	running := m.cmd != nil && m.isAlive()
	m.mu.Unlock()

	if running {
		// Reuse the live process: replace the loaded file.
		if _, err := m.sendCommand([]interface{}{"loadfile", safeTarget, "replace"}); err != nil {
			return fmt.Errorf("load media target: %w", err)
		}
	} else if err := m.start(safeTarget); err != nil {
		return err
	}

	duration, err := m.waitForDuration()
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.target = safeTarget
	m.duration = duration
	m.mu.Unlock()

	log.Debugf("mpv source bound to %s (duration %.2fs)", safeTarget, duration)
	return nil
}

// start spawns the mpv process with a fresh IPC socket.
func (m *MPV) start(safeTarget string) error {
	// Generate a random socket path using os.TempDir() for cross-platform support
	// (macOS $TMPDIR is /var/folders/... not /tmp/)
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("framepeek-%x.sock", randomBytes))
	}

	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		"--pause",
		"--mute=yes",
		"--force-window=no",
		"--keep-open=yes",
		"--idle=yes",
		safeTarget,
	}

	m.cmd = exec.Command("mpv", args...)

	// Detach from parent process group to prevent cascading shell panics.
	m.cmd.SysProcAttr = sysProcAttr()

	// Disable standard pipes to prevent resource leaks.
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// Background goroutine to reap the process and prevent zombies
	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		// If socket never became ready, kill the orphaned process
		if m.cmd.Process != nil {
			select {
			case <-m.exited:
				// Already exited
			default:
				log.Warnf("killing mpv: socket never became ready")
				_ = m.cmd.Process.Kill()
			}
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return nil
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		// Check if process already exited
		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// waitForDuration polls the duration property until the loaded file is decodable.
func (m *MPV) waitForDuration() (float64, error) {
	var lastErr error
	for i := 0; i < stabilizeRetries; i++ {
		duration, err := m.getFloatProperty("duration")
		if err == nil {
			return duration, nil
		}
		// "property unavailable" means the file is still loading, keep polling.
		if !strings.Contains(err.Error(), "property unavailable") {
			return 0, err
		}
		lastErr = err
		time.Sleep(stabilizeDelay)
	}
	return 0, fmt.Errorf("media never became decodable: %w", lastErr)
}

// Target returns the currently bound media target.
func (m *MPV) Target() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target
}

// Duration returns the total duration of the bound media in seconds.
func (m *MPV) Duration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

// SeekTo moves the paused playback position to an absolute timestamp and
// waits until the presented frame has stabilized there, so a subsequent
// ReadFrame never captures an intermediate frame.
func (m *MPV) SeekTo(ctx context.Context, seconds float64) error {
	if m.Target() == "" {
		return ErrNotBound
	}

	if _, err := m.sendCommand([]interface{}{"seek", seconds, "absolute+exact"}); err != nil {
		return fmt.Errorf("seek to %.3fs: %w", seconds, err)
	}

	for i := 0; i < stabilizeRetries; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.exited:
			return fmt.Errorf("mpv exited while seeking")
		default:
		}

		pos, err := m.getFloatProperty("time-pos")
		if err == nil && math.Abs(pos-seconds) <= stabilizeTolerance {
			return nil
		}

		time.Sleep(stabilizeDelay)
	}

	return fmt.Errorf("could not stabilize at %.3fs", seconds)
}

// ReadFrame captures the currently presented frame through mpv's screenshot
// facility and decodes it.
func (m *MPV) ReadFrame(ctx context.Context) (image.Image, error) {
	if m.Target() == "" {
		return nil, ErrNotBound
	}

	shotPath := filepath.Join(os.TempDir(), fmt.Sprintf("framepeek-shot-%d.png", time.Now().UnixNano()))
	defer func() { _ = os.Remove(shotPath) }()

	if _, err := m.sendCommand([]interface{}{"screenshot-to-file", shotPath, "video"}); err != nil {
		if strings.Contains(err.Error(), "unavailable") {
			return nil, fmt.Errorf("%w: no decoded frame to capture", ErrNotBound)
		}
		return nil, fmt.Errorf("capture frame: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(shotPath)
	if err != nil {
		return nil, fmt.Errorf("read captured frame: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode captured frame: %w", err)
	}

	return img, nil
}

// isAlive reports whether the mpv process is still running. Caller holds mu.
func (m *MPV) isAlive() bool {
	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	m.mu.Lock()
	m.target = ""
	socketPath := m.socketPath
	m.mu.Unlock()

	if socketPath == "" {
		return nil
	}

	// Try graceful quit via IPC
	_, _ = m.sendCommand([]interface{}{"quit"})

	// Wait for process to exit (with timeout)
	select {
	case <-m.exited:
		// Clean exit
	case <-time.After(3 * time.Second):
		// Force kill if graceful quit didn't work
		_ = killProcess(m.cmd)
	}

	// Clean up the socket file
	_ = os.Remove(socketPath)

	return nil
}

// getFloatProperty is a helper to retrieve a float64 mpv property via IPC.
func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}
