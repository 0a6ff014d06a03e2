package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/segskip/segskip/log"
	"github.com/segskip/segskip/overlay"
	"github.com/segskip/segskip/segment"
	"github.com/segskip/segskip/util"
	"github.com/segskip/segskip/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond

	// osdDuration is how long notifications stay on screen.
	osdDuration = 3 * time.Second
)

// MPV talks to one mpv instance over JSON-IPC, either launched by us or already running.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv exits or the attachment is closed
	closeOnce  sync.Once
	mu         sync.Mutex // serializes IPC commands
}

// NewMPV creates an idle instance. Play launches the process.
func NewMPV() *MPV {
	return &MPV{exited: make(chan struct{})}
}

// Attach connects to an mpv started elsewhere with --input-ipc-server=socket.
func Attach(socket string) (*MPV, error) {
	m := &MPV{socketPath: socket, exited: make(chan struct{})}

	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil, fmt.Errorf("attach to %s: %w", socket, err)
	}
	conn.Close()

	return m, nil
}

// Play opens target. The first call launches mpv; later calls load the target into the running instance.
func (m *MPV) Play(target string) error {
	safe, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if m.IsRunning() {
		_, err := m.sendCommand("loadfile", safe, "replace")
		return err
	}

	if m.socketPath == "" {
		random := make([]byte, 4)
		if _, err := rand.Read(random); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(where.Sockets(), fmt.Sprintf("mpv-%x.sock", random))
	}

	// only the socket and window behaviour; everything else stays with the user's mpv.conf
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server=" + m.socketPath,
		"--force-window=yes",
		"--idle=yes",
		safe,
	}

	m.cmd = exec.Command("mpv", args...)
	m.cmd.SysProcAttr = sysProcAttr()

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	exited := m.exited
	go func() {
		_ = m.cmd.Wait()
		m.closeOnce.Do(func() { close(exited) })
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return nil
}

// Wait returns a channel that is closed when mpv exits or Close is called.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

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

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// IsRunning reports whether mpv answers on the socket.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand("get_property", "pid")
	return err == nil
}

// GetTimePos returns the playback position in seconds.
func (m *MPV) GetTimePos() (float64, error) {
	return m.getFloatProperty(PropTimePos)
}

// GetDuration returns the length of the loaded file in seconds.
func (m *MPV) GetDuration() (float64, error) {
	return m.getFloatProperty(PropDuration)
}

// GetPausedStatus reports whether playback is paused.
func (m *MPV) GetPausedStatus() (bool, error) {
	data, err := m.sendCommand("get_property", PropPause)
	if err != nil {
		return false, err
	}
	paused, _ := data.(bool)
	return paused, nil
}

// GetPath returns the path or URL of the loaded file, "" when idle.
func (m *MPV) GetPath() (string, error) {
	data, err := m.sendCommand("get_property", PropPath)
	if err != nil {
		if strings.Contains(err.Error(), "property unavailable") {
			return "", nil
		}
		return "", err
	}
	path, _ := data.(string)
	return path, nil
}

// Seek moves playback to an absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand("seek", seconds, "absolute")
	return err
}

// Set sets a property.
func (m *MPV) Set(property string, value any) error {
	_, err := m.sendCommand("set_property", property, value)
	return err
}

// ShowText displays text on the OSD.
func (m *MPV) ShowText(text string, d time.Duration) error {
	_, err := m.sendCommand("show-text", text, d.Milliseconds())
	return err
}

// Notify shows a notification on the OSD.
func (m *MPV) Notify(title, message string) error {
	return m.ShowText(title+": "+message, osdDuration)
}

// SetChapters replaces the chapter list of the loaded file.
func (m *MPV) SetChapters(chapters []Chapter) error {
	list := make([]map[string]any, len(chapters))
	for i, c := range chapters {
		list[i] = map[string]any{"title": c.Title, "time": c.Time}
	}
	return m.Set("chapter-list", list)
}

// Mark publishes the overlay's bars as chapters so they show on mpv's own timeline.
func (m *MPV) Mark(bars []overlay.Bar) error {
	return m.SetChapters(Chapters(bars))
}

// Close quits a launched mpv, or just lets go of an attached one.
func (m *MPV) Close() error {
	defer m.closeOnce.Do(func() { close(m.exited) })

	if m.socketPath == "" || m.cmd == nil {
		return nil
	}

	_, _ = m.sendCommand("quit")

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return 0, err
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}
	return val, nil
}

// Chapter is an entry of mpv's chapter-list.
type Chapter struct {
	Title string
	Time  float64
}

// ContentChapter titles the stretches between segments.
const ContentChapter = "Content"

// Chapters turns bars into a chapter list: content from 0, then each segment and the content resuming after it.
func Chapters(bars []overlay.Bar) []Chapter {
	chapters := []Chapter{{Title: ContentChapter, Time: 0}}

	sorted := make([]overlay.Bar, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Segment.Start < sorted[j].Segment.Start
	})

	for _, bar := range sorted {
		info := segment.Describe(bar.Segment.Category)
		chapters = append(chapters,
			Chapter{Title: util.Capitalize(info.Name), Time: bar.Segment.Start},
			Chapter{Title: ContentChapter, Time: bar.Segment.End},
		)
	}

	return chapters
}

// sanitizeMediaTarget validates a target before it goes on mpv's command line.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	// anything starting with - would be read as a flag
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "ytdl":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}
