package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/segskip/segskip/host"
	"github.com/segskip/segskip/loop"
	"github.com/segskip/segskip/overlay"
	"github.com/segskip/segskip/segment"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeMPV answers JSON-IPC commands on a unix socket.
// reply decides the answer to each command; every reply is preceded by a broadcast event.
type fakeMPV struct {
	listener net.Listener
	reply    func(command []any) (data any, errText string)

	mu       sync.Mutex
	commands [][]any
}

func newFakeMPV(t *testing.T, reply func([]any) (any, string)) *fakeMPV {
	path := filepath.Join(t.TempDir(), "mpv.sock")
	l, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { l.Close() })

	f := &fakeMPV{listener: l, reply: reply}
	go f.serve()
	return f
}

func (f *fakeMPV) socket() string {
	return f.listener.Addr().String()
}

func (f *fakeMPV) serve() {
	for {
		conn, err := f.listener.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakeMPV) handle(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var cmd ipcCommand
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
			return
		}

		f.mu.Lock()
		f.commands = append(f.commands, cmd.Command)
		f.mu.Unlock()

		data, errText := f.reply(cmd.Command)
		if errText == "" {
			errText = "success"
		}

		fmt.Fprintln(conn, `{"event":"playback-restart"}`)
		out, _ := json.Marshal(map[string]any{"request_id": cmd.RequestID, "error": errText, "data": data})
		fmt.Fprintln(conn, string(out))
	}
}

func (f *fakeMPV) received() [][]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]any(nil), f.commands...)
}

func TestIPC(t *testing.T) {
	Convey("Given an mpv socket", t, func() {
		fake := newFakeMPV(t, func(command []any) (any, string) {
			switch command[1] {
			case PropTimePos:
				return 12.5, ""
			case PropPause:
				return true, ""
			case PropPath:
				return nil, "property unavailable"
			}
			return nil, ""
		})

		m, err := Attach(fake.socket())
		So(err, ShouldBeNil)

		Convey("Replies are matched past broadcast events", func() {
			pos, err := m.GetTimePos()
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, 12.5)

			paused, err := m.GetPausedStatus()
			So(err, ShouldBeNil)
			So(paused, ShouldBeTrue)
		})

		Convey("mpv errors are returned without retrying", func() {
			_, err := m.sendCommand("get_property", PropPath)
			var refused mpvError
			So(errors.As(err, &refused), ShouldBeTrue)
			So(fake.received(), ShouldHaveLength, 1)

			path, err := m.GetPath()
			So(err, ShouldBeNil)
			So(path, ShouldBeEmpty)
		})

		Convey("Seeks, notifications and chapters become commands", func() {
			So(m.Seek(20.1), ShouldBeNil)
			So(m.Notify("SponsorBlock", "Skipping intro"), ShouldBeNil)
			So(m.Mark([]overlay.Bar{{Segment: segment.Segment{Category: segment.Intro, Start: 5, End: 9}}}), ShouldBeNil)

			got := fake.received()
			So(got, ShouldHaveLength, 3)
			So(got[0], ShouldResemble, []any{"seek", 20.1, "absolute"})
			So(got[1], ShouldResemble, []any{"show-text", "SponsorBlock: Skipping intro", float64(3000)})
			So(got[2][0], ShouldEqual, "set_property")
			So(got[2][1], ShouldEqual, "chapter-list")
			So(got[2][2], ShouldHaveLength, 3)
		})

		Convey("Closing an attachment leaves mpv running", func() {
			So(m.Close(), ShouldBeNil)
			So(m.Close(), ShouldBeNil)
			So(m.IsRunning(), ShouldBeFalse)
			So(fake.received(), ShouldBeEmpty)
		})
	})

	Convey("Attaching to a missing socket fails", t, func() {
		_, err := Attach(filepath.Join(t.TempDir(), "absent.sock"))
		So(err, ShouldNotBeNil)
	})
}

func TestEventListener(t *testing.T) {
	Convey("Given an mpv pushing property changes", t, func() {
		path := filepath.Join(t.TempDir(), "events.sock")
		l, err := net.Listen("unix", path)
		So(err, ShouldBeNil)
		defer l.Close()

		observedNames := make(chan []string, 1)
		go func() {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			defer conn.Close()

			var names []string
			scanner := bufio.NewScanner(conn)
			for len(names) < len(observed) && scanner.Scan() {
				var cmd ipcCommand
				_ = json.Unmarshal(scanner.Bytes(), &cmd)
				names = append(names, cmd.Command[2].(string))
				fmt.Fprintf(conn, "{\"request_id\":%d,\"error\":\"success\"}\n", cmd.RequestID)
			}
			observedNames <- names

			fmt.Fprintln(conn, `{"event":"property-change","id":3,"name":"duration","data":212.4}`)
			fmt.Fprintln(conn, `not json`)
			fmt.Fprint(conn, `{"event":"property-change","id":2,"name":"pa`)
			time.Sleep(10 * time.Millisecond)
			fmt.Fprintln(conn, `use","data":false}`)
			fmt.Fprintln(conn, `{"event":"seek"}`)
		}()

		var (
			mu     sync.Mutex
			events []string
		)
		el := NewEventListener(path, func(name string, data any) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, fmt.Sprintf("%s=%v", name, data))
		})

		So(el.Start(), ShouldBeNil)
		So(<-observedNames, ShouldResemble, observed)

		select {
		case <-el.Done():
		case <-time.After(5 * time.Second):
			t.Fatal("event stream did not end")
		}

		mu.Lock()
		defer mu.Unlock()
		So(events, ShouldResemble, []string{"duration=212.4", "pause=false", "seek=<nil>"})
	})
}

type seeks []float64

func (s *seeks) Seek(seconds float64) error {
	*s = append(*s, seconds)
	return nil
}

func TestVideo(t *testing.T) {
	Convey("Given a video fed by mpv events", t, func() {
		var sought seeks
		v := NewVideo(&sought, loop.Inline{}, Surface(loop.Inline{}, overlay.DefaultOptions()))

		var fired []host.Event
		for _, ev := range []host.Event{host.Play, host.Pause, host.TimeUpdate, host.DurationChange} {
			v.AddListener(ev, func() { fired = append(fired, ev) })
		}

		var navigated []string
		v.OnNavigate = func(path string) { navigated = append(navigated, path) }

		Convey("It is not found before a file is loaded", func() {
			_, ok := v.FindVideo()
			So(ok, ShouldBeFalse)
		})

		Convey("Property changes become events", func() {
			v.Handle(PropPath, "https://www.youtube.com/watch?v=abc")
			v.Handle(PropDuration, 300.0)
			v.Handle(PropTimePos, 4.5)
			v.Handle(PropPause, true)
			v.Handle(PropPause, true)
			v.Handle(PropPause, false)
			v.Handle(PropTimePos, nil)

			So(navigated, ShouldResemble, []string{"https://www.youtube.com/watch?v=abc"})
			So(fired, ShouldResemble, []host.Event{host.DurationChange, host.TimeUpdate, host.Pause, host.Play})
			So(v.Duration(), ShouldEqual, 300)
			So(v.CurrentTime(), ShouldEqual, 4.5)

			found, ok := v.FindVideo()
			So(ok, ShouldBeTrue)
			So(found, ShouldEqual, v)
		})

		Convey("Seeking updates the position and asks mpv", func() {
			v.SetCurrentTime(20.1)
			So(v.CurrentTime(), ShouldEqual, 20.1)
			So([]float64(sought), ShouldResemble, []float64{20.1})
		})

		Convey("A listener can unbind itself", func() {
			var remove func()
			calls := 0
			remove = v.AddListener(host.TimeUpdate, func() {
				calls++
				remove()
			})
			v.Handle(PropTimePos, 1.0)
			v.Handle(PropTimePos, 2.0)
			So(calls, ShouldEqual, 1)
		})
	})
}

func TestSurface(t *testing.T) {
	Convey("Surface carries the elements the overlay looks for", t, func() {
		opts := overlay.DefaultOptions()
		doc := Surface(loop.Inline{}, opts)

		slider := doc.QuerySelector(opts.SliderSelector)
		So(slider, ShouldNotBeNil)
		bar := doc.QuerySelector(opts.BarSelector)
		So(bar.Parent(), ShouldEqual, slider)
		focus, _ := bar.Attribute(opts.FocusAttribute)
		So(focus, ShouldEqual, "false")

		opts.SliderSelector = "#slider"
		opts.BarSelector = ".bar"
		doc = Surface(loop.Inline{}, opts)
		So(doc.QuerySelector("#slider"), ShouldNotBeNil)
		So(doc.QuerySelector(".bar"), ShouldNotBeNil)
	})
}

func TestChapters(t *testing.T) {
	Convey("Chapters", t, func() {
		bars := overlay.Bars([]segment.Segment{
			{Category: segment.Outro, Start: 280, End: 300},
			{Category: segment.Sponsor, Start: 10, End: 20},
			{Category: "chapter", Start: 50, End: 60},
		}, 300)

		So(Chapters(bars), ShouldResemble, []Chapter{
			{Title: ContentChapter, Time: 0},
			{Title: "Sponsored segment", Time: 10},
			{Title: ContentChapter, Time: 20},
			{Title: "Chapter", Time: 50},
			{Title: ContentChapter, Time: 60},
			{Title: "Outro", Time: 280},
			{Title: ContentChapter, Time: 300},
		})

		So(Chapters(nil), ShouldResemble, []Chapter{{Title: ContentChapter, Time: 0}})
	})
}

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		for _, ok := range []string{"https://www.youtube.com/watch?v=abc", "ytdl://abc", "./clips/../video.mkv"} {
			_, err := sanitizeMediaTarget(ok)
			So(err, ShouldBeNil)
		}

		for _, bad := range []string{"", "--script=evil.lua", "file:///etc/passwd", "video\n.mkv"} {
			_, err := sanitizeMediaTarget(bad)
			So(err, ShouldNotBeNil)
		}

		clean, _ := sanitizeMediaTarget(" ./clips/../video.mkv ")
		So(clean, ShouldEqual, "video.mkv")
	})
}
