package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/lo"
	"github.com/segskip/segskip/clock"
	"github.com/segskip/segskip/color"
	"github.com/segskip/segskip/config"
	"github.com/segskip/segskip/icon"
	"github.com/segskip/segskip/key"
	"github.com/segskip/segskip/locator"
	"github.com/segskip/segskip/log"
	"github.com/segskip/segskip/loop"
	"github.com/segskip/segskip/notify"
	"github.com/segskip/segskip/overlay"
	"github.com/segskip/segskip/player"
	"github.com/segskip/segskip/session"
	"github.com/segskip/segskip/style"
	"github.com/segskip/segskip/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("socket", "s", "", "Attach to an mpv already listening on this IPC socket instead of launching one")
	lo.Must0(viper.BindPFlag(key.PlayerSocket, watchCmd.Flags().Lookup("socket")))

	watchCmd.Flags().Bool("osd", true, "Show notifications on the mpv OSD")
	lo.Must0(viper.BindPFlag(key.NotifyOSD, watchCmd.Flags().Lookup("osd")))

	watchCmd.Flags().String("id", "", "Use this video id instead of reading it from the loaded file")
}

var watchCmd = &cobra.Command{
	Use:   "watch [url]",
	Short: "Play a video in mpv and skip its segments",
	Long: `Play a video in mpv and skip its segments.

Every time mpv loads a file its video id is taken from the URL, segments are
fetched from the local provider, marked as chapters and skipped when reached.`,
	Example: "  segskip watch 'https://www.youtube.com/watch?v=dQw4w9WgXcQ'\n  segskip watch --socket /tmp/mpv.sock",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		forcedID := lo.Must(cmd.Flags().GetString("id"))
		handleErr(runWatch(cmd.Context(), args, forcedID))
	},
}

func runWatch(ctx context.Context, args []string, forcedID string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	mpv, err := openPlayer(args)
	if err != nil {
		return err
	}
	defer util.Ignore(mpv.Close)

	config.Watch()

	lp := loop.New(64)
	opts := overlayOptions()
	opts.Marker = mpv

	video := player.NewVideo(mpv, lp, player.Surface(lp, opts))

	notifier := notify.Multi{notify.Log{}, notify.Func(func(_, message string) error {
		fmt.Printf("%s %s\n", style.Fg(color.Cyan)(icon.Get(icon.Skip)), message)
		return nil
	})}
	if viper.GetBool(key.NotifyOSD) {
		notifier = append(notifier, mpv)
	}

	deps := sessionDeps(lp, video, notifier)
	deps.Overlay = opts
	manager := session.NewManager(deps)

	video.OnNavigate = func(path string) {
		id := forcedID
		if id == "" {
			id = session.ParseVideoID(path)
		}

		if id == "" {
			if path != "" {
				log.Infof("no video id in %s", path)
			}
			manager.Close()
			return
		}

		fmt.Printf("%s %s\n", icon.Get(icon.Video), style.Fg(color.Purple)(id))
		manager.Navigate(id)
	}

	listener := player.NewEventListener(mpv.Socket(), video.Handle)
	if err := listener.Start(); err != nil {
		return err
	}
	defer listener.Stop()

	go func() {
		select {
		case <-mpv.Wait():
		case <-listener.Done():
		case <-ctx.Done():
		}
		stop()
	}()

	fmt.Printf("%s watching mpv on %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), mpv.Socket())

	err = lp.Run(ctx)
	manager.Close()

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func openPlayer(args []string) (*player.MPV, error) {
	if socket := viper.GetString(key.PlayerSocket); socket != "" {
		mpv, err := player.Attach(socket)
		if err != nil {
			return nil, err
		}

		if len(args) > 0 {
			if err := mpv.Play(args[0]); err != nil {
				return nil, err
			}
		}
		return mpv, nil
	}

	if len(args) == 0 {
		return nil, errors.New("a url to play is required unless --socket is set")
	}

	checkDependencies()

	erase := util.PrintErasable(fmt.Sprintf("%s starting mpv...", icon.Get(icon.Progress)))
	defer erase()

	mpv := player.NewMPV()
	if err := mpv.Play(args[0]); err != nil {
		return nil, err
	}
	return mpv, nil
}

func newLocator() *locator.Locator {
	l := locator.New()
	l.Host = viper.GetString(key.ProviderHost)
	l.PortStart = viper.GetInt(key.ProviderPortStart)
	l.PortEnd = viper.GetInt(key.ProviderPortEnd)
	l.Timeout = milliseconds(key.ProviderTimeoutMs)
	return l
}

func overlayOptions() overlay.Options {
	return overlay.Options{
		SliderSelector: viper.GetString(key.OverlaySliderSelector),
		BarSelector:    viper.GetString(key.OverlayBarSelector),
		FocusAttribute: viper.GetString(key.OverlayFocusAttribute),
		PollInterval:   milliseconds(key.OverlayPollMs),
		PollAttempts:   viper.GetInt(key.OverlayPollAttempts),
	}
}

func sessionDeps(lp *loop.Loop, video *player.Video, notifier notify.Notifier) session.Deps {
	return session.Deps{
		Page:              video,
		Locator:           newLocator(),
		Clock:             clock.Real{Exec: lp},
		Exec:              lp,
		Config:            config.Viper(),
		Notifier:          notifier,
		VideoPoll:         milliseconds(key.SessionVideoPollMs),
		VideoPollAttempts: viper.GetInt(key.SessionVideoPollAttempts),
	}
}

func milliseconds(k string) time.Duration {
	return time.Duration(viper.GetInt(k)) * time.Millisecond
}
