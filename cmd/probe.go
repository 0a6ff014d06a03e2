package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/segskip/segskip/color"
	"github.com/segskip/segskip/config"
	"github.com/segskip/segskip/icon"
	"github.com/segskip/segskip/segment"
	"github.com/segskip/segskip/session"
	"github.com/segskip/segskip/style"
	"github.com/segskip/segskip/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().BoolP("json", "j", false, "Print the result as JSON")
	probeCmd.SetOut(os.Stdout)
}

var probeCmd = &cobra.Command{
	Use:   "probe <video id or url>",
	Short: "Look up the segments of a video on the local provider",
	Long: `Look up the segments of a video on the local provider.

Ports of the configured window are tried one after another; the first one
answering with segments is reported together with what would happen to each.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := session.ParseVideoID(args[0])
		if id == "" {
			handleErr(fmt.Errorf("no video id in %q", args[0]))
		}

		result, err := newLocator().Find(cmd.Context(), id)
		handleErr(err)

		report := newProbeReport(id, result.Port, result.Segments, session.PolicyFrom(config.Viper()))

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(report))
			return
		}

		cmd.Print(report.Pretty())
	},
}

// Actions taken on a segment.
const (
	actionSkip   = "skip"
	actionManual = "manual"
	actionIgnore = "ignore"
)

type probeSegment struct {
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Action   string  `json:"action"`
	color    string
}

type probeReport struct {
	Video    string         `json:"video"`
	Port     int            `json:"port"`
	Segments []probeSegment `json:"segments"`
}

func newProbeReport(id string, port int, segments []segment.Segment, policy segment.Policy) probeReport {
	return probeReport{
		Video: id,
		Port:  port,
		Segments: lo.Map(segments, func(s segment.Segment, _ int) probeSegment {
			info := segment.Describe(s.Category)

			action := actionIgnore
			switch {
			case !policy.Eligible(s.Category):
			case policy.Manual(s.Category):
				action = actionManual
			default:
				action = actionSkip
			}

			return probeSegment{
				Category: string(s.Category),
				Name:     info.Name,
				Start:    s.Start,
				End:      s.End,
				Action:   action,
				color:    info.Color,
			}
		}),
	}
}

// Pretty renders the report as an aligned table, one segment per line.
func (r probeReport) Pretty() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s on port %s, %s\n\n",
		style.Fg(color.Green)(icon.Get(icon.Provider)),
		style.Title(r.Video),
		style.Bold(fmt.Sprint(r.Port)),
		util.Quantify(len(r.Segments), "segment", "segments"),
	)

	width := util.Max(lo.Map(r.Segments, func(s probeSegment, _ int) int {
		return lipgloss.Width(s.Name)
	})...)
	name := style.New().Width(width + 2).Render

	actions := map[string]func(string) string{
		actionSkip:   style.Fg(color.Green),
		actionManual: style.Fg(color.Yellow),
		actionIgnore: style.Faint,
	}

	for _, s := range r.Segments {
		fmt.Fprintf(&b, "%s %s %s %s %s\n",
			style.Fg(color.New(s.color))("▇▇"),
			name(s.Name),
			style.Faint(util.Timestamp(s.Start)+" → "+util.Timestamp(s.End)),
			style.Faint("("+util.Timestamp(s.End-s.Start)+")"),
			actions[s.Action](s.Action),
		)
	}

	return b.String()
}
