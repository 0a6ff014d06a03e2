// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/segskip/segskip/color"
	"github.com/segskip/segskip/constant"
	"github.com/segskip/segskip/key"
	"github.com/segskip/segskip/segment"
	"github.com/segskip/segskip/style"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Segskip + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

// autoSkipped lists the categories skipped out of the box.
var autoSkipped = []segment.Category{
	segment.Sponsor,
	segment.Intro,
	segment.Outro,
	segment.Interaction,
	segment.SelfPromo,
	segment.MusicOfftopic,
}

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.SponsorBlockEnable, true, "Start a skipping session whenever the playing video changes")
	for _, c := range segment.Known() {
		info := segment.Describe(c)
		register(
			key.SponsorBlockCategory(string(c)),
			lo.Contains(autoSkipped, c),
			fmt.Sprintf("Skip %s segments (%s)", info.Name, c),
		)
	}
	register(key.SponsorBlockManualSkips, []string{}, "Categories that are only marked on the progress bar, never skipped automatically.\nExample: [\"intro\", \"outro\"]")

	register(key.ProviderHost, constant.ProviderHost, "Address the local segment provider listens on")
	register(key.ProviderPortStart, constant.ProviderPortStart, "First port probed for the segment provider")
	register(key.ProviderPortEnd, constant.ProviderPortEnd, "Last port probed for the segment provider (inclusive)")
	register(key.ProviderTimeoutMs, int(constant.ProviderTimeout.Milliseconds()), "Timeout of a single provider probe, in milliseconds")

	register(key.SessionVideoPollMs, 100, "Interval between lookups of the video element, in milliseconds")
	register(key.SessionVideoPollAttempts, 0, "Lookups of the video element before giving up. 0 means never give up")

	register(key.OverlaySliderSelector, "ytlr-redux-connect-ytlr-progress-bar", "Selector of the slider the segment overlay is attached to")
	register(key.OverlayBarSelector, "ytlr-progress-bar", "Selector of the progress bar whose focus state the overlay mirrors")
	register(key.OverlayFocusAttribute, "hybridnavfocusable", "Progress bar attribute that is \"false\" while the bar is unfocused")
	register(key.OverlayPollMs, 500, "Interval between lookups of the slider, in milliseconds")
	register(key.OverlayPollAttempts, 0, "Lookups of the slider before giving up. 0 means never give up")

	register(key.PlayerSocket, "", "Attach to an mpv started with --input-ipc-server=<socket> instead of launching one")
	register(key.NotifyOSD, true, "Show skip notifications on the mpv OSD")

	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, plain, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
