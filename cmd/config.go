package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/segskip/segskip/color"
	"github.com/segskip/segskip/config"
	"github.com/segskip/segskip/filesystem"
	"github.com/segskip/segskip/icon"
	"github.com/segskip/segskip/key"
	"github.com/segskip/segskip/segment"
	"github.com/segskip/segskip/style"
	"github.com/segskip/segskip/util"
	"github.com/segskip/segskip/where"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// closest returns the candidate with the smallest edit distance to s.
func closest(s string, candidates []string) string {
	return lo.MinBy(candidates, func(a string, b string) bool {
		return levenshtein.Distance(s, a) < levenshtein.Distance(s, b)
	})
}

func categoryNames() []string {
	return lo.Map(segment.Known(), func(c segment.Category, _ int) string {
		return string(c)
	})
}

func errUnknownKey(k string) error {
	return fmt.Errorf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(k),
		style.Fg(color.Yellow)(closest(k, lo.Keys(config.Default))),
	)
}

func errUnknownCategory(name string) error {
	return fmt.Errorf(
		"unknown category %s, did you mean %s? Known categories: %s",
		style.Fg(color.Red)(name),
		style.Fg(color.Yellow)(closest(name, categoryNames())),
		strings.Join(categoryNames(), ", "),
	)
}

// lookupField resolves a registered key. Toggles of categories without
// a color and a toggle of their own are reported by category.
func lookupField(k string) (config.Field, error) {
	if field, ok := config.Default[k]; ok {
		return field, nil
	}

	if name, ok := key.CategoryOf(k); ok {
		return config.Field{}, errUnknownCategory(name)
	}

	return config.Field{}, errUnknownKey(k)
}

// parseValue converts command line values into the type of the field's default.
func parseValue(field config.Field, raw []string) (any, error) {
	if len(raw) == 0 {
		return nil, errors.New("value is required as an argument or --value flag")
	}

	switch field.Value.(type) {
	case string:
		return raw[0], nil
	case int:
		v, err := strconv.Atoi(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid integer value: %s", raw[0])
		}
		return v, nil
	case bool:
		v, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value: %s", raw[0])
		}
		return v, nil
	case []string:
		values := lo.Compact(lo.FlatMap(raw, func(r string, _ int) []string {
			return lo.Map(strings.Split(r, ","), func(v string, _ int) string {
				return strings.TrimSpace(v)
			})
		}))

		if field.Key == key.SponsorBlockManualSkips {
			if unknown, ok := lo.Find(values, func(v string) bool {
				return !lo.Contains(categoryNames(), v)
			}); ok {
				return nil, errUnknownCategory(unknown)
			}
			values = lo.Uniq(values)
		}

		return values, nil
	default:
		return nil, fmt.Errorf("key %s can not be set from the command line", field.Key)
	}
}

// describeField renders a field, followed by how segments of its category look
// when the field toggles one.
func describeField(field config.Field) string {
	pretty := field.Pretty()

	name, ok := key.CategoryOf(field.Key)
	if !ok {
		return pretty
	}

	info := segment.Describe(segment.Category(name))
	return fmt.Sprintf(
		"%s\n%s %s %s %s",
		pretty,
		style.Fg(color.Blue)("Segment:"),
		style.Fg(color.New(info.Color))("▇▇"),
		info.Name,
		style.Faint(fmt.Sprintf("(%s, opacity %s)", info.Color, info.Opacity)),
	)
}

// persist writes the in-memory configuration, creating the file on first use.
func persist() error {
	err := viper.WriteConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return viper.SafeWriteConfig()
	}
	return err
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change segskip's settings",
	Long: `Inspect and change segskip's settings.

Category toggles such as sponsorblock.enable_intro decide which segments are
skipped automatically. Categories listed in sponsorblock.manual_skips are only
marked on the timeline. Changes apply from the next video.`,
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringSliceP("key", "k", []string{}, "Keys to describe, all of them if omitted")
	configInfoCmd.Flags().BoolP("json", "j", false, "Print the fields as JSON")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)

	configInfoCmd.SetOut(os.Stdout)
}

var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe settings, including how each segment category is painted",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			keys   = lo.Must(cmd.Flags().GetStringSlice("key"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			fields = lo.Values(config.Default)
		)

		if len(keys) > 0 {
			fields = lo.Map(keys, func(k string, _ int) config.Field {
				field, err := lookupField(k)
				handleErr(err)
				return field
			})
		}

		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			lo.Must0(encoder.Encode(lo.ToSlicePtr(fields)))
			return
		}

		cmd.Println(strings.Join(lo.Map(fields, func(f config.Field, _ int) string {
			return describeField(f)
		}), "\n\n"))
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configSetCmd.Flags().StringSliceP("value", "v", []string{}, "The new value, repeat or separate with commas for lists")
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value...]",
	Short: "Change a setting",
	Example: `  segskip config set sponsorblock.enable_filler true
  segskip config set sponsorblock.manual_skips intro,outro`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		field, err := lookupField(args[0])
		handleErr(err)

		raw := args[1:]
		if len(raw) == 0 {
			raw = lo.Must(cmd.Flags().GetStringSlice("value"))
		}

		v, err := parseValue(field, raw)
		handleErr(err)

		viper.Set(field.Key, v)
		handleErr(persist())

		fmt.Printf(
			"%s set %s to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(field.Key),
			style.Fg(color.Yellow)(fmt.Sprintf("%v", v)),
		)
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print the current value of a setting",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		field, err := lookupField(args[0])
		handleErr(err)

		fmt.Println(viper.Get(field.Key))
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the current settings to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := where.ConfigFile()

		if lo.Must(cmd.Flags().GetBool("force")) {
			handleErr(removeConfig(path))
		}

		handleErr(viper.SafeWriteConfig())
		fmt.Printf(
			"%s wrote config to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			path,
		)
	},
}

// removeConfig deletes the config file. A missing file is not an error.
func removeConfig(path string) error {
	exists, err := filesystem.API().Exists(path)
	if err != nil || !exists {
		return err
	}
	return util.Delete(path)
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Delete the config file, falling back to defaults",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(removeConfig(where.ConfigFile()))
		fmt.Printf(
			"%s deleted config\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
		)
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)

	configResetCmd.Flags().BoolP("all", "a", false, "Reset every setting")
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key...]",
	Short:             "Restore settings to their defaults",
	ValidArgsFunction: completionConfigKeys,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		all := lo.Must(cmd.Flags().GetBool("all"))
		if all == (len(args) > 0) {
			return errors.New("name the keys to reset or pass --all")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fields := lo.Values(config.Default)
		if len(args) > 0 {
			fields = lo.Map(args, func(k string, _ int) config.Field {
				field, err := lookupField(k)
				handleErr(err)
				return field
			})
		}

		for _, field := range fields {
			viper.Set(field.Key, field.Value)
		}
		handleErr(persist())

		if len(args) == 0 {
			fmt.Printf(
				"%s reset all config values\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
			)
			return
		}

		for _, field := range fields {
			fmt.Printf(
				"%s reset %s to %s\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
				style.Fg(color.Purple)(field.Key),
				style.Fg(color.Yellow)(fmt.Sprintf("%v", field.Value)),
			)
		}
	},
}
