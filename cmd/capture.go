// Package cmd implements the command-line interface for framepeek.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/framepeek-cli/framepeek/capture"
	"github.com/framepeek-cli/framepeek/color"
	"github.com/framepeek-cli/framepeek/filesystem"
	"github.com/framepeek-cli/framepeek/icon"
	"github.com/framepeek-cli/framepeek/key"
	"github.com/framepeek-cli/framepeek/preview"
	"github.com/framepeek-cli/framepeek/source"
	"github.com/framepeek-cli/framepeek/store"
	"github.com/framepeek-cli/framepeek/style"
	"github.com/framepeek-cli/framepeek/util"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(captureCmd)

	captureCmd.Flags().Float64P("time", "t", 0, "Playback time to capture, in seconds")
	lo.Must0(captureCmd.MarkFlagRequired("time"))

	captureCmd.Flags().StringP("out", "o", "", "Write the thumbnail to this path instead of the temp directory")
	captureCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")

	captureCmd.Flags().Bool("store", false, "Persist the thumbnail to the localized store")
	lo.Must0(viper.BindPFlag(key.StoreSaveOnCapture, captureCmd.Flags().Lookup("store")))
}

// captureCmd produces a single thumbnail non-interactively.
var captureCmd = &cobra.Command{
	Use:   "capture <media>",
	Short: "Capture a single seek-bar thumbnail non-interactively",
	Long: `Capture one thumbnail of the media at the requested playback time.

The requested time is bucketed the same way the interactive scrubber buckets
hover positions, so repeated captures of nearby times produce the same frame.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		backend := viper.GetString(key.CaptureBackend)
		CheckDependencies(backend)

		src, err := source.New(backend)
		handleErr(err)
		defer util.Ignore(src.Close)

		handleErr(src.Bind(args[0]))

		requested := lo.Must(cmd.Flags().GetFloat64("time"))
		quantized := preview.Quantize(requested, viper.GetFloat64(key.PreviewQuantizeSeconds))

		pipeline := capture.NewPipeline(
			src,
			viper.GetInt(key.CaptureWidth),
			viper.GetInt(key.CaptureHeight),
			viper.GetInt(key.CaptureQuality),
		)

		handle, err := pipeline.Capture(context.Background(), quantized)
		handleErr(err)

		path := handle.Path()

		if out := lo.Must(cmd.Flags().GetString("out")); out != "" {
			handleErr(filesystem.API().WriteFile(out, handle.Bytes(), 0644))
			path = out
		}

		stored := false
		if viper.GetBool(key.StoreSaveOnCapture) {
			record, err := store.Save(handle, args[0], quantized)
			handleErr(err)

			path = record.Path
			stored = true
		}

		width, height := handle.Size()
		report := capture.Report{
			Target:        args[0],
			RequestedTime: requested,
			QuantizedTime: quantized,
			Width:         width,
			Height:        height,
			SizeBytes:     len(handle.Bytes()),
			Path:          path,
			Stored:        stored,
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(os.Stdout).Encode(report))
			return
		}

		fmt.Printf("%s Captured %s of %s (%dx%d, %d bytes)\n%s\n",
			icon.Get(icon.Success),
			style.Fg(color.Purple)(util.FormatTimestamp(quantized)),
			report.Target,
			width, height,
			report.SizeBytes,
			style.Faint(path),
		)
	},
}

func init() {
	captureCmd.AddCommand(captureSchemaCmd)
}

// captureSchemaCmd generates the JSON schema for capture reports.
var captureSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema for capture report objects",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			if strings.ToLower(name) == "report" {
				return "capture." + name
			}

			return name
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(&capture.Report{})))
	},
}
