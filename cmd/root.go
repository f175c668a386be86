// Package cmd implements the command-line interface for framepeek.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/framepeek-cli/framepeek/color"
	"github.com/framepeek-cli/framepeek/constant"
	"github.com/framepeek-cli/framepeek/icon"
	"github.com/framepeek-cli/framepeek/key"
	"github.com/framepeek-cli/framepeek/log"
	"github.com/framepeek-cli/framepeek/source"
	"github.com/framepeek-cli/framepeek/style"
	"github.com/framepeek-cli/framepeek/tui"
	"github.com/framepeek-cli/framepeek/util"
	"github.com/framepeek-cli/framepeek/version"
	"github.com/framepeek-cli/framepeek/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("backend", "b", "", "Frame source backend to capture with (ffmpeg or mpv)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("backend", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{source.BackendFFmpeg, source.BackendMPV}, cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.CaptureBackend, rootCmd.PersistentFlags().Lookup("backend")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the framepeek application.
var rootCmd = &cobra.Command{
	Use:   constant.Framepeek + " [media]",
	Short: "A command-line seek-bar thumbnail previewer for video files and streams",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A command-line seek-bar thumbnail previewer for video files and streams"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		backend := viper.GetString(key.CaptureBackend)
		CheckDependencies(backend)

		src, err := source.New(backend)
		handleErr(err)

		options := tui.Options{
			Source: src,
			Target: args[0],
		}
		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
