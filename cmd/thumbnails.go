// Package cmd implements the command-line interface for framepeek.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/framepeek-cli/framepeek/color"
	"github.com/framepeek-cli/framepeek/icon"
	"github.com/framepeek-cli/framepeek/store"
	"github.com/framepeek-cli/framepeek/style"
	"github.com/framepeek-cli/framepeek/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(thumbnailsCmd)

	thumbnailsCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	thumbnailsCmd.Flags().StringP("remove", "r", "", "Remove the saved thumbnail for this media target at --time")
	thumbnailsCmd.Flags().Float64P("time", "t", 0, "Playback time of the thumbnail to remove, in seconds")

	thumbnailsCmd.MarkFlagsRequiredTogether("remove", "time")
}

// thumbnailsCmd lists and prunes durably saved thumbnails.
var thumbnailsCmd = &cobra.Command{
	Use:   "thumbnails",
	Short: "List and manage durably saved thumbnails",
	Run: func(cmd *cobra.Command, args []string) {
		saved, err := store.All()
		handleErr(err)

		if target := lo.Must(cmd.Flags().GetString("remove")); target != "" {
			seconds := lo.Must(cmd.Flags().GetFloat64("time"))

			record, err := store.Find(target, seconds)
			handleErr(err)
			handleErr(store.Remove(record))
			fmt.Printf("%s Removed %s\n", icon.Get(icon.Success), record)
			return
		}

		records := lo.Values(saved)
		sort.Slice(records, func(i, j int) bool {
			if records[i].Target != records[j].Target {
				return records[i].Target < records[j].Target
			}

			return records[i].Time < records[j].Time
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(os.Stdout).Encode(records))
			return
		}

		if len(records) == 0 {
			fmt.Println(style.Faint("No saved thumbnails"))
			return
		}

		for _, record := range records {
			fmt.Printf("%s %s %s\n  %s\n",
				icon.Get(icon.Camera),
				style.Fg(color.Purple)(record.String()),
				style.Faint(fmt.Sprintf("%dx%d, %d bytes", record.Width, record.Height, record.Size)),
				style.Faint(record.Path),
			)
		}

		fmt.Println()
		fmt.Println(style.Faint(util.Quantify(len(records), "thumbnail", "thumbnails")))
	},
}
