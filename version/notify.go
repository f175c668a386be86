package version

import (
	"fmt"

	"github.com/framepeek-cli/framepeek/color"
	"github.com/framepeek-cli/framepeek/constant"
	"github.com/framepeek-cli/framepeek/icon"
	"github.com/framepeek-cli/framepeek/key"
	"github.com/framepeek-cli/framepeek/style"
	"github.com/framepeek-cli/framepeek/util"
	"github.com/spf13/viper"
)

// Notify displays a terminal alert when a more recent stable release is available.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking for a newer version...", icon.Get(icon.Progress)))
	latest, err := Latest()
	erase()
	if err == nil {
		comp, err := Compare(latest, constant.Version)
		if err == nil && comp <= 0 {
			return
		}
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/framepeek-cli/framepeek/releases/tag/v"+latest),
	)
}
