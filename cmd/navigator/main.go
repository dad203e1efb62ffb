// Command navigator drives the reactive LPA* engine against a
// scripted scenario, and manages its configuration file.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"upside-down-research.com/oss/lpastar-nav/internal/navcommands"
)

var CLI struct {
	Run    navcommands.RunCommand    `cmd:"" help:"Run a scripted scenario through the reactive loop"`
	Config navcommands.ConfigCommand `cmd:"" help:"Manage the navigator configuration file"`
	Doctor navcommands.DoctorCommand `cmd:"" help:"Validate a configuration file"`
}

const banner = `
  _ __   __ ___   _(_) __ _  __ _| |_ ___  _ __
 | '_ \ / _' \ \ / / |/ _' |/ _' | __/ _ \| '__|
 | | | | (_| |\ V /| | (_| | (_| | || (_) | |
 |_| |_|\__,_| \_/ |_|\__, |\__,_|\__\___/|_|
                       |___/
Reactive LPA* grid navigation engine
`

func main() {
	log.SetLevel(log.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("navigator"),
		kong.Description("Reactive LPA* grid navigation engine.\n\nRun scripted scenarios, validate configuration."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: false,
			Summary: true,
		}),
	)

	if ctx.Command() == "" {
		fmt.Println(banner)
		fmt.Println("Quick start:")
		fmt.Println("  $ navigator config init               # create a config file")
		fmt.Println("  $ navigator doctor --config nav.yaml   # verify it")
		fmt.Println("  $ navigator run --config nav.yaml --scenario scenario.yaml")
		fmt.Println()
		os.Exit(0)
	}

	if err := ctx.Run(); err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}
