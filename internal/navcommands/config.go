// Package navcommands holds the navigator CLI's kong subcommands: one
// command struct per subcommand, each with a Run method.
package navcommands

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"upside-down-research.com/oss/lpastar-nav/internal/config"
)

// ConfigCommand manages the navigator's configuration file.
type ConfigCommand struct {
	Init ConfigInitCommand `cmd:"" help:"Create a new configuration file"`
	Show ConfigShowCommand `cmd:"" help:"Print the effective configuration"`
}

// ConfigInitCommand writes an example configuration file.
type ConfigInitCommand struct {
	Output string `name:"output" help:"Output path for config file" default:"navigator.yaml"`
	Force  bool   `name:"force" help:"Overwrite existing file"`
}

// Run executes the config init command.
func (cmd *ConfigInitCommand) Run() error {
	if _, err := os.Stat(cmd.Output); err == nil && !cmd.Force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", cmd.Output)
	}

	if err := os.WriteFile(cmd.Output, []byte(config.ExampleConfig()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("✓ Created configuration file: %s\n", cmd.Output)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit the config file to set your map dimensions")
	fmt.Println("  2. Run 'navigator doctor --config " + cmd.Output + "' to verify it")
	fmt.Println("  3. Run 'navigator run --config " + cmd.Output + " --scenario <file>' to try it")
	return nil
}

// ConfigShowCommand prints the effective configuration for a given file.
type ConfigShowCommand struct {
	Config string `name:"config" help:"Configuration file path" type:"path" required:""`
}

// Run executes the config show command.
func (cmd *ConfigShowCommand) Run() error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
