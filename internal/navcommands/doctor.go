package navcommands

import (
	"fmt"

	"upside-down-research.com/oss/lpastar-nav/internal/config"
	"upside-down-research.com/oss/lpastar-nav/internal/gridmap"
)

// DoctorCommand validates a configuration file and reports whether a
// GridMap can be built from it.
type DoctorCommand struct {
	Config string `name:"config" help:"Configuration file path" type:"path" required:""`
}

// Run executes the doctor command.
func (cmd *DoctorCommand) Run() error {
	fmt.Println("🩺 Running navigator diagnostics...")
	fmt.Println()

	cfg, err := config.Load(cmd.Config)
	if err != nil {
		fmt.Printf("❌ Config: %v\n", err)
		return err
	}
	fmt.Println("✓ Configuration: valid")

	_, err = gridmap.New(gridmap.Params{
		Width:                cfg.Map.Width,
		Height:               cfg.Map.Height,
		Resolution:           cfg.Map.Resolution,
		FreeCaseValue:        cfg.Map.FreeCaseValue,
		ObstacleCaseValue:    cfg.Map.ObstacleCaseValue,
		HeuristicsMultiplier: cfg.Map.HeuristicsMultiplier,
	})
	if err != nil {
		fmt.Printf("❌ GridMap: %v\n", err)
		return err
	}
	fmt.Printf("✓ GridMap: %dx%d cells at resolution %g\n",
		int(cfg.Map.Width/cfg.Map.Resolution), int(cfg.Map.Height/cfg.Map.Resolution), cfg.Map.Resolution)

	if cfg.Map.HeuristicsMultiplier > cfg.Map.FreeCaseValue {
		fmt.Println("⚠ heuristics_multiplier exceeds free_case_value: heuristic is not admissible")
	}

	fmt.Println()
	fmt.Println("✅ All checks passed")
	return nil
}
