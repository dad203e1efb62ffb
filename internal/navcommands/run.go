package navcommands

import (
	"errors"
	"fmt"
	"time"

	"upside-down-research.com/oss/lpastar-nav/internal/config"
	"upside-down-research.com/oss/lpastar-nav/internal/gridmap"
	"upside-down-research.com/oss/lpastar-nav/internal/naverrors"
	"upside-down-research.com/oss/lpastar-nav/internal/o11y"
	"upside-down-research.com/oss/lpastar-nav/internal/planner"
	"upside-down-research.com/oss/lpastar-nav/internal/progress"
	"upside-down-research.com/oss/lpastar-nav/internal/reactive"
	"upside-down-research.com/oss/lpastar-nav/internal/simnav"
)

// RunCommand drives a scripted scenario through the reactive loop
// end to end using the in-process simnav Agent/Sensor pair.
type RunCommand struct {
	Config   string `name:"config" help:"Configuration file path" type:"path" required:""`
	Scenario string `name:"scenario" help:"Scenario file path" type:"path" required:""`
}

// Run executes the run command.
func (cmd *RunCommand) Run() error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}

	scenario, err := LoadScenario(cmd.Scenario)
	if err != nil {
		return err
	}

	m, err := gridmap.New(gridmap.Params{
		Width:                cfg.Map.Width,
		Height:               cfg.Map.Height,
		Resolution:           cfg.Map.Resolution,
		FreeCaseValue:        cfg.Map.FreeCaseValue,
		ObstacleCaseValue:    cfg.Map.ObstacleCaseValue,
		HeuristicsMultiplier: cfg.Map.HeuristicsMultiplier,
	})
	if err != nil {
		return err
	}

	agent := simnav.NewAgent(scenario.StartPose(), 0)
	sensor := simnav.NewSensor(scenario.Timeline())

	p := planner.New(m, agent)
	loop := reactive.New(m, p, agent, sensor,
		time.Duration(cfg.Loop.PeriodMS)*time.Millisecond,
		time.Duration(cfg.Loop.TimeoutSec*float64(time.Second)))
	loop.Progress = progress.NewIndicator(cfg.Output.ShowProgress)
	loop.Progress.Phase("run")

	if cfg.Metrics.Enabled {
		loop.Metrics = o11y.New(o11y.Config{
			PushgatewayURL: cfg.Metrics.PushgatewayURL,
			InfluxURL:      cfg.Metrics.InfluxURL,
			InfluxToken:    cfg.Metrics.InfluxToken,
			InfluxOrg:      cfg.Metrics.InfluxOrg,
			InfluxBucket:   cfg.Metrics.InfluxBucket,
		})
		defer loop.Metrics.Close()
	}

	err = loop.FindPath(scenario.GoalPoint())

	var timeoutErr *naverrors.TimeoutError
	switch {
	case err == nil:
		pos, _ := agent.GetPosition()
		fmt.Printf("\n✅ goal reached at (%.2f, %.2f)\n", pos.X, pos.Y)
		return nil
	case errors.As(err, &timeoutErr):
		fmt.Printf("\n⏱ timed out after %s\n", timeoutErr.Elapsed)
		return err
	default:
		fmt.Printf("\n❌ run failed: %v\n", err)
		return err
	}
}
