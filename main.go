package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Team997Coders/spartanLib2-sub001/motion"
)

func main() {
	cmd := &cli.Command{
		Name:  "motionprofile",
		Usage: "Plan and sample constrained trapezoidal motion profiles",
		Commands: []*cli.Command{
			{
				Name:    "plan",
				Aliases: []string{"p"},
				Usage:   "Print the phase breakdown for a profile",
				Flags:   profileFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					p, err := buildProfile(cmd)
					if err != nil {
						return err
					}
					printPlan(p)
					return nil
				},
			},
			{
				Name:    "sample",
				Aliases: []string{"s"},
				Usage:   "Stream sampled setpoints as CSV",
				Flags: append(profileFlags(),
					&cli.FloatFlag{
						Category: "Sampling",
						Name:     "rate",
						Usage:    "Sample rate in Hz",
						Value:    100,
					},
				),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					p, err := buildProfile(cmd)
					if err != nil {
						return err
					}
					fmt.Println("time,position,velocity,acceleration")
					for _, pt := range p.Generate(cmd.Float("rate")) {
						fmt.Printf("%.4f,%.6f,%.6f,%.6f\n",
							pt.Time, pt.Position, pt.Velocity, pt.Acceleration)
					}
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func profileFlags() []cli.Flag {
	return []cli.Flag{
		&cli.FloatFlag{
			Category: "Limits",
			Name:     "max-velocity",
			Usage:    "Velocity limit (units/sec)",
			Value:    1,
		},
		&cli.FloatFlag{
			Category: "Limits",
			Name:     "max-acceleration",
			Usage:    "Acceleration limit (units/sec^2)",
			Value:    1,
		},
		&cli.FloatFlag{
			Category: "Limits",
			Name:     "max-deceleration",
			Usage:    "Deceleration limit (units/sec^2); 0 means same as max-acceleration",
		},
		&cli.FloatFlag{
			Category: "Endpoints",
			Name:     "target-position",
			Usage:    "Goal position",
			Value:    1,
		},
		&cli.FloatFlag{
			Category: "Endpoints",
			Name:     "target-velocity",
			Usage:    "Goal velocity",
		},
		&cli.FloatFlag{
			Category: "Endpoints",
			Name:     "initial-position",
			Usage:    "Start position",
		},
		&cli.FloatFlag{
			Category: "Endpoints",
			Name:     "initial-velocity",
			Usage:    "Start velocity",
		},
	}
}

func buildProfile(cmd *cli.Command) (*motion.Profile, error) {
	c := motion.Constraints{
		MaxVelocity:     cmd.Float("max-velocity"),
		MaxAcceleration: cmd.Float("max-acceleration"),
		MaxDeceleration: cmd.Float("max-deceleration"),
	}
	if c.MaxDeceleration == 0 {
		c.MaxDeceleration = c.MaxAcceleration
	}
	target := motion.State{
		Position: cmd.Float("target-position"),
		Velocity: cmd.Float("target-velocity"),
	}
	initial := motion.State{
		Position: cmd.Float("initial-position"),
		Velocity: cmd.Float("initial-velocity"),
	}
	return motion.NewAsymmetricTrapezoid(c, target, initial)
}

func printPlan(p *motion.Profile) {
	fmt.Printf("Initial: pos=%.4f vel=%.4f\n", p.Initial().Position, p.Initial().Velocity)
	fmt.Printf("Final:   pos=%.4f vel=%.4f\n", p.Final().Position, p.Final().Velocity)
	fmt.Printf("Total:   %.4fs over %d phase(s)\n", p.TotalTime(), len(p.Phases()))
	for i, ph := range p.Phases() {
		kind := "accelerate"
		switch {
		case ph.Acceleration == 0:
			kind = "coast"
		case math.Abs(ph.EndVelocity()) < math.Abs(ph.InitialVelocity):
			kind = "decelerate"
		}
		fmt.Printf("  phase %d: %-10s %.4fs  a=%.4f  v0=%.4f  d=%.4f\n",
			i+1, kind, ph.Duration, ph.Acceleration, ph.InitialVelocity, ph.Displacement)
	}
}
