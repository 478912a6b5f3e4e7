package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gopower/adapters/excel"
	"gopower/app"
	"gopower/domain/power"
	"gopower/internal/config"
	"gopower/internal/container"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "gopower",
		Short: "Statistical power and sample size calculator",
	}

	rootCmd.AddCommand(
		newSolveCmd(),
		newSweepCmd(),
		newTestsCmd(),
		newDocCmd(),
		newHistoryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildContainer() (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return container.New(cfg)
}

// coreFlags registers the four core parameters plus the design fields every
// family might need. Which core flags were actually set decides the unknown.
func coreFlags(cmd *cobra.Command, p *power.Parameters) {
	flags := cmd.Flags()
	flags.Float64("n", 0, "total sample size across groups")
	flags.Float64("effect", 0, "standardized effect size")
	flags.Float64("alpha", 0, "significance level")
	flags.Float64("power", 0, "target power")

	flags.IntVar(&p.Tails, "tails", 0, "1 or 2 tails")
	flags.IntVar(&p.Groups, "groups", 0, "number of groups or cells")
	flags.IntVar(&p.Cells, "cells", 0, "total design cells")
	flags.IntVar(&p.Measurements, "measurements", 0, "repeated measurements per subject")
	flags.IntVar(&p.Predictors, "predictors", 0, "total model predictors")
	flags.IntVar(&p.Tested, "tested", 0, "predictors in the tested set")
	flags.IntVar(&p.Covariates, "covariates", 0, "covariates or partialled controls")
	flags.IntVar(&p.ModelDF, "model-df", 0, "contingency or model degrees of freedom")
	flags.Float64Var(&p.Correlation, "correlation", 0, "within-pair or between-measure correlation")
	flags.Float64Var(&p.BaselineProb, "baseline-prob", 0, "baseline event probability")
	flags.Float64Var(&p.CovariateR2, "covariate-r2", 0, "squared multiple correlation with covariates")
	flags.Float64Var(&p.DropoutRate, "dropout", 0, "expected dropout rate")
}

// readCoreFlags copies explicitly set core flags into the parameters.
func readCoreFlags(cmd *cobra.Command, p *power.Parameters) {
	flags := cmd.Flags()
	for name, dst := range map[string]**float64{
		"n":      &p.SampleSize,
		"effect": &p.EffectSize,
		"alpha":  &p.Alpha,
		"power":  &p.Power,
	} {
		if flags.Changed(name) {
			v, _ := flags.GetFloat64(name)
			*dst = power.Float(v)
		}
	}
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func newSolveCmd() *cobra.Command {
	var family string
	params := power.Parameters{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve the missing one of n, effect, alpha and power",
		Long: `Solve the unknown parameter of a power analysis.

Set exactly three of --n, --effect, --alpha and --power; the fourth is solved.

Example: gopower solve --family ttest_two_sample --effect 0.5 --alpha 0.05 --power 0.8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			readCoreFlags(cmd, &params)
			params.Family = power.Family(family)

			unknown, ok := params.Unknown()
			if !ok {
				return fmt.Errorf("set exactly three of --n, --effect, --alpha, --power")
			}
			params = power.ApplyDefaults(params, params.Family)
			params.ClearField(unknown)

			c, err := buildContainer()
			if err != nil {
				return err
			}
			defer c.Close()

			calc, err := c.Calculations.Calculate(cmd.Context(), params, unknown)
			if err != nil {
				return err
			}
			return printJSON(calc)
		},
	}

	cmd.Flags().StringVar(&family, "family", "", "test family (see 'gopower tests')")
	coreFlags(cmd, &params)
	cmd.MarkFlagRequired("family")
	return cmd
}

func newSweepCmd() *cobra.Command {
	var family, unknown, xField, yField, export string
	var xFrom, xTo, yFrom, yTo float64
	var xSteps, ySteps int
	params := power.Parameters{}

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate a grid of calculations over one or two axes",
		Long: `Sweep an input field over a range, solving the unknown at each point.

Example: gopower sweep --family ttest_two_sample --unknown power \
  --effect 0.5 --alpha 0.05 --x-field sample_size --x-from 20 --x-to 200 --x-steps 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			readCoreFlags(cmd, &params)
			params.Family = power.Family(family)
			params = power.ApplyDefaults(params, params.Family)

			req := app.SweepRequest{
				Base:    params,
				Unknown: power.Field(unknown),
				XField:  power.Field(xField),
				XFrom:   xFrom,
				XTo:     xTo,
				XSteps:  xSteps,
				YField:  power.Field(yField),
				YFrom:   yFrom,
				YTo:     yTo,
				YSteps:  ySteps,
			}

			c, err := buildContainer()
			if err != nil {
				return err
			}
			defer c.Close()

			result, err := c.Sweeps.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			if export != "" {
				path, err := excel.NewSweepWriter(export).WriteSweep(result)
				if err != nil {
					return err
				}
				fmt.Println("wrote", path)
				return nil
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&family, "family", "", "test family")
	cmd.Flags().StringVar(&unknown, "unknown", "", "field to solve at each point")
	cmd.Flags().StringVar(&xField, "x-field", "", "field varied on the x axis")
	cmd.Flags().Float64Var(&xFrom, "x-from", 0, "x axis start")
	cmd.Flags().Float64Var(&xTo, "x-to", 0, "x axis end")
	cmd.Flags().IntVar(&xSteps, "x-steps", 0, "x axis steps")
	cmd.Flags().StringVar(&yField, "y-field", "", "optional field varied on the y axis")
	cmd.Flags().Float64Var(&yFrom, "y-from", 0, "y axis start")
	cmd.Flags().Float64Var(&yTo, "y-to", 0, "y axis end")
	cmd.Flags().IntVar(&ySteps, "y-steps", 0, "y axis steps")
	cmd.Flags().StringVar(&export, "export", "", "write results to an .xlsx file in this directory")
	coreFlags(cmd, &params)
	cmd.MarkFlagRequired("family")
	cmd.MarkFlagRequired("unknown")
	cmd.MarkFlagRequired("x-field")
	return cmd
}

func newTestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tests",
		Short: "List supported test families",
		RunE: func(cmd *cobra.Command, args []string) error {
			type entry struct {
				Family   power.Family           `json:"family"`
				Label    string                 `json:"label"`
				Metric   power.EffectSizeMetric `json:"metric"`
				Required []string               `json:"required_fields"`
			}
			var entries []entry
			for _, f := range power.Families() {
				metric, _ := power.Metric(f)
				entries = append(entries, entry{
					Family:   f,
					Label:    power.Label(f),
					Metric:   metric,
					Required: power.RequiredFields(f),
				})
			}
			return printJSON(entries)
		},
	}
}

func newDocCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doc [family]",
		Short: "Print the documentation page for a test family",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildContainer()
			if err != nil {
				return err
			}
			defer c.Close()

			md, err := c.Docs.Markdown(power.Family(args[0]))
			if err != nil {
				return err
			}
			fmt.Println(md)
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent calculations (requires DATABASE_URL)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildContainer()
			if err != nil {
				return err
			}
			defer c.Close()

			calcs, err := c.Calculations.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if calcs == nil {
				fmt.Println("no history available, set DATABASE_URL to enable it")
				return nil
			}
			return printJSON(calcs)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of records to show")
	return cmd
}
