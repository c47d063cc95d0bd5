package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	calc "github.com/gemelfund/provident-calculator/internal/calculation"
	"github.com/gemelfund/provident-calculator/internal/config"
	"github.com/gemelfund/provident-calculator/internal/domain"
	"github.com/gemelfund/provident-calculator/internal/output"
)

var (
	configFile string
	formatName string
	outputFile string
	verbose    bool
	debug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "provident",
	Short: "Israeli provident fund (kupat gemel lehashkaa) savings simulator",
	Long: `provident simulates monthly accumulation in an investment provident fund:
deposit caps, management fees, inflation-indexed cost basis and the tax
treatment of lump-sum versus annuity withdrawal at age 60.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable info logging")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	calculateCmd.Flags().StringVarP(&configFile, "config", "c", "", "path to YAML scenario configuration (required)")
	calculateCmd.Flags().StringVarP(&formatName, "format", "f", "console", "output format: console, csv, detailed-csv, json")
	calculateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	_ = calculateCmd.MarkFlagRequired("config")

	compareAgesCmd.Flags().StringVarP(&configFile, "config", "c", "", "path to YAML scenario configuration (required)")
	compareAgesCmd.Flags().StringVarP(&formatName, "format", "f", "console", "output format: console, csv, detailed-csv, json")
	compareAgesCmd.Flags().IntSliceVar(&compareAges, "ages", nil, "start ages to compare (default 30,40,50,59)")
	_ = compareAgesCmd.MarkFlagRequired("config")

	compareFeesCmd.Flags().StringVarP(&configFile, "config", "c", "", "path to YAML scenario configuration (required)")
	compareFeesCmd.Flags().StringVarP(&formatName, "format", "f", "console", "output format: console, csv, detailed-csv, json")
	compareFeesCmd.Flags().Float64SliceVar(&compareFees, "fees", nil, "annual AUM fee rates to compare (default 0.004,0.0065,0.0105)")
	_ = compareFeesCmd.MarkFlagRequired("config")

	compareModesCmd.Flags().StringVarP(&configFile, "config", "c", "", "path to YAML scenario configuration (required)")
	compareModesCmd.Flags().StringVarP(&formatName, "format", "f", "console", "output format: console, csv, detailed-csv, json")
	_ = compareModesCmd.MarkFlagRequired("config")

	exampleConfigCmd.Flags().StringVarP(&outputFile, "output", "o", "example_config.yaml", "path for the generated example configuration")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(compareAgesCmd)
	rootCmd.AddCommand(compareFeesCmd)
	rootCmd.AddCommand(compareModesCmd)
	rootCmd.AddCommand(exampleConfigCmd)
}

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Run every scenario in the configuration and report the comparison",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, sets, err := loadRunner()
		if err != nil {
			return err
		}
		results, err := runner.CompareScenarios(sets)
		if err != nil {
			return fmt.Errorf("scenario comparison failed: %w", err)
		}
		return emit(results)
	},
}

var compareAges []int

var compareAgesCmd = &cobra.Command{
	Use:   "compare-ages",
	Short: "Compare identical saving plans started at different ages",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, sets, err := loadRunner()
		if err != nil {
			return err
		}
		results, err := runner.CompareStartAges(sets[0], compareAges)
		if err != nil {
			return fmt.Errorf("start-age comparison failed: %w", err)
		}
		return emit(results)
	},
}

var compareFees []float64

var compareFeesCmd = &cobra.Command{
	Use:   "compare-fees",
	Short: "Compare the same plan under different annual AUM fee levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, sets, err := loadRunner()
		if err != nil {
			return err
		}
		var fees []decimal.Decimal
		for _, f := range compareFees {
			fees = append(fees, decimal.NewFromFloat(f))
		}
		results, err := runner.CompareFees(sets[0], fees)
		if err != nil {
			return fmt.Errorf("fee comparison failed: %w", err)
		}
		return emit(results)
	},
}

var compareModesCmd = &cobra.Command{
	Use:   "compare-modes",
	Short: "Compare lump-sum against annuity withdrawal for the same plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, sets, err := loadRunner()
		if err != nil {
			return err
		}
		results, err := runner.CompareWithdrawalModes(sets[0])
		if err != nil {
			return fmt.Errorf("withdrawal-mode comparison failed: %w", err)
		}
		return emit(results)
	},
}

var exampleConfigCmd = &cobra.Command{
	Use:   "example-config",
	Short: "Write a ready-to-edit example configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		if err := parser.WriteExampleConfiguration(outputFile); err != nil {
			return fmt.Errorf("failed to write example configuration: %w", err)
		}
		fmt.Printf("Example configuration written to %s\n", outputFile)
		return nil
	},
}

// loadRunner parses the configuration and builds a runner with logging wired
// to the verbosity flags.
func loadRunner() (*calc.Runner, []domain.ParameterSet, error) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	sets, err := parser.BuildParameterSets(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	runner := calc.NewRunner()
	if logger := buildLogger(); logger != nil {
		runner.SetLogger(logger)
	}
	return runner, sets, nil
}

func buildLogger() calc.Logger {
	if !verbose && !debug {
		return nil
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return calc.SlogLogger{L: slog.New(h)}
}

func emit(results *domain.ScenarioComparison) error {
	formatter := output.GetFormatterByName(formatName)
	if formatter == nil {
		return fmt.Errorf("unsupported output format %q. Try one of: %v",
			formatName, output.AvailableFormatterNames())
	}
	data, err := formatter.Format(results)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}
	if outputFile == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}
	fmt.Printf("Results written to %s\n", outputFile)
	return nil
}
