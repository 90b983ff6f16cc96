package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/housecost/internal/pricing"
	"github.com/Simplici0/housecost/internal/report"
)

// estimateFile is the layout of an input file. Prices are optional.
type estimateFile struct {
	pricing.Input `yaml:",inline"`
	Prices        *pricing.PriceConfig `yaml:"prices"`
}

type estimateOptions struct {
	file   string
	format string
	title  string

	in     pricing.Input
	prices pricing.PriceConfig

	foundation, basement, roof string
	facades, road, neighbors   string
}

func newEstimateCmd() *cobra.Command {
	opts := &estimateOptions{
		in:     pricing.DefaultInput(),
		prices: pricing.DefaultPrices(),
	}

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Compute converted area and package costs",
		Long: `Compute converted area and package costs.

Values come from the built-in defaults, then the input file (YAML or JSON),
then any flags given explicitly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd.OutOrStdout(), cmd.Flags(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "input file (YAML or JSON)")
	f.StringVar(&opts.format, "format", "text", "output format: text or json")
	f.StringVar(&opts.title, "title", "", "title printed at the top of the text report")

	f.Float64Var(&opts.in.Width, "width", opts.in.Width, "lot width in meters")
	f.Float64Var(&opts.in.Length, "length", opts.in.Length, "lot length in meters")
	f.IntVar(&opts.in.Floors, "floors", opts.in.Floors, "floors above the ground floor")
	f.StringVar(&opts.foundation, "foundation", string(opts.in.Foundation), "single, strip, pile or raft")
	f.StringVar(&opts.basement, "basement", string(opts.in.Basement), "none, semi, normal or deep")
	f.BoolVar(&opts.in.HasRoofTop, "roof-top", opts.in.HasRoofTop, "building has a rooftop structure")
	f.Float64Var(&opts.in.RoofTopArea, "roof-top-area", opts.in.RoofTopArea, "rooftop structure area in m²")
	f.StringVar(&opts.roof, "roof", string(opts.in.Roof), "iron_sheet, concrete, tile_iron or tile_concrete")
	f.StringVar(&opts.facades, "facades", string(opts.in.Facades), "one, two or three")
	f.StringVar(&opts.road, "road", string(opts.in.Road), "large, medium or small")
	f.StringVar(&opts.neighbors, "neighbors", string(opts.in.Neighbors), "both_built, one_side_empty or both_empty")
	f.BoolVar(&opts.in.HasElevator, "elevator", opts.in.HasElevator, "include an elevator")
	f.IntVar(&opts.in.ElevatorStops, "elevator-stops", opts.in.ElevatorStops, "elevator stops")
	f.BoolVar(&opts.in.HasPool, "pool", opts.in.HasPool, "include a pool")
	f.Float64Var(&opts.in.PoolArea, "pool-area", opts.in.PoolArea, "pool area in m²")

	f.Float64Var(&opts.prices.Eco, "price-eco", opts.prices.Eco, "eco base price per m²")
	f.Float64Var(&opts.prices.Standard, "price-standard", opts.prices.Standard, "standard base price per m²")
	f.Float64Var(&opts.prices.Lux, "price-lux", opts.prices.Lux, "lux base price per m²")

	return cmd
}

func runEstimate(out io.Writer, flags *pflag.FlagSet, opts *estimateOptions) error {
	in, prices, err := resolveInput(flags, opts)
	if err != nil {
		return err
	}

	logger.Debug("estimating", zap.Any("input", in), zap.Any("prices", prices))

	result, err := pricing.Estimate(in, prices.Clamp())
	if err != nil {
		return err
	}

	switch opts.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Input  pricing.Input       `json:"input"`
			Prices pricing.PriceConfig `json:"prices"`
			pricing.Result
			Shares []report.Share `json:"shares"`
		}{in, prices.Clamp(), result, report.AreaShares(result.Areas)})
	case "text":
		return report.WriteText(out, report.Quote{
			Title:    opts.title,
			Input:    in,
			Prices:   prices.Clamp(),
			Areas:    result.Areas,
			Packages: result.Packages,
		})
	default:
		return fmt.Errorf("unknown format %q (want text or json)", opts.format)
	}
}

// resolveInput layers defaults, the input file and explicitly set flags.
func resolveInput(flags *pflag.FlagSet, opts *estimateOptions) (pricing.Input, pricing.PriceConfig, error) {
	in := pricing.DefaultInput()
	prices := pricing.DefaultPrices()

	if opts.file != "" {
		file, err := readEstimateFile(opts.file)
		if err != nil {
			return in, prices, err
		}
		in = file.Input
		if file.Prices != nil {
			prices = *file.Prices
		}
	}

	var err error
	flags.Visit(func(fl *pflag.Flag) {
		if err != nil {
			return
		}
		err = applyFlag(fl.Name, opts, &in, &prices)
	})
	return in, prices, err
}

func applyFlag(name string, opts *estimateOptions, in *pricing.Input, prices *pricing.PriceConfig) error {
	switch name {
	case "width":
		in.Width = opts.in.Width
	case "length":
		in.Length = opts.in.Length
	case "floors":
		in.Floors = opts.in.Floors
	case "foundation":
		return in.Foundation.UnmarshalText([]byte(opts.foundation))
	case "basement":
		return in.Basement.UnmarshalText([]byte(opts.basement))
	case "roof-top":
		in.HasRoofTop = opts.in.HasRoofTop
	case "roof-top-area":
		in.RoofTopArea = opts.in.RoofTopArea
	case "roof":
		return in.Roof.UnmarshalText([]byte(opts.roof))
	case "facades":
		return in.Facades.UnmarshalText([]byte(opts.facades))
	case "road":
		return in.Road.UnmarshalText([]byte(opts.road))
	case "neighbors":
		return in.Neighbors.UnmarshalText([]byte(opts.neighbors))
	case "elevator":
		in.HasElevator = opts.in.HasElevator
	case "elevator-stops":
		in.ElevatorStops = opts.in.ElevatorStops
	case "pool":
		in.HasPool = opts.in.HasPool
	case "pool-area":
		in.PoolArea = opts.in.PoolArea
	case "price-eco":
		prices.Eco = opts.prices.Eco
	case "price-standard":
		prices.Standard = opts.prices.Standard
	case "price-lux":
		prices.Lux = opts.prices.Lux
	}
	return nil
}

// readEstimateFile decodes a YAML or JSON input file. JSON is valid YAML.
// Fields missing from the file keep their default values.
func readEstimateFile(path string) (estimateFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return estimateFile{}, fmt.Errorf("read input file: %w", err)
	}

	file := estimateFile{Input: pricing.DefaultInput()}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return estimateFile{}, fmt.Errorf("decode input file %s: %w", path, err)
	}
	return file, nil
}
