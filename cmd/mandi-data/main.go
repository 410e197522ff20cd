// Command mandi-data is the market price data pipeline CLI.
//
// Usage:
//
//	mandi-data convert crops data.json crops.converted.json
//	mandi-data convert states data.json states.converted.json --code-map stateCodeMap.json
//	mandi-data convert mandis data.json mandis.converted.json --code-map stateCodeMap.json
//	mandi-data convert prices enam enam.json prices.converted.json
//	mandi-data convert prices agmarknet dump.json prices.converted.json --source-data data.json
//	mandi-data fetch agmarknet --from 2026-02-01 --to 2026-02-17 -o prices.fetched.json
//	mandi-data verify
//	mandi-data seed all
//	mandi-data seed clear prices
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/krishimandi/mandi-data/internal/agmarknet"
	"github.com/krishimandi/mandi-data/internal/config"
	"github.com/krishimandi/mandi-data/internal/convert"
	"github.com/krishimandi/mandi-data/internal/db"
	"github.com/krishimandi/mandi-data/internal/jsonio"
	"github.com/krishimandi/mandi-data/internal/match"
	"github.com/krishimandi/mandi-data/internal/model"
	"github.com/krishimandi/mandi-data/internal/seed"
	"github.com/krishimandi/mandi-data/internal/verify"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

const dataDir = "data"

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "mandi-data",
		Short: "Mandi price data pipeline CLI",
	}

	root.AddCommand(convertCmd())
	root.AddCommand(fetchCmd())
	root.AddCommand(verifyCmd())
	root.AddCommand(seedCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// convert command
// --------------------------------------------------------------------------

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert raw data dumps into catalog files",
	}
	cmd.AddCommand(convertCropsCmd())
	cmd.AddCommand(convertStatesCmd())
	cmd.AddCommand(convertMandisCmd())
	cmd.AddCommand(convertPricesCmd())
	return cmd
}

func convertCropsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crops <input.json> <output.json>",
		Short: "Convert the raw commodity taxonomy into the crop catalog",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dump, err := convert.LoadRawDump(args[0])
			if err != nil {
				return err
			}

			crops, report := convert.Crops(dump)
			if err := jsonio.Write(args[1], crops); err != nil {
				return err
			}

			report.Log(logger)
			for group, count := range convert.GroupCounts(crops) {
				logger.Info("group", "name", group, "count", count)
			}
			logger.Info("converted crops", "count", len(crops), "output", args[1])
			return nil
		},
	}
}

func convertStatesCmd() *cobra.Command {
	var codeMapPath string
	var allowUnmapped bool
	cmd := &cobra.Command{
		Use:   "states <input.json> <output.json>",
		Short: "Convert the raw geographic taxonomy into the state catalog",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dump, err := convert.LoadRawDump(args[0])
			if err != nil {
				return err
			}
			codes, err := convert.LoadStateCodeMap(codeMapPath)
			if err != nil {
				return err
			}

			geo := convert.NewGeography(dump, codes)
			states, report, convErr := convert.States(geo, convert.Options{AllowUnmapped: allowUnmapped})
			report.Log(logger)
			if convErr != nil {
				return convErr
			}

			if err := jsonio.Write(args[1], states); err != nil {
				return err
			}
			logger.Info("converted states",
				"states", len(states), "districts", convert.DistrictCount(states), "output", args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&codeMapPath, "code-map", dataDir+"/stateCodeMap.json", "State name to code map file")
	cmd.Flags().BoolVar(&allowUnmapped, "allow-unmapped", false, "Skip states missing from the code map instead of failing")
	return cmd
}

func convertMandisCmd() *cobra.Command {
	var codeMapPath string
	var allowUnmapped bool
	cmd := &cobra.Command{
		Use:   "mandis <input.json> <output.json>",
		Short: "Convert the raw market taxonomy into the mandi catalog",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dump, err := convert.LoadRawDump(args[0])
			if err != nil {
				return err
			}
			codes, err := convert.LoadStateCodeMap(codeMapPath)
			if err != nil {
				return err
			}

			geo := convert.NewGeography(dump, codes)
			mandis, report, convErr := convert.Mandis(dump, geo, convert.Options{AllowUnmapped: allowUnmapped})
			report.Log(logger)
			if convErr != nil {
				return convErr
			}

			if err := jsonio.Write(args[1], mandis); err != nil {
				return err
			}
			logger.Info("converted mandis", "count", len(mandis), "output", args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&codeMapPath, "code-map", dataDir+"/stateCodeMap.json", "State name to code map file")
	cmd.Flags().BoolVar(&allowUnmapped, "allow-unmapped", false, "Use XX/Unknown placeholders for unmapped geography instead of failing")
	return cmd
}

func convertPricesCmd() *cobra.Command {
	var cropsPath, mandisPath, sourceDataPath string
	cmd := &cobra.Command{
		Use:   "prices <enam|agmarknet> <input.json> <output.json>",
		Short: "Convert a raw price dump into price records",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, inputPath, outputPath := args[0], args[1], args[2]

			crops, mandis, err := loadCatalogs(cropsPath, mandisPath)
			if err != nil {
				return err
			}
			cropIdx := match.NewCropIndex(crops)
			mandiIdx := match.NewMandiIndex(mandis)
			logger.Info("reference data loaded", "crops", cropIdx.Len(), "mandis", mandiIdx.Len())

			var prices []model.Price
			var report *convert.Report

			switch format {
			case "enam":
				var dump convert.ENAMDump
				if err := jsonio.Read(inputPath, &dump); err != nil {
					return err
				}
				prices, report = convert.ENAMPrices(dump.Data, cropIdx, mandiIdx)

			case "agmarknet":
				if sourceDataPath == "" {
					return fmt.Errorf("agmarknet format requires --source-data (the raw taxonomy dump)")
				}
				rawDump, err := convert.LoadRawDump(sourceDataPath)
				if err != nil {
					return err
				}
				var dump convert.AgmarknetDump
				if err := jsonio.Read(inputPath, &dump); err != nil {
					return err
				}
				bridge := convert.NewCommodityBridge(rawDump, cropIdx)
				prices, report = convert.AgmarknetFilePrices(dump.Records, bridge, mandiIdx)

			default:
				return fmt.Errorf("unknown format %q, use \"enam\" or \"agmarknet\"", format)
			}

			if err := jsonio.Write(outputPath, prices); err != nil {
				return err
			}
			report.Log(logger)
			logger.Info("converted prices", "count", len(prices), "source", format, "output", outputPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&cropsPath, "crops", dataDir+"/crops.converted.json", "Converted crop catalog")
	cmd.Flags().StringVar(&mandisPath, "mandis", dataDir+"/mandis.converted.json", "Converted mandi catalog")
	cmd.Flags().StringVar(&sourceDataPath, "source-data", "", "Raw taxonomy dump (agmarknet format only)")
	return cmd
}

// --------------------------------------------------------------------------
// fetch command
// --------------------------------------------------------------------------

func fetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch price data from live APIs",
	}
	cmd.AddCommand(fetchAgmarknetCmd())
	return cmd
}

func fetchAgmarknetCmd() *cobra.Command {
	var (
		fromDate, toDate      string
		outputPath            string
		cropsPath, mandisPath string
		maxPages, pageSize    int
	)
	cmd := &cobra.Command{
		Use:   "agmarknet",
		Short: "Fetch daily prices from the Agmarknet API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if maxPages == 0 {
				maxPages = cfg.FetchMaxPages
			}
			if pageSize == 0 {
				pageSize = cfg.FetchPageSize
			}
			if toDate == "" {
				toDate = time.Now().Format("2006-01-02")
			}
			if fromDate == "" {
				fromDate = time.Now().AddDate(0, 0, -7).Format("2006-01-02")
				logger.Info("using default date range", "from", fromDate, "to", toDate)
			}

			crops, mandis, err := loadCatalogs(cropsPath, mandisPath)
			if err != nil {
				return err
			}
			cropIdx := match.NewCropIndex(crops)
			mandiIdx := match.NewMandiIndex(mandis)
			logger.Info("reference data loaded", "crops", cropIdx.Len(), "mandis", mandiIdx.Len())

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			client := agmarknet.NewClient(cfg.AgmarknetBaseURL, cfg.FetchDelay, logger)
			logger.Info("fetching from Agmarknet", "url", cfg.AgmarknetBaseURL, "from", fromDate, "to", toDate)

			start := time.Now()
			records, err := client.FetchAll(ctx, fromDate, toDate, maxPages, pageSize)
			if err != nil {
				return err
			}
			logger.Info("fetched raw records", "count", len(records), "duration", time.Since(start).Round(time.Second))

			prices, report := convert.AgmarknetLivePrices(records, cropIdx, mandiIdx)
			report.Log(logger)

			if err := jsonio.Write(outputPath, prices); err != nil {
				return err
			}
			logger.Info("fetch finished", "prices", len(prices), "output", outputPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&fromDate, "from", "", "Start date (YYYY-MM-DD), default 7 days ago")
	cmd.Flags().StringVar(&toDate, "to", "", "End date (YYYY-MM-DD), default today")
	cmd.Flags().StringVarP(&outputPath, "output", "o", dataDir+"/prices.fetched.json", "Output JSON file")
	cmd.Flags().StringVar(&cropsPath, "crops", dataDir+"/crops.converted.json", "Converted crop catalog")
	cmd.Flags().StringVar(&mandisPath, "mandis", dataDir+"/mandis.converted.json", "Converted mandi catalog")
	cmd.Flags().IntVar(&maxPages, "pages", 0, "Max pages to fetch (default from env, 100)")
	cmd.Flags().IntVar(&pageSize, "limit", 0, "Records per page (default from env, 500)")
	return cmd
}

// --------------------------------------------------------------------------
// verify command
// --------------------------------------------------------------------------

func verifyCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check cross-catalog referential integrity of the converted files",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := seed.DefaultPaths(dir)

			var crops []model.Crop
			var states []model.State
			var mandis []model.Mandi
			var prices []model.Price

			if err := jsonio.Read(paths.Crops, &crops); err != nil {
				return err
			}
			if err := jsonio.Read(paths.States, &states); err != nil {
				return err
			}
			if err := jsonio.Read(paths.Mandis, &mandis); err != nil {
				return err
			}
			if jsonio.Exists(paths.Prices) {
				if err := jsonio.Read(paths.Prices, &prices); err != nil {
					return err
				}
			}

			res := verify.Catalogs(crops, states, mandis, prices)
			if !res.OK() {
				for _, p := range res.Problems {
					logger.Error("integrity violation", "problem", p)
				}
				return fmt.Errorf("%d integrity violations found", len(res.Problems))
			}
			logger.Info("catalogs verified",
				"crops", len(crops), "states", len(states),
				"mandis", len(mandis), "prices", len(prices))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", dataDir, "Directory holding the converted files")
	return cmd
}

// --------------------------------------------------------------------------
// seed command
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load converted files into MongoDB",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", dataDir, "Directory holding the converted files")

	single := func(use string, fn func(ctx context.Context, client *db.Client, cfg *config.Config, path string, l *slog.Logger) (int, error), pick func(seed.Paths) string) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: "Seed the " + use + " collection",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSeed(func(ctx context.Context, cfg *config.Config, client *db.Client) error {
					count, err := fn(ctx, client, cfg, pick(seed.DefaultPaths(dir)), logger)
					if err != nil {
						return err
					}
					logger.Info("seed finished", "collection", use, "count", count)
					return nil
				})
			},
		}
	}

	cmd.AddCommand(single("crops", seed.Crops, func(p seed.Paths) string { return p.Crops }))
	cmd.AddCommand(single("states", seed.States, func(p seed.Paths) string { return p.States }))
	cmd.AddCommand(single("mandis", seed.Mandis, func(p seed.Paths) string { return p.Mandis }))
	cmd.AddCommand(single("prices", seed.Prices, func(p seed.Paths) string { return p.Prices }))

	cmd.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "Seed every collection in dependency order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(func(ctx context.Context, cfg *config.Config, client *db.Client) error {
				start := time.Now()
				result := seed.All(ctx, client, cfg, seed.DefaultPaths(dir), logger)
				logger.Info("seed all finished",
					"duration", time.Since(start).Round(time.Second), "summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("seed error", "error", e)
				}
				if len(result.Errors) > 0 {
					return fmt.Errorf("%d seed errors", len(result.Errors))
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear <collection|all>",
		Short: "Clear one or all collections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(func(ctx context.Context, cfg *config.Config, client *db.Client) error {
				if args[0] == "all" {
					return seed.ClearAll(ctx, client, logger)
				}
				return seed.Clear(ctx, client, args[0], logger)
			})
		},
	})

	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// loadCatalogs reads the converted crop and mandi files the price stages
// join against.
func loadCatalogs(cropsPath, mandisPath string) ([]model.Crop, []model.Mandi, error) {
	var crops []model.Crop
	var mandis []model.Mandi
	if err := jsonio.Read(cropsPath, &crops); err != nil {
		return nil, nil, fmt.Errorf("crops catalog required, run convert crops first: %w", err)
	}
	if err := jsonio.Read(mandisPath, &mandis); err != nil {
		return nil, nil, fmt.Errorf("mandis catalog required, run convert mandis first: %w", err)
	}
	return crops, mandis, nil
}

// runSeed handles config loading, database connection, and context
// cancellation for the commands that talk to MongoDB.
func runSeed(fn func(ctx context.Context, cfg *config.Config, client *db.Client) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() { _ = client.Close(ctx) }()

	logger.Info("connected to MongoDB", "database", client.DatabaseName())
	return fn(ctx, cfg, client)
}
