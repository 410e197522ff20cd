package seed

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/krishimandi/mandi-data/internal/config"
	"github.com/krishimandi/mandi-data/internal/db"
	"github.com/krishimandi/mandi-data/internal/jsonio"
	"github.com/krishimandi/mandi-data/internal/model"
)

// Paths holds the converted file locations the seeder reads from.
type Paths struct {
	Crops  string
	States string
	Mandis string
	Prices string
}

// DefaultPaths returns the conventional converted file locations under dir.
func DefaultPaths(dir string) Paths {
	join := func(name string) string { return dir + "/" + name }
	return Paths{
		Crops:  join("crops.converted.json"),
		States: join("states.converted.json"),
		Mandis: join("mandis.converted.json"),
		Prices: join("prices.converted.json"),
	}
}

// Seeding is destructive-then-additive: each collection is cleared and the
// full converted array inserted in batches. Re-running yields the same end
// state; there is no incremental upsert.

// Crops seeds the crops collection from its converted file.
func Crops(ctx context.Context, client *db.Client, cfg *config.Config, path string, logger *slog.Logger) (int, error) {
	var crops []model.Crop
	if !jsonio.Exists(path) {
		logger.Warn("no crops data found, run convert crops first", "path", path)
		return 0, nil
	}
	if err := jsonio.Read(path, &crops); err != nil {
		return 0, err
	}
	return replaceCollection(ctx, client, cfg, config.CropsCollection, toDocs(crops), logger)
}

// States seeds the states collection from its converted file.
func States(ctx context.Context, client *db.Client, cfg *config.Config, path string, logger *slog.Logger) (int, error) {
	var states []model.State
	if !jsonio.Exists(path) {
		logger.Warn("no states data found, run convert states first", "path", path)
		return 0, nil
	}
	if err := jsonio.Read(path, &states); err != nil {
		return 0, err
	}
	return replaceCollection(ctx, client, cfg, config.StatesCollection, toDocs(states), logger)
}

// Mandis seeds the mandis collection from its converted file.
func Mandis(ctx context.Context, client *db.Client, cfg *config.Config, path string, logger *slog.Logger) (int, error) {
	var mandis []model.Mandi
	if !jsonio.Exists(path) {
		logger.Warn("no mandis data found, run convert mandis first", "path", path)
		return 0, nil
	}
	if err := jsonio.Read(path, &mandis); err != nil {
		return 0, err
	}
	return replaceCollection(ctx, client, cfg, config.MandisCollection, toDocs(mandis), logger)
}

// Prices seeds the prices collection from its converted file.
func Prices(ctx context.Context, client *db.Client, cfg *config.Config, path string, logger *slog.Logger) (int, error) {
	var prices []model.Price
	if !jsonio.Exists(path) {
		logger.Warn("no prices data found, run convert prices first", "path", path)
		return 0, nil
	}
	if err := jsonio.Read(path, &prices); err != nil {
		return 0, err
	}
	return replaceCollection(ctx, client, cfg, config.PricesCollection, toDocs(prices), logger)
}

// All seeds every collection in dependency order.
func All(ctx context.Context, client *db.Client, cfg *config.Config, paths Paths, logger *slog.Logger) Result {
	var result Result
	var err error

	if result.Crops, err = Crops(ctx, client, cfg, paths.Crops, logger); err != nil {
		result.AddErrorf("seed crops: %v", err)
	}
	if result.States, err = States(ctx, client, cfg, paths.States, logger); err != nil {
		result.AddErrorf("seed states: %v", err)
	}
	if result.Mandis, err = Mandis(ctx, client, cfg, paths.Mandis, logger); err != nil {
		result.AddErrorf("seed mandis: %v", err)
	}
	if result.Prices, err = Prices(ctx, client, cfg, paths.Prices, logger); err != nil {
		result.AddErrorf("seed prices: %v", err)
	}
	return result
}

// Clear removes all documents from the named collection.
func Clear(ctx context.Context, client *db.Client, name string, logger *slog.Logger) error {
	switch name {
	case config.CropsCollection, config.StatesCollection, config.MandisCollection, config.PricesCollection:
	default:
		return fmt.Errorf("unknown collection: %s", name)
	}
	if _, err := client.Collection(name).DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clear %s: %w", name, err)
	}
	logger.Info("cleared collection", "collection", name)
	return nil
}

// ClearAll removes all documents from every pipeline collection.
func ClearAll(ctx context.Context, client *db.Client, logger *slog.Logger) error {
	for _, name := range []string{
		config.CropsCollection, config.StatesCollection,
		config.MandisCollection, config.PricesCollection,
	} {
		if err := Clear(ctx, client, name, logger); err != nil {
			return err
		}
	}
	return nil
}

// replaceCollection clears the collection then inserts docs in fixed-size
// batches, logging running progress.
func replaceCollection(ctx context.Context, client *db.Client, cfg *config.Config, name string, docs []any, logger *slog.Logger) (int, error) {
	coll := client.Collection(name)
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return 0, fmt.Errorf("clear %s: %w", name, err)
	}

	batchSize := cfg.SeedBatchSize
	if batchSize <= 0 {
		batchSize = 500
	}

	inserted := 0
	for _, batch := range Batches(docs, batchSize) {
		if _, err := coll.InsertMany(ctx, batch); err != nil {
			return inserted, fmt.Errorf("insert into %s: %w", name, err)
		}
		inserted += len(batch)
		logger.Info("seeding progress", "collection", name, "inserted", inserted, "total", len(docs))
	}

	logger.Info("seeded collection", "collection", name, "count", inserted)
	return inserted, nil
}

// Batches splits docs into consecutive slices of at most size elements.
func Batches(docs []any, size int) [][]any {
	if len(docs) == 0 {
		return nil
	}
	batches := make([][]any, 0, (len(docs)+size-1)/size)
	for start := 0; start < len(docs); start += size {
		end := start + size
		if end > len(docs) {
			end = len(docs)
		}
		batches = append(batches, docs[start:end])
	}
	return batches
}

// toDocs converts a typed slice into the []any InsertMany wants.
func toDocs[T any](items []T) []any {
	docs := make([]any, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	return docs
}
