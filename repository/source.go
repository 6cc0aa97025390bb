package repository

import (
	"context"
	"errors"
	"fmt"

	"awardcheck-backend/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RecordSource names where the record store is seeded from at startup
type RecordSource string

const (
	RecordSourceBuiltin  RecordSource = "builtin"
	RecordSourceFile     RecordSource = "file"
	RecordSourcePostgres RecordSource = "postgres"
)

var ErrUnknownRecordSource = errors.New("unknown record source")

// SourceOptions selects and configures the seed source
type SourceOptions struct {
	Source   RecordSource
	SeedPath string          // storage key of the YAML seed, for RecordSourceFile
	Storage  storage.Storage // for RecordSourceFile
	DB       *pgxpool.Pool   // for RecordSourcePostgres
}

// LoadSeed fetches the record set from the configured source
func LoadSeed(ctx context.Context, opts SourceOptions) (*Seed, error) {
	switch opts.Source {
	case RecordSourceBuiltin, "":
		return DefaultSeed(), nil

	case RecordSourceFile:
		if opts.Storage == nil {
			return nil, errors.New("storage not set for file record source")
		}
		rc, err := opts.Storage.Download(ctx, opts.SeedPath)
		if err != nil {
			return nil, fmt.Errorf("failed to download seed %s: %w", opts.SeedPath, err)
		}
		defer rc.Close()
		return DecodeSeed(rc)

	case RecordSourcePostgres:
		if opts.DB == nil {
			return nil, errors.New("database not set for postgres record source")
		}
		return LoadFromPostgres(ctx, opts.DB)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecordSource, opts.Source)
	}
}

// OpenRecordStore loads the seed and freezes it into a MemoryRecordStore
func OpenRecordStore(ctx context.Context, opts SourceOptions) (*MemoryRecordStore, error) {
	seed, err := LoadSeed(ctx, opts)
	if err != nil {
		return nil, err
	}
	return NewMemoryRecordStore(seed)
}
