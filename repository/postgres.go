package repository

import (
	"context"
	"fmt"

	"awardcheck-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the reference tables the record store can be loaded from
const Schema = `
CREATE TABLE IF NOT EXISTS sites (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    address TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS project_refs (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    site_id TEXT NOT NULL REFERENCES sites(id)
);

CREATE TABLE IF NOT EXISTS line_item_definitions (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    cost_kind VARCHAR(20) NOT NULL CHECK (cost_kind IN ('fixed', 'variable'))
);

CREATE TABLE IF NOT EXISTS contracts (
    id TEXT PRIMARY KEY,
    contract_number TEXT NOT NULL UNIQUE,
    site_id TEXT NOT NULL REFERENCES sites(id),
    project_ref_id TEXT NOT NULL REFERENCES project_refs(id),
    status VARCHAR(20) NOT NULL CHECK (status IN ('awarded', 'pending', 'cancelled')),
    award_date DATE NOT NULL
);

CREATE TABLE IF NOT EXISTS contract_line_items (
    contract_id TEXT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    line_item_id TEXT NOT NULL REFERENCES line_item_definitions(id),
    quantity DOUBLE PRECISION,
    details TEXT,
    PRIMARY KEY (contract_id, position)
);

CREATE INDEX IF NOT EXISTS idx_contracts_site_project ON contracts(site_id, project_ref_id, status);
`

// LoadFromPostgres reads the full record set so it can be frozen into a MemoryRecordStore
func LoadFromPostgres(ctx context.Context, db *pgxpool.Pool) (*Seed, error) {
	seed := &Seed{}

	rows, err := db.Query(ctx, `SELECT id, name, address FROM sites ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sites: %w", err)
	}
	seed.Sites, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Site, error) {
		var site models.Site
		err := row.Scan(&site.ID, &site.Name, &site.Address)
		return site, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan sites: %w", err)
	}

	rows, err = db.Query(ctx, `SELECT id, name, site_id FROM project_refs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query project refs: %w", err)
	}
	seed.ProjectRefs, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ProjectRef, error) {
		var ref models.ProjectRef
		err := row.Scan(&ref.ID, &ref.Name, &ref.SiteID)
		return ref, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan project refs: %w", err)
	}

	rows, err = db.Query(ctx, `SELECT id, name, cost_kind FROM line_item_definitions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
	seed.LineItems, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.LineItemDefinition, error) {
		var def models.LineItemDefinition
		err := row.Scan(&def.ID, &def.Name, &def.CostKind)
		return def, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan line items: %w", err)
	}

	contracts, err := loadContracts(ctx, db)
	if err != nil {
		return nil, err
	}
	seed.Contracts = contracts

	return seed, nil
}

func loadContracts(ctx context.Context, db *pgxpool.Pool) ([]models.ContractRecord, error) {
	query := `
		SELECT id, contract_number, site_id, project_ref_id, status, award_date
		FROM contracts
		ORDER BY award_date, id`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	contracts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ContractRecord, error) {
		var c models.ContractRecord
		err := row.Scan(&c.ID, &c.ContractNumber, &c.SiteID, &c.ProjectRefID, &c.Status, &c.AwardDate)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan contracts: %w", err)
	}

	index := make(map[string]int, len(contracts))
	for i := range contracts {
		index[contracts[i].ID] = i
	}

	itemQuery := `
		SELECT contract_id, line_item_id, quantity, details
		FROM contract_line_items
		ORDER BY contract_id, position`

	itemRows, err := db.Query(ctx, itemQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query contract line items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var contractID string
		var entry models.LineItemEntry
		if err := itemRows.Scan(&contractID, &entry.LineItemID, &entry.Quantity, &entry.Details); err != nil {
			return nil, fmt.Errorf("failed to scan contract line item: %w", err)
		}
		i, ok := index[contractID]
		if !ok {
			continue
		}
		contracts[i].LineItems = append(contracts[i].LineItems, entry)
	}

	return contracts, itemRows.Err()
}

// SeedPostgres writes a record set into the reference tables, replacing existing rows
func SeedPostgres(ctx context.Context, db *pgxpool.Pool, seed *Seed) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"contract_line_items", "contracts", "line_item_definitions", "project_refs", "sites"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	batch := &pgx.Batch{}
	for _, site := range seed.Sites {
		batch.Queue(`INSERT INTO sites (id, name, address) VALUES ($1, $2, $3)`,
			site.ID, site.Name, site.Address)
	}
	for _, ref := range seed.ProjectRefs {
		batch.Queue(`INSERT INTO project_refs (id, name, site_id) VALUES ($1, $2, $3)`,
			ref.ID, ref.Name, ref.SiteID)
	}
	for _, def := range seed.LineItems {
		batch.Queue(`INSERT INTO line_item_definitions (id, name, cost_kind) VALUES ($1, $2, $3)`,
			def.ID, def.Name, string(def.CostKind))
	}
	for _, c := range seed.Contracts {
		batch.Queue(`
			INSERT INTO contracts (id, contract_number, site_id, project_ref_id, status, award_date)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			c.ID, c.ContractNumber, c.SiteID, c.ProjectRefID, string(c.Status), c.AwardDate)
		for pos, item := range c.LineItems {
			batch.Queue(`
				INSERT INTO contract_line_items (contract_id, position, line_item_id, quantity, details)
				VALUES ($1, $2, $3, $4, $5)`,
				c.ID, pos, item.LineItemID, item.Quantity, item.Details)
		}
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert seed rows: %w", err)
	}

	return tx.Commit(ctx)
}
