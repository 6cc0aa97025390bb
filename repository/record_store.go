package repository

import (
	"errors"
	"fmt"
	"sort"

	"awardcheck-backend/models"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicateID = errors.New("duplicate record id")
	ErrInvalidSeed = errors.New("invalid seed data")
)

// RecordStore is the read-only query surface over reference data and contracts
type RecordStore interface {
	GetSite(id string) (*models.Site, error)
	GetProjectRef(id string) (*models.ProjectRef, error)
	GetLineItemDefinition(id string) (*models.LineItemDefinition, error)
	GetContract(id string) (*models.ContractRecord, error)
	ListSites() []*models.Site
	ListLineItemDefinitions() []*models.LineItemDefinition

	// FindAwardedContracts returns awarded contracts at the given site and project
	// that contain any of lineItemIDs. An empty lineItemIDs matches every line item.
	FindAwardedContracts(siteID, projectRefID string, lineItemIDs []string) []*models.ContractRecord
}

// MemoryRecordStore holds a seeded record set in memory.
// It has no write path, so it is safe for concurrent readers without locking.
type MemoryRecordStore struct {
	sites       map[string]*models.Site
	projectRefs map[string]*models.ProjectRef
	lineItems   map[string]*models.LineItemDefinition
	contracts   map[string]*models.ContractRecord

	// seed order, used for deterministic search results
	contractOrder []*models.ContractRecord
}

// NewMemoryRecordStore builds a store from seed data, rejecting duplicate identifiers
func NewMemoryRecordStore(seed *Seed) (*MemoryRecordStore, error) {
	if seed == nil {
		return nil, fmt.Errorf("%w: nil seed", ErrInvalidSeed)
	}

	s := &MemoryRecordStore{
		sites:       make(map[string]*models.Site, len(seed.Sites)),
		projectRefs: make(map[string]*models.ProjectRef, len(seed.ProjectRefs)),
		lineItems:   make(map[string]*models.LineItemDefinition, len(seed.LineItems)),
		contracts:   make(map[string]*models.ContractRecord, len(seed.Contracts)),
	}

	for i := range seed.Sites {
		site := seed.Sites[i]
		if _, exists := s.sites[site.ID]; exists {
			return nil, fmt.Errorf("%w: site %s", ErrDuplicateID, site.ID)
		}
		s.sites[site.ID] = &site
	}

	for i := range seed.ProjectRefs {
		ref := seed.ProjectRefs[i]
		if _, exists := s.projectRefs[ref.ID]; exists {
			return nil, fmt.Errorf("%w: project reference %s", ErrDuplicateID, ref.ID)
		}
		s.projectRefs[ref.ID] = &ref
	}

	for i := range seed.LineItems {
		def := seed.LineItems[i]
		if _, exists := s.lineItems[def.ID]; exists {
			return nil, fmt.Errorf("%w: line item %s", ErrDuplicateID, def.ID)
		}
		if def.CostKind != models.CostKindFixed && def.CostKind != models.CostKindVariable {
			return nil, fmt.Errorf("%w: line item %s has cost kind %q", ErrInvalidSeed, def.ID, def.CostKind)
		}
		s.lineItems[def.ID] = &def
	}

	for i := range seed.Contracts {
		contract := seed.Contracts[i]
		if _, exists := s.contracts[contract.ID]; exists {
			return nil, fmt.Errorf("%w: contract %s", ErrDuplicateID, contract.ID)
		}
		switch contract.Status {
		case models.ContractStatusAwarded, models.ContractStatusPending, models.ContractStatusCancelled:
		default:
			return nil, fmt.Errorf("%w: contract %s has status %q", ErrInvalidSeed, contract.ID, contract.Status)
		}
		s.contracts[contract.ID] = &contract
		s.contractOrder = append(s.contractOrder, &contract)
	}

	return s, nil
}

// GetSite retrieves a site by ID
func (s *MemoryRecordStore) GetSite(id string) (*models.Site, error) {
	site, ok := s.sites[id]
	if !ok {
		return nil, fmt.Errorf("site %s: %w", id, ErrNotFound)
	}
	return site, nil
}

// GetProjectRef retrieves a project reference by ID
func (s *MemoryRecordStore) GetProjectRef(id string) (*models.ProjectRef, error) {
	ref, ok := s.projectRefs[id]
	if !ok {
		return nil, fmt.Errorf("project reference %s: %w", id, ErrNotFound)
	}
	return ref, nil
}

// GetLineItemDefinition retrieves a line-item definition by ID
func (s *MemoryRecordStore) GetLineItemDefinition(id string) (*models.LineItemDefinition, error) {
	def, ok := s.lineItems[id]
	if !ok {
		return nil, fmt.Errorf("line item %s: %w", id, ErrNotFound)
	}
	return def, nil
}

// GetContract retrieves a contract by ID
func (s *MemoryRecordStore) GetContract(id string) (*models.ContractRecord, error) {
	contract, ok := s.contracts[id]
	if !ok {
		return nil, fmt.Errorf("contract %s: %w", id, ErrNotFound)
	}
	return contract, nil
}

// ListSites returns all sites sorted by ID
func (s *MemoryRecordStore) ListSites() []*models.Site {
	sites := make([]*models.Site, 0, len(s.sites))
	for _, site := range s.sites {
		sites = append(sites, site)
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i].ID < sites[j].ID })
	return sites
}

// ListLineItemDefinitions returns all line-item definitions sorted by ID
func (s *MemoryRecordStore) ListLineItemDefinitions() []*models.LineItemDefinition {
	defs := make([]*models.LineItemDefinition, 0, len(s.lineItems))
	for _, def := range s.lineItems {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// FindAwardedContracts returns matching awarded contracts in seed order
func (s *MemoryRecordStore) FindAwardedContracts(siteID, projectRefID string, lineItemIDs []string) []*models.ContractRecord {
	var matches []*models.ContractRecord
	for _, contract := range s.contractOrder {
		if !contract.IsAwarded() {
			continue
		}
		if contract.SiteID != siteID || contract.ProjectRefID != projectRefID {
			continue
		}
		if len(lineItemIDs) > 0 && !containsAny(contract, lineItemIDs) {
			continue
		}
		matches = append(matches, contract)
	}
	return matches
}

func containsAny(contract *models.ContractRecord, lineItemIDs []string) bool {
	for _, id := range lineItemIDs {
		if contract.HasLineItem(id) {
			return true
		}
	}
	return false
}
