package businessflow

import (
	"context"

	"github.com/cobraops/cobra-core/app/dto"
	"github.com/cobraops/cobra-core/repository"
)

// CostFlow exposes read access to the per-company cost ledger
type CostFlow interface {
	ListCosts(ctx context.Context, req *dto.ListCostsRequest) (*dto.ListCostsResponse, error)
}

// CostFlowImpl implements the cost listing business flow
type CostFlowImpl struct {
	companyRepo repository.CompanyRepository
	costRepo    repository.CostEntryRepository
}

// NewCostFlow creates a new cost flow instance
func NewCostFlow(companyRepo repository.CompanyRepository, costRepo repository.CostEntryRepository) CostFlow {
	return &CostFlowImpl{companyRepo: companyRepo, costRepo: costRepo}
}

// ListCosts returns the ledger rows for one company, newest constraints
// applied in the repository, and their running total.
func (f *CostFlowImpl) ListCosts(ctx context.Context, req *dto.ListCostsRequest) (*dto.ListCostsResponse, error) {
	company, err := f.companyRepo.ByID(ctx, req.CompanyID)
	if err != nil {
		return nil, NewBusinessError("COMPANY_LOOKUP_FAILED", "Failed to lookup company", err)
	}
	if company == nil {
		return nil, NewBusinessError(CodeNotFound, "Company not found", ErrCompanyNotFound)
	}

	entries, err := f.costRepo.ListByCompany(ctx, req.CompanyID, req.After, req.Before)
	if err != nil {
		return nil, NewBusinessError("COST_LOOKUP_FAILED", "Failed to load cost entries", err)
	}

	resp := &dto.ListCostsResponse{CompanyID: req.CompanyID, Entries: make([]dto.CostEntryResponse, 0, len(entries))}
	for _, entry := range entries {
		resp.Total += entry.Amount
		resp.Entries = append(resp.Entries, dto.CostEntryResponse{
			Amount:    entry.Amount,
			Channel:   string(entry.Channel),
			CreatedAt: entry.CreatedAt,
		})
	}
	return resp, nil
}
