package businessflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cobraops/cobra-core/models"
	"github.com/cobraops/cobra-core/repository"
	"github.com/cobraops/cobra-core/utils"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// EntityResolverFlow idempotently finds-or-creates debtors and phone links.
// Campaigns invoke it once per workbook row per channel, so the same
// (document, company) pair is resolved repeatedly within one run and must
// always yield the same record.
type EntityResolverFlow interface {
	ResolveDebtor(ctx context.Context, name, document string, companyID uint, debtDate *time.Time, debtAmount float64) (*models.Debtor, error)
	ResolvePhoneLink(ctx context.Context, debtorID uint, fromNumber, toNumber string, kind models.PhoneLinkKind) (*models.PhoneLink, error)
}

// EntityResolverFlowImpl implements the entity resolution business flow
type EntityResolverFlowImpl struct {
	debtorRepo    repository.DebtorRepository
	phoneLinkRepo repository.PhoneLinkRepository

	// find-or-create windows are serialized per key; the DB unique
	// constraints remain the backstop for concurrent processes
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewEntityResolverFlow creates a new entity resolver flow instance
func NewEntityResolverFlow(debtorRepo repository.DebtorRepository, phoneLinkRepo repository.PhoneLinkRepository) EntityResolverFlow {
	return &EntityResolverFlowImpl{
		debtorRepo:    debtorRepo,
		phoneLinkRepo: phoneLinkRepo,
		locks:         make(map[string]*sync.Mutex),
	}
}

func (e *EntityResolverFlowImpl) lockFor(key string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[key]
	if !ok {
		l = &sync.Mutex{}
		e.locks[key] = l
	}
	return l
}

// ResolveDebtor returns the existing debtor for (document, companyID) or
// creates one. An existing record is returned unchanged; the name recorded
// at creation wins over whatever later workbooks carry.
func (e *EntityResolverFlowImpl) ResolveDebtor(ctx context.Context, name, document string, companyID uint, debtDate *time.Time, debtAmount float64) (*models.Debtor, error) {
	lock := e.lockFor(fmt.Sprintf("debtor:%d:%s", companyID, document))
	lock.Lock()
	defer lock.Unlock()

	existing, err := e.debtorRepo.ByDocument(ctx, document, companyID)
	if err != nil {
		return nil, NewBusinessError("DEBTOR_LOOKUP_FAILED", "Failed to lookup debtor", err)
	}
	if existing != nil {
		return existing, nil
	}

	class := models.DebtClassChargedOff
	if debtDate != nil && utils.DaysSince(*debtDate) > utils.OverdueThresholdDays {
		class = models.DebtClassOverdue
	}

	debtor := &models.Debtor{
		CompanyID:     companyID,
		Name:          name,
		Document:      document,
		PaymentStatus: models.PaymentStatusNoContact,
		DebtClass:     class,
		DebtAmount:    debtAmount,
		DebtDate:      debtDate,
	}
	if err := e.debtorRepo.Save(ctx, debtor); err != nil {
		// A concurrent process may have won the race; the unique
		// constraint on (document, company_id) makes the re-read safe.
		if isUniqueViolation(err) {
			if existing, lookupErr := e.debtorRepo.ByDocument(ctx, document, companyID); lookupErr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, NewBusinessError("DEBTOR_CREATE_FAILED", "Failed to create debtor", err)
	}
	return debtor, nil
}

// ResolvePhoneLink returns the existing link for (from, to, debtorID) or
// creates one. Re-processing the same workbook row never duplicates links.
func (e *EntityResolverFlowImpl) ResolvePhoneLink(ctx context.Context, debtorID uint, fromNumber, toNumber string, kind models.PhoneLinkKind) (*models.PhoneLink, error) {
	lock := e.lockFor(fmt.Sprintf("link:%d:%s:%s", debtorID, fromNumber, toNumber))
	lock.Lock()
	defer lock.Unlock()

	existing, err := e.phoneLinkRepo.ByTriple(ctx, debtorID, fromNumber, toNumber)
	if err != nil {
		return nil, NewBusinessError("PHONE_LINK_LOOKUP_FAILED", "Failed to lookup phone link", err)
	}
	if existing != nil {
		return existing, nil
	}

	link := &models.PhoneLink{
		DebtorID:   debtorID,
		FromNumber: fromNumber,
		ToNumber:   toNumber,
		Kind:       kind,
	}
	if err := e.phoneLinkRepo.Save(ctx, link); err != nil {
		if isUniqueViolation(err) {
			if existing, lookupErr := e.phoneLinkRepo.ByTriple(ctx, debtorID, fromNumber, toNumber); lookupErr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, NewBusinessError("PHONE_LINK_CREATE_FAILED", "Failed to create phone link", err)
	}
	return link, nil
}

// isUniqueViolation reports whether err is a unique-constraint error,
// whether surfaced through gorm's translation or the raw driver.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
