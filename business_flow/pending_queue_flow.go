package businessflow

import (
	"context"
	"fmt"
	"log"

	"github.com/cobraops/cobra-core/models"
	"github.com/cobraops/cobra-core/repository"
	"github.com/cobraops/cobra-core/utils"
)

// PendingQueueFlow stores contact attempts blocked by the schedule window
// and retries them when a drain cycle finds the window open. Pending rows
// have unbounded residency: no backoff, no retry cap. Errored rows are
// terminal.
type PendingQueueFlow interface {
	Enqueue(ctx context.Context, companyID uint, phone, message string, channel models.CostChannel, fromNumber string) error
	DrainAll(ctx context.Context) error
}

// PendingQueueFlowImpl implements the pending queue business flow
type PendingQueueFlowImpl struct {
	pendingRepo   repository.PendingMessageRepository
	phoneLinkRepo repository.PhoneLinkRepository
	debtorRepo    repository.DebtorRepository
	scheduleFlow  ScheduleWindowFlow
	senders       *ChannelSenders
}

// NewPendingQueueFlow creates a new pending queue flow instance
func NewPendingQueueFlow(
	pendingRepo repository.PendingMessageRepository,
	phoneLinkRepo repository.PhoneLinkRepository,
	debtorRepo repository.DebtorRepository,
	scheduleFlow ScheduleWindowFlow,
	senders *ChannelSenders,
) PendingQueueFlow {
	return &PendingQueueFlowImpl{
		pendingRepo:   pendingRepo,
		phoneLinkRepo: phoneLinkRepo,
		debtorRepo:    debtorRepo,
		scheduleFlow:  scheduleFlow,
		senders:       senders,
	}
}

// Enqueue defers one contact attempt. Queuing the same attempt twice is a
// benign no-op; the caller's campaign loop should keep going either way.
func (f *PendingQueueFlowImpl) Enqueue(ctx context.Context, companyID uint, phone, message string, channel models.CostChannel, fromNumber string) error {
	status := models.PendingStatusPending
	exists, err := f.pendingRepo.Exists(ctx, models.PendingMessageFilter{
		CompanyID:  &companyID,
		Phone:      &phone,
		Message:    &message,
		Channel:    &channel,
		FromNumber: &fromNumber,
		Status:     &status,
	})
	if err != nil {
		return NewBusinessError("PENDING_LOOKUP_FAILED", "Failed to check pending queue", err)
	}
	if exists {
		log.Printf("pending: attempt for %s on %s already queued for company %d", phone, channel, companyID)
		return nil
	}

	entry := &models.PendingMessage{
		CompanyID:  companyID,
		Phone:      phone,
		Message:    message,
		Channel:    channel,
		FromNumber: fromNumber,
		Status:     models.PendingStatusPending,
	}
	if err := f.pendingRepo.Save(ctx, entry); err != nil {
		if isUniqueViolation(err) {
			log.Printf("pending: duplicate enqueue for %s on %s swallowed", phone, channel)
			return nil
		}
		return NewBusinessError("PENDING_ENQUEUE_FAILED", "Failed to enqueue pending message", err)
	}
	return nil
}

// DrainAll retries every pending entry whose company window is now open.
// Entries behind a still-closed window stay pending untouched and are
// reconsidered on the next cycle.
func (f *PendingQueueFlowImpl) DrainAll(ctx context.Context) error {
	entries, err := f.pendingRepo.ListPending(ctx)
	if err != nil {
		return NewBusinessError("PENDING_LIST_FAILED", "Failed to list pending messages", err)
	}
	if len(entries) == 0 {
		return nil
	}

	// One window check per company per cycle
	windows := make(map[uint]bool, 4)
	for _, entry := range entries {
		open, known := windows[entry.CompanyID]
		if !known {
			var err error
			open, err = f.scheduleFlow.IsOpen(ctx, entry.CompanyID)
			if err != nil {
				log.Printf("pending: window check failed for company %d: %v", entry.CompanyID, err)
				open = false
			}
			windows[entry.CompanyID] = open
		}
		if !open {
			continue
		}
		f.dispatch(ctx, entry)
	}
	return nil
}

func (f *PendingQueueFlowImpl) dispatch(ctx context.Context, entry *models.PendingMessage) {
	sender := f.senders.ForChannel(entry.Channel)
	if sender == nil {
		log.Printf("pending: no sender for channel %s, marking entry %d error", entry.Channel, entry.ID)
		f.mark(ctx, entry.ID, models.PendingStatusError)
		return
	}

	result, err := sender.Send(ctx, entry.CompanyID, entry.FromNumber, entry.Phone, entry.Message)
	if err != nil || !result.Success {
		f.mark(ctx, entry.ID, models.PendingStatusError)
		return
	}

	f.auditDebtor(ctx, entry)
	f.mark(ctx, entry.ID, models.PendingStatusSent)
}

// auditDebtor appends the deferred-send event to the debtor's trail when
// the phone pair resolves to one; email targets have no phone link.
func (f *PendingQueueFlowImpl) auditDebtor(ctx context.Context, entry *models.PendingMessage) {
	link, err := f.phoneLinkRepo.ByPair(ctx, entry.FromNumber, entry.Phone)
	if err != nil || link == nil {
		return
	}
	text := fmt.Sprintf("[%s] Mensaje diferido enviado por %s a %s", utils.UTCNowRFC3339(), entry.Channel, entry.Phone)
	if err := f.debtorRepo.AppendEvent(ctx, link.DebtorID, text); err != nil {
		log.Printf("pending: failed to append debtor event for entry %d: %v", entry.ID, err)
	}
}

func (f *PendingQueueFlowImpl) mark(ctx context.Context, id uint, status models.PendingStatus) {
	if err := f.pendingRepo.UpdateStatus(ctx, id, status); err != nil {
		log.Printf("pending: failed to mark entry %d as %s: %v", id, status, err)
	}
}
