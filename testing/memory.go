// Package testing provides in-memory repository implementations and fixtures
// for exercising business flows without a database.
package testing

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cobraops/cobra-core/models"
	"github.com/cobraops/cobra-core/repository"
)

// MemCompanyRepository is an in-memory CompanyRepository
type MemCompanyRepository struct {
	mu     sync.Mutex
	rows   []*models.Company
	nextID uint
}

func NewMemCompanyRepository() *MemCompanyRepository {
	return &MemCompanyRepository{nextID: 1}
}

func (r *MemCompanyRepository) ByID(ctx context.Context, id uint) (*models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (r *MemCompanyRepository) matches(row *models.Company, f models.CompanyFilter) bool {
	if f.ID != nil && row.ID != *f.ID {
		return false
	}
	if f.Role != nil && row.Role != *f.Role {
		return false
	}
	return true
}

func (r *MemCompanyRepository) ByFilter(ctx context.Context, f models.CompanyFilter, orderBy string, limit, offset int) ([]*models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Company
	for _, row := range r.rows {
		if r.matches(row, f) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *MemCompanyRepository) Save(ctx context.Context, entity *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entity.ID == 0 {
		entity.ID = r.nextID
		r.nextID++
	}
	entity.CreatedAt = time.Now().UTC()
	r.rows = append(r.rows, entity)
	return nil
}

func (r *MemCompanyRepository) SaveBatch(ctx context.Context, entities []*models.Company) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemCompanyRepository) Update(ctx context.Context, entity *models.Company) error {
	return nil
}

func (r *MemCompanyRepository) Count(ctx context.Context, f models.CompanyFilter) (int64, error) {
	rows, _ := r.ByFilter(ctx, f, "", 0, 0)
	return int64(len(rows)), nil
}

func (r *MemCompanyRepository) Exists(ctx context.Context, f models.CompanyFilter) (bool, error) {
	n, _ := r.Count(ctx, f)
	return n > 0, nil
}

// MemDebtorRepository is an in-memory DebtorRepository with an event log
type MemDebtorRepository struct {
	mu     sync.Mutex
	rows   []*models.Debtor
	events []*models.DebtorEvent
	nextID uint
}

func NewMemDebtorRepository() *MemDebtorRepository {
	return &MemDebtorRepository{nextID: 1}
}

func (r *MemDebtorRepository) ByID(ctx context.Context, id uint) (*models.Debtor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (r *MemDebtorRepository) matches(row *models.Debtor, f models.DebtorFilter) bool {
	if f.ID != nil && row.ID != *f.ID {
		return false
	}
	if f.CompanyID != nil && row.CompanyID != *f.CompanyID {
		return false
	}
	if f.Document != nil && row.Document != *f.Document {
		return false
	}
	if f.PaymentStatus != nil && row.PaymentStatus != *f.PaymentStatus {
		return false
	}
	if f.DebtClass != nil && row.DebtClass != *f.DebtClass {
		return false
	}
	return true
}

func (r *MemDebtorRepository) ByFilter(ctx context.Context, f models.DebtorFilter, orderBy string, limit, offset int) ([]*models.Debtor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Debtor
	for _, row := range r.rows {
		if r.matches(row, f) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *MemDebtorRepository) Save(ctx context.Context, entity *models.Debtor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entity.ID == 0 {
		entity.ID = r.nextID
		r.nextID++
	}
	entity.CreatedAt = time.Now().UTC()
	r.rows = append(r.rows, entity)
	return nil
}

func (r *MemDebtorRepository) SaveBatch(ctx context.Context, entities []*models.Debtor) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemDebtorRepository) Update(ctx context.Context, entity *models.Debtor) error {
	return nil
}

func (r *MemDebtorRepository) Count(ctx context.Context, f models.DebtorFilter) (int64, error) {
	rows, _ := r.ByFilter(ctx, f, "", 0, 0)
	return int64(len(rows)), nil
}

func (r *MemDebtorRepository) Exists(ctx context.Context, f models.DebtorFilter) (bool, error) {
	n, _ := r.Count(ctx, f)
	return n > 0, nil
}

func (r *MemDebtorRepository) ByDocument(ctx context.Context, document string, companyID uint) (*models.Debtor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Document == document && row.CompanyID == companyID {
			return row, nil
		}
	}
	return nil, nil
}

func (r *MemDebtorRepository) AppendEvent(ctx context.Context, debtorID uint, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, &models.DebtorEvent{
		ID:        uint(len(r.events) + 1),
		DebtorID:  debtorID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (r *MemDebtorRepository) ListEvents(ctx context.Context, debtorID uint) ([]*models.DebtorEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.DebtorEvent
	for _, ev := range r.events {
		if ev.DebtorID == debtorID {
			out = append(out, ev)
		}
	}
	return out, nil
}

// MemPhoneLinkRepository is an in-memory PhoneLinkRepository
type MemPhoneLinkRepository struct {
	mu     sync.Mutex
	rows   []*models.PhoneLink
	nextID uint
}

func NewMemPhoneLinkRepository() *MemPhoneLinkRepository {
	return &MemPhoneLinkRepository{nextID: 1}
}

func (r *MemPhoneLinkRepository) ByID(ctx context.Context, id uint) (*models.PhoneLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (r *MemPhoneLinkRepository) matches(row *models.PhoneLink, f models.PhoneLinkFilter) bool {
	if f.ID != nil && row.ID != *f.ID {
		return false
	}
	if f.DebtorID != nil && row.DebtorID != *f.DebtorID {
		return false
	}
	if f.FromNumber != nil && row.FromNumber != *f.FromNumber {
		return false
	}
	if f.ToNumber != nil && row.ToNumber != *f.ToNumber {
		return false
	}
	if f.Kind != nil && row.Kind != *f.Kind {
		return false
	}
	return true
}

func (r *MemPhoneLinkRepository) ByFilter(ctx context.Context, f models.PhoneLinkFilter, orderBy string, limit, offset int) ([]*models.PhoneLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PhoneLink
	for _, row := range r.rows {
		if r.matches(row, f) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *MemPhoneLinkRepository) Save(ctx context.Context, entity *models.PhoneLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entity.ID == 0 {
		entity.ID = r.nextID
		r.nextID++
	}
	entity.CreatedAt = time.Now().UTC()
	r.rows = append(r.rows, entity)
	return nil
}

func (r *MemPhoneLinkRepository) SaveBatch(ctx context.Context, entities []*models.PhoneLink) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemPhoneLinkRepository) Update(ctx context.Context, entity *models.PhoneLink) error {
	return nil
}

func (r *MemPhoneLinkRepository) Count(ctx context.Context, f models.PhoneLinkFilter) (int64, error) {
	rows, _ := r.ByFilter(ctx, f, "", 0, 0)
	return int64(len(rows)), nil
}

func (r *MemPhoneLinkRepository) Exists(ctx context.Context, f models.PhoneLinkFilter) (bool, error) {
	n, _ := r.Count(ctx, f)
	return n > 0, nil
}

func (r *MemPhoneLinkRepository) ByPair(ctx context.Context, fromNumber, toNumber string) (*models.PhoneLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.FromNumber == fromNumber && row.ToNumber == toNumber {
			return row, nil
		}
	}
	return nil, nil
}

func (r *MemPhoneLinkRepository) ByTriple(ctx context.Context, debtorID uint, fromNumber, toNumber string) (*models.PhoneLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.DebtorID == debtorID && row.FromNumber == fromNumber && row.ToNumber == toNumber {
			return row, nil
		}
	}
	return nil, nil
}

func (r *MemPhoneLinkRepository) ListByDebtor(ctx context.Context, debtorID uint) ([]*models.PhoneLink, error) {
	debtor := debtorID
	return r.ByFilter(ctx, models.PhoneLinkFilter{DebtorID: &debtor}, "", 0, 0)
}

// MemChatMessageRepository is an in-memory ChatMessageRepository
type MemChatMessageRepository struct {
	mu     sync.Mutex
	rows   []*models.ChatMessage
	nextID uint
}

func NewMemChatMessageRepository() *MemChatMessageRepository {
	return &MemChatMessageRepository{nextID: 1}
}

func (r *MemChatMessageRepository) ByID(ctx context.Context, id uint) (*models.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (r *MemChatMessageRepository) matches(row *models.ChatMessage, f models.ChatMessageFilter) bool {
	if f.ID != nil && row.ID != *f.ID {
		return false
	}
	if f.CompanyID != nil && row.CompanyID != *f.CompanyID {
		return false
	}
	if f.Channel != nil && row.Channel != *f.Channel {
		return false
	}
	if f.Direction != nil && row.Direction != *f.Direction {
		return false
	}
	if f.FromNumber != nil && row.FromNumber != *f.FromNumber {
		return false
	}
	if f.ToNumber != nil && row.ToNumber != *f.ToNumber {
		return false
	}
	if f.Success != nil && row.Success != *f.Success {
		return false
	}
	return true
}

func (r *MemChatMessageRepository) ByFilter(ctx context.Context, f models.ChatMessageFilter, orderBy string, limit, offset int) ([]*models.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ChatMessage
	for _, row := range r.rows {
		if r.matches(row, f) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *MemChatMessageRepository) Save(ctx context.Context, entity *models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entity.ID == 0 {
		entity.ID = r.nextID
		r.nextID++
	}
	entity.CreatedAt = time.Now().UTC()
	r.rows = append(r.rows, entity)
	return nil
}

func (r *MemChatMessageRepository) SaveBatch(ctx context.Context, entities []*models.ChatMessage) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemChatMessageRepository) Update(ctx context.Context, entity *models.ChatMessage) error {
	return nil
}

func (r *MemChatMessageRepository) Count(ctx context.Context, f models.ChatMessageFilter) (int64, error) {
	rows, _ := r.ByFilter(ctx, f, "", 0, 0)
	return int64(len(rows)), nil
}

func (r *MemChatMessageRepository) Exists(ctx context.Context, f models.ChatMessageFilter) (bool, error) {
	n, _ := r.Count(ctx, f)
	return n > 0, nil
}

// Conversation returns both directions of a conversation in insertion order
func (r *MemChatMessageRepository) Conversation(ctx context.Context, companyID uint, companyNumber, debtorNumber string, channel models.ChatChannel) ([]*models.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ChatMessage
	for _, row := range r.rows {
		if row.CompanyID != companyID || row.Channel != channel {
			continue
		}
		outbound := row.FromNumber == companyNumber && row.ToNumber == debtorNumber
		inbound := row.FromNumber == debtorNumber && row.ToNumber == companyNumber
		if outbound || inbound {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MemCostEntryRepository is an in-memory CostEntryRepository
type MemCostEntryRepository struct {
	mu     sync.Mutex
	rows   []*models.CostEntry
	nextID uint
}

func NewMemCostEntryRepository() *MemCostEntryRepository {
	return &MemCostEntryRepository{nextID: 1}
}

func (r *MemCostEntryRepository) ByID(ctx context.Context, id uint) (*models.CostEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (r *MemCostEntryRepository) matches(row *models.CostEntry, f models.CostEntryFilter) bool {
	if f.ID != nil && row.ID != *f.ID {
		return false
	}
	if f.CompanyID != nil && row.CompanyID != *f.CompanyID {
		return false
	}
	if f.Channel != nil && row.Channel != *f.Channel {
		return false
	}
	return true
}

func (r *MemCostEntryRepository) ByFilter(ctx context.Context, f models.CostEntryFilter, orderBy string, limit, offset int) ([]*models.CostEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.CostEntry
	for _, row := range r.rows {
		if r.matches(row, f) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *MemCostEntryRepository) Save(ctx context.Context, entity *models.CostEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entity.ID == 0 {
		entity.ID = r.nextID
		r.nextID++
	}
	entity.CreatedAt = time.Now().UTC()
	r.rows = append(r.rows, entity)
	return nil
}

func (r *MemCostEntryRepository) SaveBatch(ctx context.Context, entities []*models.CostEntry) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemCostEntryRepository) Update(ctx context.Context, entity *models.CostEntry) error {
	return nil
}

func (r *MemCostEntryRepository) Count(ctx context.Context, f models.CostEntryFilter) (int64, error) {
	rows, _ := r.ByFilter(ctx, f, "", 0, 0)
	return int64(len(rows)), nil
}

func (r *MemCostEntryRepository) Exists(ctx context.Context, f models.CostEntryFilter) (bool, error) {
	n, _ := r.Count(ctx, f)
	return n > 0, nil
}

func (r *MemCostEntryRepository) ListByCompany(ctx context.Context, companyID uint, after, before *time.Time) ([]*models.CostEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.CostEntry
	for _, row := range r.rows {
		if row.CompanyID != companyID {
			continue
		}
		if after != nil && !row.CreatedAt.After(*after) {
			continue
		}
		if before != nil && !row.CreatedAt.Before(*before) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// MemPendingMessageRepository is an in-memory PendingMessageRepository
type MemPendingMessageRepository struct {
	mu     sync.Mutex
	rows   []*models.PendingMessage
	nextID uint
}

func NewMemPendingMessageRepository() *MemPendingMessageRepository {
	return &MemPendingMessageRepository{nextID: 1}
}

func (r *MemPendingMessageRepository) ByID(ctx context.Context, id uint) (*models.PendingMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (r *MemPendingMessageRepository) matches(row *models.PendingMessage, f models.PendingMessageFilter) bool {
	if f.ID != nil && row.ID != *f.ID {
		return false
	}
	if f.CompanyID != nil && row.CompanyID != *f.CompanyID {
		return false
	}
	if f.Phone != nil && row.Phone != *f.Phone {
		return false
	}
	if f.Message != nil && row.Message != *f.Message {
		return false
	}
	if f.Channel != nil && row.Channel != *f.Channel {
		return false
	}
	if f.FromNumber != nil && row.FromNumber != *f.FromNumber {
		return false
	}
	if f.Status != nil && row.Status != *f.Status {
		return false
	}
	return true
}

func (r *MemPendingMessageRepository) ByFilter(ctx context.Context, f models.PendingMessageFilter, orderBy string, limit, offset int) ([]*models.PendingMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PendingMessage
	for _, row := range r.rows {
		if r.matches(row, f) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *MemPendingMessageRepository) Save(ctx context.Context, entity *models.PendingMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entity.ID == 0 {
		entity.ID = r.nextID
		r.nextID++
	}
	entity.CreatedAt = time.Now().UTC()
	r.rows = append(r.rows, entity)
	return nil
}

func (r *MemPendingMessageRepository) SaveBatch(ctx context.Context, entities []*models.PendingMessage) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemPendingMessageRepository) Update(ctx context.Context, entity *models.PendingMessage) error {
	return nil
}

func (r *MemPendingMessageRepository) Count(ctx context.Context, f models.PendingMessageFilter) (int64, error) {
	rows, _ := r.ByFilter(ctx, f, "", 0, 0)
	return int64(len(rows)), nil
}

func (r *MemPendingMessageRepository) Exists(ctx context.Context, f models.PendingMessageFilter) (bool, error) {
	n, _ := r.Count(ctx, f)
	return n > 0, nil
}

func (r *MemPendingMessageRepository) ListPending(ctx context.Context) ([]*models.PendingMessage, error) {
	status := models.PendingStatusPending
	return r.ByFilter(ctx, models.PendingMessageFilter{Status: &status}, "", 0, 0)
}

func (r *MemPendingMessageRepository) UpdateStatus(ctx context.Context, id uint, status models.PendingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			row.Status = status
			row.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return nil
}

// MemMessageScheduleRepository is an in-memory MessageScheduleRepository
type MemMessageScheduleRepository struct {
	mu     sync.Mutex
	rows   []*models.MessageSchedule
	nextID uint
}

func NewMemMessageScheduleRepository() *MemMessageScheduleRepository {
	return &MemMessageScheduleRepository{nextID: 1}
}

func (r *MemMessageScheduleRepository) ByID(ctx context.Context, id uint) (*models.MessageSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (r *MemMessageScheduleRepository) matches(row *models.MessageSchedule, f models.MessageScheduleFilter) bool {
	if f.ID != nil && row.ID != *f.ID {
		return false
	}
	if f.CompanyID != nil && row.CompanyID != *f.CompanyID {
		return false
	}
	if f.Weekday != nil && row.Weekday != *f.Weekday {
		return false
	}
	return true
}

func (r *MemMessageScheduleRepository) ByFilter(ctx context.Context, f models.MessageScheduleFilter, orderBy string, limit, offset int) ([]*models.MessageSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.MessageSchedule
	for _, row := range r.rows {
		if r.matches(row, f) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *MemMessageScheduleRepository) Save(ctx context.Context, entity *models.MessageSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entity.ID == 0 {
		entity.ID = r.nextID
		r.nextID++
	}
	entity.CreatedAt = time.Now().UTC()
	r.rows = append(r.rows, entity)
	return nil
}

func (r *MemMessageScheduleRepository) SaveBatch(ctx context.Context, entities []*models.MessageSchedule) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemMessageScheduleRepository) Update(ctx context.Context, entity *models.MessageSchedule) error {
	return nil
}

func (r *MemMessageScheduleRepository) Count(ctx context.Context, f models.MessageScheduleFilter) (int64, error) {
	rows, _ := r.ByFilter(ctx, f, "", 0, 0)
	return int64(len(rows)), nil
}

func (r *MemMessageScheduleRepository) Exists(ctx context.Context, f models.MessageScheduleFilter) (bool, error) {
	n, _ := r.Count(ctx, f)
	return n > 0, nil
}

func (r *MemMessageScheduleRepository) ListByCompany(ctx context.Context, companyID uint) ([]*models.MessageSchedule, error) {
	company := companyID
	return r.ByFilter(ctx, models.MessageScheduleFilter{CompanyID: &company}, "", 0, 0)
}

func (r *MemMessageScheduleRepository) ReplaceForCompany(ctx context.Context, companyID uint, rows []*models.MessageSchedule) error {
	r.mu.Lock()
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.CompanyID != companyID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	r.mu.Unlock()
	return r.SaveBatch(ctx, rows)
}

// MemDebtImageRepository is an in-memory DebtImageRepository
type MemDebtImageRepository struct {
	mu     sync.Mutex
	rows   []*models.DebtImage
	nextID uint
}

func NewMemDebtImageRepository() *MemDebtImageRepository {
	return &MemDebtImageRepository{nextID: 1}
}

func (r *MemDebtImageRepository) ByID(ctx context.Context, id uint) (*models.DebtImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (r *MemDebtImageRepository) ByFilter(ctx context.Context, f models.DebtImageFilter, orderBy string, limit, offset int) ([]*models.DebtImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.DebtImage
	for _, row := range r.rows {
		if f.ID != nil && row.ID != *f.ID {
			continue
		}
		if f.DebtorID != nil && row.DebtorID != *f.DebtorID {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *MemDebtImageRepository) Save(ctx context.Context, entity *models.DebtImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entity.ID == 0 {
		entity.ID = r.nextID
		r.nextID++
	}
	entity.CreatedAt = time.Now().UTC()
	r.rows = append(r.rows, entity)
	return nil
}

func (r *MemDebtImageRepository) SaveBatch(ctx context.Context, entities []*models.DebtImage) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemDebtImageRepository) Update(ctx context.Context, entity *models.DebtImage) error {
	return nil
}

func (r *MemDebtImageRepository) Count(ctx context.Context, f models.DebtImageFilter) (int64, error) {
	rows, _ := r.ByFilter(ctx, f, "", 0, 0)
	return int64(len(rows)), nil
}

func (r *MemDebtImageRepository) Exists(ctx context.Context, f models.DebtImageFilter) (bool, error) {
	n, _ := r.Count(ctx, f)
	return n > 0, nil
}

func (r *MemDebtImageRepository) ListByDebtor(ctx context.Context, debtorID uint) ([]*models.DebtImage, error) {
	debtor := debtorID
	return r.ByFilter(ctx, models.DebtImageFilter{DebtorID: &debtor}, "", 0, 0)
}

// Interface conformance checks
var (
	_ repository.CompanyRepository         = (*MemCompanyRepository)(nil)
	_ repository.DebtorRepository          = (*MemDebtorRepository)(nil)
	_ repository.PhoneLinkRepository       = (*MemPhoneLinkRepository)(nil)
	_ repository.ChatMessageRepository     = (*MemChatMessageRepository)(nil)
	_ repository.CostEntryRepository       = (*MemCostEntryRepository)(nil)
	_ repository.PendingMessageRepository  = (*MemPendingMessageRepository)(nil)
	_ repository.MessageScheduleRepository = (*MemMessageScheduleRepository)(nil)
	_ repository.DebtImageRepository       = (*MemDebtImageRepository)(nil)
)
