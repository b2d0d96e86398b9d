package businessflow

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/cobraops/cobra-core/app/dto"
	"github.com/cobraops/cobra-core/models"
	"github.com/cobraops/cobra-core/repository"
	"github.com/cobraops/cobra-core/utils"
	"github.com/google/uuid"
)

// Column alias sets used for fuzzy header matching. Workbooks arrive from
// many agencies; headers are matched by substring after lower-casing.
var (
	nameColumnAliases     = []string{"nombre", "name"}
	documentColumnAliases = []string{"cedula", "documento", "dni"}
	amountColumnAliases   = []string{"monto", "importe", "deuda", "amount"}
	dateColumnAliases     = []string{"fecha"}
	cellColumnAliases     = []string{"celular", "movil", "mobile"}
	landlineColumnAliases = []string{"telefono", "phone"}
	emailColumnAliases    = []string{"correo", "email", "mail"}
)

var workbookDateLayouts = []string{"2006-01-02", "02/01/2006", "2/1/2006", "01-02-2006"}

// CampaignFlow fans one uploaded workbook out into per-contact send
// attempts: entity resolution, schedule gating, channel dispatch or
// deferral, and the per-debtor audit trail.
type CampaignFlow interface {
	RunCampaign(ctx context.Context, req *dto.RunCampaignRequest) (*dto.CampaignRunSummary, error)
}

// CampaignFlowImpl implements the outbound campaign business flow
type CampaignFlowImpl struct {
	companyRepo   repository.CompanyRepository
	debtorRepo    repository.DebtorRepository
	resolver      EntityResolverFlow
	scheduleFlow  ScheduleWindowFlow
	pendingFlow   PendingQueueFlow
	senders       *ChannelSenders
	serviceNumber string
}

// NewCampaignFlow creates a new campaign flow instance. serviceNumber is
// the platform's shared sender used by superadmin companies.
func NewCampaignFlow(
	companyRepo repository.CompanyRepository,
	debtorRepo repository.DebtorRepository,
	resolver EntityResolverFlow,
	scheduleFlow ScheduleWindowFlow,
	pendingFlow PendingQueueFlow,
	senders *ChannelSenders,
	serviceNumber string,
) CampaignFlow {
	return &CampaignFlowImpl{
		companyRepo:   companyRepo,
		debtorRepo:    debtorRepo,
		resolver:      resolver,
		scheduleFlow:  scheduleFlow,
		pendingFlow:   pendingFlow,
		senders:       senders,
		serviceNumber: serviceNumber,
	}
}

// campaignColumns is the validated header mapping for one run
type campaignColumns struct {
	name     string
	document string
	amount   string
	date     string
	// contact columns, keyed by header, valued by the link kind they imply
	contacts map[string]models.PhoneLinkKind
	isEmail  bool
}

// RunCampaign executes one workbook upload end to end. Validation failures
// abort before any contact is attempted; per-contact provider failures and
// invalid cells never abort the batch.
func (f *CampaignFlowImpl) RunCampaign(ctx context.Context, req *dto.RunCampaignRequest) (*dto.CampaignRunSummary, error) {
	channel := models.CostChannel(req.Channel)
	sender := f.senders.ForChannel(channel)
	if sender == nil {
		return nil, NewBusinessErrorf(CodeValidationFailed, "Unsupported channel %q", nil, req.Channel)
	}

	company, err := f.companyRepo.ByID(ctx, req.CompanyID)
	if err != nil {
		return nil, NewBusinessError("COMPANY_LOOKUP_FAILED", "Failed to lookup company", err)
	}
	if company == nil {
		return nil, NewBusinessError(CodeNotFound, "Company not found", ErrCompanyNotFound)
	}

	headers, rows, err := utils.ParseWorkbook(req.Workbook)
	if err != nil {
		return nil, NewBusinessError(CodeValidationFailed, "Failed to parse workbook", err)
	}
	if len(rows) == 0 {
		return nil, NewBusinessError(CodeValidationFailed, "Workbook contains no data rows", ErrWorkbookEmpty)
	}

	columns, err := resolveColumns(headers, channel)
	if err != nil {
		return nil, err
	}

	from, err := f.resolveFromNumber(company, req.FromNumber)
	if err != nil {
		return nil, err
	}

	summary := &dto.CampaignRunSummary{
		TrackingID: uuid.New().String(),
		Channel:    req.Channel,
		Rows:       len(rows),
	}
	log.Printf("campaign %s: %d rows on %s for company %d", summary.TrackingID, len(rows), channel, company.ID)

	// Contacts are processed strictly one at a time; ordering of debtor
	// events must follow issue order and provider rate consumption stays
	// bounded without a limiter.
	for _, row := range rows {
		f.processRow(ctx, company, row, columns, channel, from, req.CountryCode, summary)
	}

	log.Printf("campaign %s: sent=%d enqueued=%d failed=%d skipped=%d",
		summary.TrackingID, summary.Sent, summary.Enqueued, summary.Failed, summary.Skipped)
	return summary, nil
}

// resolveColumns validates the header row against the channel's needs and
// names every missing column in one error.
func resolveColumns(headers []string, channel models.CostChannel) (*campaignColumns, error) {
	cols := &campaignColumns{contacts: make(map[string]models.PhoneLinkKind, 2)}
	var missing []string

	var ok bool
	if cols.name, ok = utils.MatchColumn(headers, nameColumnAliases); !ok {
		missing = append(missing, "nombre")
	}
	if cols.document, ok = utils.MatchColumn(headers, documentColumnAliases); !ok {
		missing = append(missing, "cedula")
	}
	// amount and date enrich the debtor record but are not required
	cols.amount, _ = utils.MatchColumn(headers, amountColumnAliases)
	cols.date, _ = utils.MatchColumn(headers, dateColumnAliases)

	if channel == models.CostChannelEmail {
		cols.isEmail = true
		if col, ok := utils.MatchColumn(headers, emailColumnAliases); ok {
			cols.contacts[col] = models.PhoneLinkKindCellphone
		} else {
			missing = append(missing, "correo")
		}
	} else {
		if col, ok := utils.MatchColumn(headers, cellColumnAliases); ok {
			cols.contacts[col] = models.PhoneLinkKindCellphone
		}
		if col, ok := utils.MatchColumn(headers, landlineColumnAliases); ok {
			cols.contacts[col] = models.PhoneLinkKindTelephone
		}
		if len(cols.contacts) == 0 {
			missing = append(missing, "celular/telefono")
		}
	}

	if len(missing) > 0 {
		return nil, NewBusinessErrorf(CodeValidationFailed,
			"Workbook is missing required columns: %s", ErrMissingRequiredColumns, strings.Join(missing, ", "))
	}
	return cols, nil
}

// resolveFromNumber picks the outbound sender identity by company role.
// Superadmin companies share the platform service number; ordinary
// companies must bring a valid agent or client number.
func (f *CampaignFlowImpl) resolveFromNumber(company *models.Company, requested string) (string, error) {
	if company.Role == models.CompanyRoleSuperadmin {
		return f.serviceNumber, nil
	}
	candidate := utils.SanitizePhone(requested)
	if utils.IsNumeric(candidate) {
		return candidate, nil
	}
	if company.AgentNumber != nil {
		agent := utils.SanitizePhone(*company.AgentNumber)
		if utils.IsNumeric(agent) {
			return agent, nil
		}
	}
	return "", NewBusinessError(CodeValidationFailed, "A valid sender number is required", ErrInvalidFromNumber)
}

func (f *CampaignFlowImpl) processRow(
	ctx context.Context,
	company *models.Company,
	row utils.WorkbookRow,
	cols *campaignColumns,
	channel models.CostChannel,
	from, countryCode string,
	summary *dto.CampaignRunSummary,
) {
	name := strings.TrimSpace(row[cols.name])
	document := strings.TrimSpace(row[cols.document])
	if name == "" || document == "" {
		log.Printf("campaign: skipping row without name/document")
		summary.Skipped++
		return
	}

	var debtDate *time.Time
	if cols.date != "" {
		debtDate = parseWorkbookDate(row[cols.date])
	}
	var amount float64
	if cols.amount != "" && strings.TrimSpace(row[cols.amount]) != "" {
		parsed, ok := parseWorkbookAmount(row[cols.amount])
		if !ok {
			log.Printf("campaign: skipping row with unparseable amount %q", row[cols.amount])
			summary.Skipped++
			return
		}
		amount = parsed
	}

	for contactCol, kind := range cols.contacts {
		target := strings.TrimSpace(row[contactCol])
		if target == "" {
			continue
		}
		if cols.isEmail {
			if !strings.Contains(target, "@") {
				log.Printf("campaign: skipping invalid email %q", target)
				summary.Skipped++
				continue
			}
		} else {
			target = utils.SanitizePhone(target)
			if countryCode != "" && !strings.HasPrefix(target, countryCode) {
				target = countryCode + target
			}
			if !utils.IsNumeric(target) {
				log.Printf("campaign: skipping invalid phone %q", row[contactCol])
				summary.Skipped++
				continue
			}
		}

		debtor, err := f.resolver.ResolveDebtor(ctx, name, document, company.ID, debtDate, amount)
		if err != nil {
			log.Printf("campaign: debtor resolution failed for document %s: %v", document, err)
			summary.Failed++
			continue
		}
		if !cols.isEmail {
			if _, err := f.resolver.ResolvePhoneLink(ctx, debtor.ID, from, target, kind); err != nil {
				log.Printf("campaign: phone link resolution failed for %s: %v", target, err)
				summary.Failed++
				continue
			}
		}

		message := buildCampaignMessage(channel, debtor)

		open, err := f.scheduleFlow.IsOpen(ctx, company.ID)
		if err != nil {
			log.Printf("campaign: window check failed for company %d: %v", company.ID, err)
			open = false
		}
		if !open {
			if err := f.pendingFlow.Enqueue(ctx, company.ID, target, message, channel, from); err != nil {
				log.Printf("campaign: enqueue failed for %s: %v", target, err)
				summary.Failed++
				continue
			}
			summary.Enqueued++
			continue
		}

		result, err := f.senders.ForChannel(channel).Send(ctx, company.ID, from, target, message)
		if err != nil || !result.Success {
			f.audit(ctx, debtor, fmt.Sprintf("Intento de contacto por %s a %s fallido", channel, target))
			summary.Failed++
			continue
		}
		f.audit(ctx, debtor, fmt.Sprintf("Contacto enviado por %s a %s", channel, target))
		if err := f.debtorRepo.Update(ctx, debtor); err != nil {
			log.Printf("campaign: failed to persist debtor %d: %v", debtor.ID, err)
		}
		summary.Sent++
	}
}

func (f *CampaignFlowImpl) audit(ctx context.Context, debtor *models.Debtor, text string) {
	entry := fmt.Sprintf("[%s] %s", utils.UTCNowRFC3339(), text)
	if err := f.debtorRepo.AppendEvent(ctx, debtor.ID, entry); err != nil {
		log.Printf("campaign: failed to append event for debtor %d: %v", debtor.ID, err)
	}
}

func parseWorkbookDate(cell string) *time.Time {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	for _, layout := range workbookDateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return &t
		}
	}
	return nil
}

// parseWorkbookAmount accepts both separator conventions found in agency
// workbooks: "1,234.56" and "1.234,56". When only a comma appears, one
// or two trailing digits mark it as the decimal separator; otherwise
// commas are thousands separators.
func parseWorkbookAmount(cell string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(cell), " ", "")
	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0 && dot > comma:
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-comma-1 <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil || amount < 0 {
		return 0, false
	}
	return amount, true
}

// buildCampaignMessage renders the first-contact body for a channel. Voice
// scripts avoid formatting; SMS stays short.
func buildCampaignMessage(channel models.CostChannel, debtor *models.Debtor) string {
	switch channel {
	case models.CostChannelSMS:
		return fmt.Sprintf("%s: registra una deuda pendiente de %.2f. Responda para regularizar su situación.",
			debtor.Name, debtor.DebtAmount)
	case models.CostChannelCall:
		return fmt.Sprintf("Buenos días %s. Le llamamos del área de cobranza. Registra una deuda pendiente de %.2f. "+
			"Por favor indíquenos cuándo podría realizar el pago.", debtor.Name, debtor.DebtAmount)
	case models.CostChannelEmail:
		return fmt.Sprintf("Estimado(a) %s:\n\nLe recordamos que mantiene una deuda pendiente de %.2f. "+
			"Responda este correo para coordinar su regularización.\n\nÁrea de cobranza", debtor.Name, debtor.DebtAmount)
	default:
		return fmt.Sprintf("Estimado(a) %s, le saluda el área de cobranza. Registra una deuda pendiente de %.2f. "+
			"Responda a este mensaje para regularizar su situación.", debtor.Name, debtor.DebtAmount)
	}
}
