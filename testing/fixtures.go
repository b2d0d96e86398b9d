package testing

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cobraops/cobra-core/models"
	"github.com/cobraops/cobra-core/utils"
	"github.com/xuri/excelize/v2"
)

// Fixtures bundles the in-memory repositories a flow test needs
type Fixtures struct {
	Companies *MemCompanyRepository
	Debtors   *MemDebtorRepository
	Links     *MemPhoneLinkRepository
	Chats     *MemChatMessageRepository
	Costs     *MemCostEntryRepository
	Pending   *MemPendingMessageRepository
	Schedules *MemMessageScheduleRepository
	Images    *MemDebtImageRepository
}

// NewFixtures creates one fresh repository set
func NewFixtures() *Fixtures {
	return &Fixtures{
		Companies: NewMemCompanyRepository(),
		Debtors:   NewMemDebtorRepository(),
		Links:     NewMemPhoneLinkRepository(),
		Chats:     NewMemChatMessageRepository(),
		Costs:     NewMemCostEntryRepository(),
		Pending:   NewMemPendingMessageRepository(),
		Schedules: NewMemMessageScheduleRepository(),
		Images:    NewMemDebtImageRepository(),
	}
}

// CreateCompany stores a standard company with an agent number
func (f *Fixtures) CreateCompany(name string) *models.Company {
	company := &models.Company{
		Name:        name,
		Role:        models.CompanyRoleStandard,
		AgentNumber: utils.ToPtr("51987000111"),
	}
	_ = f.Companies.Save(context.Background(), company)
	return company
}

// CreateDebtor stores a debtor linked to the company
func (f *Fixtures) CreateDebtor(companyID uint, name, document string, amount float64) *models.Debtor {
	debtor := &models.Debtor{
		CompanyID:     companyID,
		Name:          name,
		Document:      document,
		DebtAmount:    amount,
		DebtClass:     models.DebtClassChargedOff,
		PaymentStatus: models.PaymentStatusNoContact,
	}
	_ = f.Debtors.Save(context.Background(), debtor)
	return debtor
}

// CreateLink stores a phone link for the debtor
func (f *Fixtures) CreateLink(debtorID uint, from, to string) *models.PhoneLink {
	link := &models.PhoneLink{
		DebtorID:   debtorID,
		FromNumber: from,
		ToNumber:   to,
		Kind:       models.PhoneLinkKindCellphone,
	}
	_ = f.Links.Save(context.Background(), link)
	return link
}

// OpenAllWeek stores a schedule row per weekday covering the whole day
func (f *Fixtures) OpenAllWeek(companyID uint) {
	for day := 0; day <= 6; day++ {
		_ = f.Schedules.Save(context.Background(), &models.MessageSchedule{
			CompanyID: companyID,
			Weekday:   day,
			StartTime: "00:00",
			EndTime:   "23:59",
			Timezone:  "UTC",
		})
	}
}

// BuildWorkbook renders header plus data rows into xlsx bytes
func BuildWorkbook(headers []string, rows [][]string) ([]byte, error) {
	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := wb.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}
	for rowIdx, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := wb.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// VerdictJSON renders a classifier verdict the way the agent emits it
func VerdictJSON(respuesta, accion, estado string) string {
	return fmt.Sprintf(`{"respuesta": %q, "accion": %q, "estado": %q}`, respuesta, accion, estado)
}

// Yesterday returns a pointer to the same clock time one day ago in UTC
func Yesterday() *time.Time {
	t := time.Now().UTC().AddDate(0, 0, -1)
	return &t
}
