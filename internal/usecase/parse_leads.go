package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/spreadsheet"
)

// TreatedColumns são as colunas do formato canônico de lead.
var TreatedColumns = []string{
	"company", "email", "region", "industry", "keywords", "status", "campaign_name", "user_id",
	"lead_name", "phone", "city", "state", "address", "google_maps_url", "lead_category",
}

const treatedThreshold = 10

// Colunas da exportação bruta do scraper.
const (
	rawCompanyName   = "Company Name"
	rawNormalizedURL = "Normalized URL"
	rawWorkEmail     = "Use Work Email"
	rawEmail         = "Email"
	rawIndustry      = "Industry"
	rawFullName      = "Full Name"
	rawPhone         = "Phone"
	rawCity          = "City"
	rawState         = "State"
	rawAddress       = "Address"
)

// FormatDetector classifica a planilha pelo cabeçalho.
type FormatDetector func(headers []string) entity.SheetFormat

// DetectSheetFormat conta quantas colunas tratadas aparecem no cabeçalho.
func DetectSheetFormat(headers []string) entity.SheetFormat {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}

	matched := 0
	for _, col := range TreatedColumns {
		if _, ok := present[col]; ok {
			matched++
		}
	}
	if matched >= treatedThreshold {
		return entity.SheetTreated
	}
	return entity.SheetRaw
}

type ParseLeadsInput struct {
	Data     []byte
	Filename string
}

type ParseLeadsUseCase struct {
	Detector      FormatDetector
	DefaultRegion string
	Logger        *zap.Logger
}

func NewParseLeadsUseCase(defaultRegion string, logger *zap.Logger) *ParseLeadsUseCase {
	return &ParseLeadsUseCase{
		Detector:      DetectSheetFormat,
		DefaultRegion: defaultRegion,
		Logger:        logger,
	}
}

func (uc *ParseLeadsUseCase) Execute(ctx context.Context, input ParseLeadsInput) (*entity.ParseResult, error) {
	sheet, err := spreadsheet.Decode(input.Data, input.Filename)
	if err != nil {
		uc.Logger.Warn("❌ planilha ilegível", zap.String("filename", input.Filename), zap.Error(err))
		return nil, &DomainError{
			Code:    CodeUnreadableSpreadsheet,
			Message: "Não foi possível ler o arquivo. Envie um CSV ou XLSX válido.",
		}
	}

	detect := uc.Detector
	if detect == nil {
		detect = DetectSheetFormat
	}

	p := &sheetParser{
		region: uc.DefaultRegion,
		result: &entity.ParseResult{
			Format:       detect(sheet.Headers),
			Rows:         []entity.ImportRow{},
			Validations:  []entity.ImportValidation{},
			TotalRawRows: len(sheet.Records),
		},
	}

	switch p.result.Format {
	case entity.SheetTreated:
		for _, rec := range sheet.Records {
			p.treated(rec)
		}
	default:
		for _, rec := range sheet.Records {
			p.raw(rec)
		}
	}

	uc.Logger.Info("📄 planilha processada",
		zap.String("filename", input.Filename),
		zap.String("format", string(p.result.Format)),
		zap.Int("total", p.result.TotalRawRows),
		zap.Int("rows", len(p.result.Rows)),
		zap.Int("filtered_out", p.result.FilteredOutRows),
		zap.Int("validations", len(p.result.Validations)),
	)
	return p.result, nil
}

type sheetParser struct {
	region string
	result *entity.ParseResult
}

func (p *sheetParser) treated(rec spreadsheet.Record) {
	get := func(col string) string { return Sanitize(rec.Get(col)) }

	company, email := get("company"), get("email")
	if company == "" && email == "" {
		p.result.FilteredOutRows++
		return
	}

	row := entity.ImportRow{
		Company:       company,
		Email:         email,
		Region:        get("region"),
		Industry:      get("industry"),
		Keywords:      ParseKeywords(rec.Get("keywords")),
		Status:        entity.ParseLeadStatus(get("status")),
		CampaignName:  get("campaign_name"),
		LeadName:      get("lead_name"),
		Phone:         get("phone"),
		City:          get("city"),
		State:         get("state"),
		Address:       get("address"),
		GoogleMapsURL: get("google_maps_url"),
		LeadCategory:  get("lead_category"),
	}
	if row.Region == "" {
		row.Region = p.region
	}
	if row.GoogleMapsURL == "" {
		row.GoogleMapsURL = GoogleMapsURL(row.Address, row.City, row.State)
	}

	idx := p.add(row)
	if company == "" {
		p.warn(idx, "company", "Empresa ausente")
	}
	if email == "" {
		p.warn(idx, "email", "Email ausente")
	}
	if row.LeadName == "" {
		p.warn(idx, "lead_name", "Nome do lead ausente")
	}
}

func (p *sheetParser) raw(rec spreadsheet.Record) {
	get := func(col string) string { return Sanitize(rec.Get(col)) }

	if get(rawCompanyName) == "" {
		p.result.FilteredOutRows++
		return
	}

	email := get(rawWorkEmail)
	if email == "" {
		email = get(rawEmail)
	}
	industry := get(rawIndustry)
	address, city, state := get(rawAddress), get(rawCity), get(rawState)

	row := entity.ImportRow{
		Company:       ExtractDomain(rec.Get(rawNormalizedURL)),
		Email:         email,
		Region:        p.region,
		Industry:      industry,
		Keywords:      KeywordsForIndustry(industry),
		Status:        entity.LeadResearched,
		LeadName:      get(rawFullName),
		Phone:         get(rawPhone),
		City:          city,
		State:         state,
		Address:       address,
		GoogleMapsURL: GoogleMapsURL(address, city, state),
	}

	idx := p.add(row)
	if row.Company == "" {
		p.warn(idx, "company", "Não foi possível extrair o domínio da URL")
	}
	if row.Email == "" {
		p.warn(idx, "email", "Email ausente")
	}
	if row.LeadName == "" {
		p.warn(idx, "lead_name", "Nome do lead ausente")
	}
}

func (p *sheetParser) add(row entity.ImportRow) int {
	p.result.Rows = append(p.result.Rows, row)
	return len(p.result.Rows) - 1
}

func (p *sheetParser) warn(rowIndex int, field, message string) {
	p.result.Validations = append(p.result.Validations, entity.ImportValidation{
		RowIndex: rowIndex,
		Field:    field,
		Message:  message,
		Severity: entity.SeverityWarning,
	})
}

var ErrRowOutOfRange = errors.New("linha fora do intervalo")

// EditRow altera um campo de uma linha e limpa a validação desse (rowIndex, field).
func EditRow(result *entity.ParseResult, rowIndex int, field, value string) error {
	if rowIndex < 0 || rowIndex >= len(result.Rows) {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, rowIndex)
	}

	row := &result.Rows[rowIndex]
	v := strings.TrimSpace(value)
	switch field {
	case "company":
		row.Company = v
	case "email":
		row.Email = v
	case "region":
		row.Region = v
	case "industry":
		row.Industry = v
	case "keywords":
		row.Keywords = ParseKeywords(v)
	case "status":
		st := entity.LeadStatus(strings.ToLower(v))
		if !st.IsValid() {
			return &DomainError{Code: CodeValidation, Message: "status inválido: " + value}
		}
		row.Status = st
	case "campaign_name":
		row.CampaignName = v
	case "lead_name":
		row.LeadName = v
	case "phone":
		row.Phone = v
	case "city":
		row.City = v
	case "state":
		row.State = v
	case "address":
		row.Address = v
	case "google_maps_url":
		row.GoogleMapsURL = v
	case "lead_category":
		row.LeadCategory = v
	default:
		return &DomainError{Code: CodeValidation, Message: "campo desconhecido: " + field}
	}

	kept := result.Validations[:0]
	for _, val := range result.Validations {
		if val.RowIndex == rowIndex && val.Field == field {
			continue
		}
		kept = append(kept, val)
	}
	result.Validations = kept
	return nil
}

// ApplyCampaign marca as linhas indicadas (ou todas, se indices vier vazio) com a campanha.
func ApplyCampaign(rows []entity.ImportRow, name string, indices []int) int {
	name = strings.TrimSpace(name)
	if len(indices) == 0 {
		for i := range rows {
			rows[i].CampaignName = name
		}
		return len(rows)
	}

	tagged := 0
	for _, i := range indices {
		if i < 0 || i >= len(rows) {
			continue
		}
		rows[i].CampaignName = name
		tagged++
	}
	return tagged
}
