package entity

// ImportRow é a forma canônica de um lead vindo da planilha.
// Keywords nunca fica vazio e Status é sempre um LeadStatus válido.
type ImportRow struct {
	Company       string     `json:"company"`
	Email         string     `json:"email"`
	Region        string     `json:"region"`
	Industry      string     `json:"industry"`
	Keywords      []string   `json:"keywords"`
	Status        LeadStatus `json:"status"`
	CampaignName  string     `json:"campaign_name"`
	LeadName      string     `json:"lead_name"`
	Phone         string     `json:"phone"`
	City          string     `json:"city"`
	State         string     `json:"state"`
	Address       string     `json:"address"`
	GoogleMapsURL string     `json:"google_maps_url"`
	LeadCategory  string     `json:"lead_category"`
}

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ImportValidation aponta uma célula problemática. RowIndex é a posição em ParseResult.Rows.
type ImportValidation struct {
	RowIndex int      `json:"rowIndex"`
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

type SheetFormat string

const (
	SheetTreated SheetFormat = "treated"
	SheetRaw     SheetFormat = "raw"
)

// ParseResult: TotalRawRows == len(Rows) + FilteredOutRows.
type ParseResult struct {
	Format          SheetFormat        `json:"format"`
	Rows            []ImportRow        `json:"rows"`
	Validations     []ImportValidation `json:"validations"`
	TotalRawRows    int                `json:"totalRawRows"`
	FilteredOutRows int                `json:"filteredOutRows"`
}
