package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

const treatedHeader = "company,email,region,industry,keywords,status,campaign_name,user_id,lead_name,phone,city,state,address,google_maps_url,lead_category"

const rawHeader = "Company Name,Normalized URL,Use Work Email,Email,Industry,Full Name,Phone,City,State,Address"

func csvOf(header string, rows ...[]string) []byte {
	lines := []string{header}
	for _, r := range rows {
		lines = append(lines, strings.Join(r, ","))
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

func newParser() *ParseLeadsUseCase {
	return NewParseLeadsUseCase("Brasil", zap.NewNop())
}

func assertParseInvariants(t *testing.T, res *entity.ParseResult) {
	t.Helper()
	assert.Equal(t, res.TotalRawRows, len(res.Rows)+res.FilteredOutRows)
	for i, row := range res.Rows {
		assert.GreaterOrEqual(t, len(row.Keywords), 1, "row %d sem keywords", i)
		assert.True(t, row.Status.IsValid(), "row %d com status inválido", i)
	}
	for _, v := range res.Validations {
		assert.Less(t, v.RowIndex, len(res.Rows))
	}
}

func TestSanitize(t *testing.T) {
	for _, in := range []string{"NaN", "  null ", "#N/A", "n/a", "Undefined", "", "   "} {
		assert.Equal(t, "", Sanitize(in), "input %q", in)
	}
	assert.Equal(t, "Acme", Sanitize("  Acme "))
	assert.Equal(t, "nana", Sanitize("nana"))
}

func TestDetectSheetFormat(t *testing.T) {
	twelve := TreatedColumns[:12]
	assert.Equal(t, entity.SheetTreated, DetectSheetFormat(twelve))

	four := []string{"Company", "EMAIL", "Region", "Full Name"}
	assert.Equal(t, entity.SheetRaw, DetectSheetFormat(four[:3]))
	assert.Equal(t, entity.SheetRaw, DetectSheetFormat(append(TreatedColumns[:4:4], "Other")))

	upper := make([]string, 10)
	for i, c := range TreatedColumns[:10] {
		upper[i] = "  " + strings.ToUpper(c) + " "
	}
	assert.Equal(t, entity.SheetTreated, DetectSheetFormat(upper))
	assert.Equal(t, entity.SheetRaw, DetectSheetFormat(TreatedColumns[:9]))
}

func TestExtractDomain(t *testing.T) {
	cases := map[string]string{
		"https://www.example.com/profile/x":       "example.com",
		"http://Acme.COM.br/":                     "acme.com.br",
		"www.padariasol.com.br":                   "padariasol.com.br",
		"see https://www.beta.io/about for more":  "beta.io",
		"Visit acme.io today":                     "acme.io",
		"https://sub.domain.example.org:8443/x?y": "sub.domain.example.org",
		"not a url":                               "",
		"localhost":                               "",
		"NaN":                                     "",
		"":                                        "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ExtractDomain(in), "input %q", in)
	}
}

func TestParseKeywords(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{`["seo", "ads", "crm"]`, []string{"seo", "ads", "crm"}},
		{`['dentist', 'implants']`, []string{"dentist", "implants"}},
		{`[solar, energy, panels]`, []string{"solar", "energy"}},
		{`plumbing, heating, cooling`, []string{"plumbing", "heating"}},
		{`"solo"`, []string{"solo", "business solutions"}},
		{`["only"]`, []string{"only", "business solutions"}},
		{`[]`, []string{"general services", "business solutions"}},
		{`nan`, []string{"general services", "business solutions"}},
		{` , , `, []string{"general services", "business solutions"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseKeywords(tc.in), "input %q", tc.in)
	}
}

func TestKeywordsForIndustry(t *testing.T) {
	assert.Equal(t, []string{"software development", "saas solutions"}, KeywordsForIndustry("Computer Software"))
	assert.Equal(t, []string{"software development", "saas solutions"}, KeywordsForIndustry("software"))
	assert.Equal(t, []string{"restaurant", "food service"}, KeywordsForIndustry("Restaurants & Bars"))
	assert.Equal(t, []string{"artisanal services", "cheese solutions"}, KeywordsForIndustry("Artisanal Cheese Making"))
	assert.Equal(t, []string{"quilting services", "quilting solutions"}, KeywordsForIndustry("Quilting"))
	assert.Equal(t, []string{"general services", "business solutions"}, KeywordsForIndustry(""))
	assert.Len(t, industryTable, 64)
}

func TestGoogleMapsURL(t *testing.T) {
	assert.Equal(t,
		"https://www.google.com/maps/search/?api=1&query=Rua+A+10%2C+Campinas%2C+SP",
		GoogleMapsURL("Rua A 10", "Campinas", "SP"))
	assert.Equal(t,
		"https://www.google.com/maps/search/?api=1&query=Campinas",
		GoogleMapsURL("", "Campinas", "n/a"))
	assert.Equal(t, "", GoogleMapsURL("", " ", "NaN"))
}

func TestParseRawSheetFiltersRowsWithoutCompanyName(t *testing.T) {
	var rows [][]string
	for i := 0; i < 7; i++ {
		rows = append(rows, []string{"Acme", "https://www.acme.com/about", "ana@acme.com", "", "Computer Software", "Ana Souza", "1199999", "Campinas", "SP", "Rua A 10"})
	}
	for i := 0; i < 3; i++ {
		rows = append(rows, []string{"", "https://www.ghost.com", "", "x@ghost.com", "Retail", "Fantasma", "", "", "", ""})
	}

	res, err := newParser().Execute(context.Background(), ParseLeadsInput{Data: csvOf(rawHeader, rows...), Filename: "raw.csv"})
	require.NoError(t, err)

	assert.Equal(t, entity.SheetRaw, res.Format)
	assert.Equal(t, 10, res.TotalRawRows)
	assert.Equal(t, 3, res.FilteredOutRows)
	assert.Len(t, res.Rows, 7)
	assertParseInvariants(t, res)

	row := res.Rows[0]
	assert.Equal(t, "acme.com", row.Company)
	assert.Equal(t, "ana@acme.com", row.Email)
	assert.Equal(t, "Brasil", row.Region)
	assert.Equal(t, entity.LeadResearched, row.Status)
	assert.Equal(t, "", row.CampaignName)
	assert.Equal(t, []string{"software development", "saas solutions"}, row.Keywords)
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=Rua+A+10%2C+Campinas%2C+SP", row.GoogleMapsURL)
	assert.Empty(t, res.Validations)
}

func TestParseRawSheetFallbacksAndWarnings(t *testing.T) {
	data := csvOf(rawHeader,
		[]string{"Beta", "garbage value", "", "contato@beta.com", "Artisanal Cheese", "", "", "", "", ""},
		[]string{"Gama", "https://gama.com.br", "NaN", "", "", "João", "", "", "", ""},
	)

	res, err := newParser().Execute(context.Background(), ParseLeadsInput{Data: data, Filename: "raw.csv"})
	require.NoError(t, err)
	assertParseInvariants(t, res)
	require.Len(t, res.Rows, 2)

	assert.Equal(t, "", res.Rows[0].Company)
	assert.Equal(t, "contato@beta.com", res.Rows[0].Email)
	assert.Equal(t, []string{"artisanal services", "cheese solutions"}, res.Rows[0].Keywords)
	assert.Equal(t, "", res.Rows[0].GoogleMapsURL)

	assert.Equal(t, "gama.com.br", res.Rows[1].Company)
	assert.Equal(t, "", res.Rows[1].Email)
	assert.Equal(t, []string{"general services", "business solutions"}, res.Rows[1].Keywords)

	assert.Equal(t, []entity.ImportValidation{
		{RowIndex: 0, Field: "company", Message: "Não foi possível extrair o domínio da URL", Severity: entity.SeverityWarning},
		{RowIndex: 0, Field: "lead_name", Message: "Nome do lead ausente", Severity: entity.SeverityWarning},
		{RowIndex: 1, Field: "email", Message: "Email ausente", Severity: entity.SeverityWarning},
	}, res.Validations)
}

func TestParseTreatedSheet(t *testing.T) {
	data := csvOf(treatedHeader,
		[]string{"acme.com", "", "", "Software", `"['crm', 'erp']"`, "SENT", "Q3", "u1", "Ana", "", "Campinas", "SP", "", "", "B2B"},
		[]string{"NaN", "null", "", "", "", "", "", "", "Ghost", "", "", "", "", "", ""},
		[]string{"", "bob@beta.com", "Sul", "", "", "weird", "", "", "", "", "", "", "", "", ""},
	)

	res, err := newParser().Execute(context.Background(), ParseLeadsInput{Data: data, Filename: "treated.csv"})
	require.NoError(t, err)

	assert.Equal(t, entity.SheetTreated, res.Format)
	assert.Equal(t, 3, res.TotalRawRows)
	assert.Equal(t, 1, res.FilteredOutRows)
	require.Len(t, res.Rows, 2)
	assertParseInvariants(t, res)

	first := res.Rows[0]
	assert.Equal(t, "acme.com", first.Company)
	assert.Equal(t, "", first.Email)
	assert.Equal(t, "Brasil", first.Region)
	assert.Equal(t, []string{"crm", "erp"}, first.Keywords)
	assert.Equal(t, entity.LeadSent, first.Status)
	assert.Equal(t, "Q3", first.CampaignName)
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=Campinas%2C+SP", first.GoogleMapsURL)

	second := res.Rows[1]
	assert.Equal(t, "Sul", second.Region)
	assert.Equal(t, entity.LeadResearched, second.Status)
	assert.Equal(t, []string{"general services", "business solutions"}, second.Keywords)

	var firstRow []entity.ImportValidation
	for _, v := range res.Validations {
		if v.RowIndex == 0 {
			firstRow = append(firstRow, v)
		}
	}
	require.Len(t, firstRow, 1)
	assert.Equal(t, "email", firstRow[0].Field)
	assert.Equal(t, entity.SeverityWarning, firstRow[0].Severity)

	assert.Contains(t, res.Validations, entity.ImportValidation{RowIndex: 1, Field: "company", Message: "Empresa ausente", Severity: entity.SeverityWarning})
	assert.Contains(t, res.Validations, entity.ImportValidation{RowIndex: 1, Field: "lead_name", Message: "Nome do lead ausente", Severity: entity.SeverityWarning})
}

func TestParseUnreadableFile(t *testing.T) {
	res, err := newParser().Execute(context.Background(), ParseLeadsInput{Data: []byte{0x00, 0x01, 0x02, 0xff}, Filename: "broken.csv"})

	assert.Nil(t, res)
	require.Error(t, err)
	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeUnreadableSpreadsheet, de.Code)
}

func TestParseWindows1252CSV(t *testing.T) {
	data := []byte("Company Name,Normalized URL,Email,Full Name,City\nPadaria,https://www.padaria.com.br,a@b.com,Jo\xe3o,S\xe3o Paulo\n")

	res, err := newParser().Execute(context.Background(), ParseLeadsInput{Data: data, Filename: "export.csv"})
	require.NoError(t, err)

	assert.Equal(t, entity.SheetRaw, res.Format)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "padaria.com.br", res.Rows[0].Company)
	assert.Equal(t, "João", res.Rows[0].LeadName)
	assert.Equal(t, "São Paulo", res.Rows[0].City)
}

func TestParseUsesInjectedDetector(t *testing.T) {
	uc := newParser()
	uc.Detector = func([]string) entity.SheetFormat { return entity.SheetRaw }

	data := csvOf(treatedHeader, []string{"acme.com", "a@acme.com", "", "", "", "", "", "", "Ana", "", "", "", "", "", ""})
	res, err := uc.Execute(context.Background(), ParseLeadsInput{Data: data, Filename: "t.csv"})
	require.NoError(t, err)

	assert.Equal(t, entity.SheetRaw, res.Format)
	assert.Equal(t, 1, res.FilteredOutRows)
	assert.Empty(t, res.Rows)
	assertParseInvariants(t, res)
}

func TestEditRowClearsOnlyMatchingValidation(t *testing.T) {
	res := &entity.ParseResult{
		Rows: []entity.ImportRow{{Company: "acme.com"}, {Email: "b@beta.com"}},
		Validations: []entity.ImportValidation{
			{RowIndex: 0, Field: "email", Severity: entity.SeverityWarning},
			{RowIndex: 0, Field: "lead_name", Severity: entity.SeverityWarning},
			{RowIndex: 1, Field: "email", Severity: entity.SeverityWarning},
		},
	}

	require.NoError(t, EditRow(res, 0, "email", " ana@acme.com "))

	assert.Equal(t, "ana@acme.com", res.Rows[0].Email)
	assert.Equal(t, []entity.ImportValidation{
		{RowIndex: 0, Field: "lead_name", Severity: entity.SeverityWarning},
		{RowIndex: 1, Field: "email", Severity: entity.SeverityWarning},
	}, res.Validations)

	require.NoError(t, EditRow(res, 1, "keywords", "dentist"))
	assert.Equal(t, []string{"dentist", "business solutions"}, res.Rows[1].Keywords)

	assert.ErrorIs(t, EditRow(res, 5, "email", "x"), ErrRowOutOfRange)
	assert.True(t, IsDomainError(EditRow(res, 0, "status", "lost")))
	assert.True(t, IsDomainError(EditRow(res, 0, "unknown", "x")))
}

func TestApplyCampaign(t *testing.T) {
	rows := make([]entity.ImportRow, 3)

	assert.Equal(t, 2, ApplyCampaign(rows, " Black Friday ", []int{0, 2, 9}))
	assert.Equal(t, "Black Friday", rows[0].CampaignName)
	assert.Equal(t, "", rows[1].CampaignName)

	assert.Equal(t, 3, ApplyCampaign(rows, "Q4", nil))
	for _, r := range rows {
		assert.Equal(t, "Q4", r.CampaignName)
	}
}
