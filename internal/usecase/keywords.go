package usecase

import (
	"encoding/json"
	"sort"
	"strings"
	"unicode"
)

const (
	defaultKeywordPrimary   = "general services"
	defaultKeywordSecondary = "business solutions"
	maxFallbackKeywords     = 2
)

type industryKeywords struct {
	industry string
	keywords [2]string
}

// industryTable usa o nome de indústria em minúsculo como chave.
var industryTable = []industryKeywords{
	{"accounting", [2]string{"accounting services", "tax preparation"}},
	{"advertising services", [2]string{"advertising agency", "media buying"}},
	{"architecture & planning", [2]string{"architecture firm", "urban planning"}},
	{"automotive", [2]string{"auto repair", "car dealership"}},
	{"bakery", [2]string{"bakery", "fresh bread"}},
	{"banking", [2]string{"banking services", "business loans"}},
	{"beauty salon", [2]string{"beauty salon", "hair styling"}},
	{"biotechnology", [2]string{"biotech research", "life sciences"}},
	{"civil engineering", [2]string{"civil engineering", "infrastructure projects"}},
	{"computer software", [2]string{"software development", "saas solutions"}},
	{"construction", [2]string{"construction company", "general contractor"}},
	{"consumer services", [2]string{"consumer services", "home services"}},
	{"cosmetics", [2]string{"cosmetics brand", "skincare products"}},
	{"dental", [2]string{"dental clinic", "dentist"}},
	{"design", [2]string{"design studio", "creative services"}},
	{"e-learning", [2]string{"online courses", "elearning platform"}},
	{"education management", [2]string{"education services", "school management"}},
	{"electrical/electronic manufacturing", [2]string{"electronics manufacturing", "electrical components"}},
	{"entertainment", [2]string{"entertainment company", "live events"}},
	{"environmental services", [2]string{"environmental consulting", "waste management"}},
	{"events services", [2]string{"event planning", "event management"}},
	{"financial services", [2]string{"financial advisor", "wealth management"}},
	{"fitness", [2]string{"gym", "personal training"}},
	{"food & beverages", [2]string{"food and beverage", "catering services"}},
	{"furniture", [2]string{"furniture store", "custom furniture"}},
	{"government administration", [2]string{"public administration", "government services"}},
	{"graphic design", [2]string{"graphic design", "branding agency"}},
	{"health, wellness & fitness", [2]string{"wellness center", "fitness studio"}},
	{"higher education", [2]string{"university", "higher education"}},
	{"hospital & health care", [2]string{"healthcare provider", "medical clinic"}},
	{"hospitality", [2]string{"hotel", "hospitality services"}},
	{"human resources", [2]string{"hr consulting", "recruitment services"}},
	{"import & export", [2]string{"import export", "international trade"}},
	{"industrial automation", [2]string{"industrial automation", "process control"}},
	{"information technology & services", [2]string{"it services", "managed it"}},
	{"insurance", [2]string{"insurance agency", "insurance broker"}},
	{"internet", [2]string{"internet services", "digital platform"}},
	{"investment management", [2]string{"investment firm", "asset management"}},
	{"law practice", [2]string{"law firm", "attorney"}},
	{"legal services", [2]string{"legal services", "legal consulting"}},
	{"logistics & supply chain", [2]string{"logistics company", "supply chain management"}},
	{"machinery", [2]string{"industrial machinery", "equipment supplier"}},
	{"management consulting", [2]string{"management consulting", "business strategy"}},
	{"marketing & advertising", [2]string{"marketing agency", "digital marketing"}},
	{"mechanical or industrial engineering", [2]string{"mechanical engineering", "industrial engineering"}},
	{"medical devices", [2]string{"medical devices", "medical equipment"}},
	{"medical practice", [2]string{"medical practice", "physician"}},
	{"mining & metals", [2]string{"mining company", "metal processing"}},
	{"nonprofit organization management", [2]string{"nonprofit", "charity organization"}},
	{"oil & energy", [2]string{"energy company", "oil and gas"}},
	{"pharmaceuticals", [2]string{"pharmaceutical company", "pharmacy"}},
	{"photography", [2]string{"photography studio", "photographer"}},
	{"real estate", [2]string{"real estate agency", "property management"}},
	{"renewables & environment", [2]string{"solar energy", "renewable energy"}},
	{"restaurants", [2]string{"restaurant", "food service"}},
	{"retail", [2]string{"retail store", "ecommerce"}},
	{"security & investigations", [2]string{"security services", "private investigation"}},
	{"sports", [2]string{"sports club", "sports equipment"}},
	{"staffing & recruiting", [2]string{"staffing agency", "recruiting firm"}},
	{"telecommunications", [2]string{"telecom services", "internet provider"}},
	{"transportation/trucking/railroad", [2]string{"trucking company", "freight transportation"}},
	{"travel & tourism", [2]string{"travel agency", "tour operator"}},
	{"veterinary", [2]string{"veterinary clinic", "pet care"}},
	{"wholesale", [2]string{"wholesale distributor", "bulk supplier"}},
}

// containmentOrder testa as indústrias mais longas primeiro na busca por substring.
var containmentOrder = func() []industryKeywords {
	out := append([]industryKeywords(nil), industryTable...)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].industry) > len(out[j].industry)
	})
	return out
}()

func defaultKeywords() []string {
	return []string{defaultKeywordPrimary, defaultKeywordSecondary}
}

// ParseKeywords interpreta a coluna keywords de uma planilha tratada.
// Aceita array JSON (inclusive com aspas simples); senão divide por vírgula e fica com os dois primeiros.
func ParseKeywords(raw string) []string {
	s := Sanitize(raw)
	if s == "" {
		return defaultKeywords()
	}

	if parsed, ok := parseJSONKeywords(s); ok {
		return padKeywords(parsed)
	}

	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', '"', '\'':
			return -1
		}
		return r
	}, s)

	var kws []string
	for _, tok := range strings.Split(cleaned, ",") {
		if tok = Sanitize(tok); tok != "" {
			kws = append(kws, tok)
		}
		if len(kws) == maxFallbackKeywords {
			break
		}
	}
	return padKeywords(kws)
}

func parseJSONKeywords(s string) ([]string, bool) {
	if !strings.HasPrefix(s, "[") {
		return nil, false
	}

	var list []string
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		if err := json.Unmarshal([]byte(strings.ReplaceAll(s, "'", `"`)), &list); err != nil {
			return nil, false
		}
	}

	out := make([]string, 0, len(list))
	for _, k := range list {
		if k = Sanitize(k); k != "" {
			out = append(out, k)
		}
	}
	return out, true
}

func padKeywords(kws []string) []string {
	switch len(kws) {
	case 0:
		return defaultKeywords()
	case 1:
		return []string{kws[0], defaultKeywordSecondary}
	}
	return kws
}

// KeywordsForIndustry devolve o par de keywords de uma indústria de planilha bruta.
func KeywordsForIndustry(industry string) []string {
	ind := strings.ToLower(Sanitize(industry))
	if ind == "" {
		return defaultKeywords()
	}

	for _, e := range industryTable {
		if e.industry == ind {
			return []string{e.keywords[0], e.keywords[1]}
		}
	}
	for _, e := range containmentOrder {
		if strings.Contains(ind, e.industry) || strings.Contains(e.industry, ind) {
			return []string{e.keywords[0], e.keywords[1]}
		}
	}

	words := strings.FieldsFunc(ind, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	switch len(words) {
	case 0:
		return defaultKeywords()
	case 1:
		return []string{words[0] + " services", words[0] + " solutions"}
	}
	return []string{words[0] + " services", words[1] + " solutions"}
}
