package search

// Static lexical tables. All of these are immutable after process start;
// concurrent searches read them without locking.

// Pseudo-country codes accepted wherever an ISO-2 code is expected.
const (
	CodeEU      = "EU"
	CodeHighPay = "HIGH_PAY"
)

type alias struct {
	Name string
	Code string
}

// countryAliases maps free-text country names to canonical codes. Order
// matters: the substring fallback in NormalizeCountry scans entries in
// declaration order and returns the first hit.
var countryAliases = []alias{
	{"deutschland", "DE"}, {"germany", "DE"}, {"deu", "DE"}, {"de", "DE"},
	{"switzerland", "CH"}, {"schweiz", "CH"}, {"suisse", "CH"}, {"svizzera", "CH"}, {"ch", "CH"},
	{"austria", "AT"}, {"österreich", "AT"}, {"at", "AT"},
	{"europe", "EU"}, {"eu", "EU"},
	{"uk", "UK"}, {"gb", "UK"}, {"england", "UK"}, {"united kingdom", "UK"},
	{"usa", "US"}, {"united states", "US"}, {"america", "US"}, {"us", "US"},
	{"spain", "ES"}, {"es", "ES"}, {"france", "FR"}, {"fr", "FR"}, {"italy", "IT"}, {"it", "IT"},
	{"netherlands", "NL"}, {"nl", "NL"}, {"belgium", "BE"}, {"be", "BE"}, {"sweden", "SE"}, {"se", "SE"},
	{"poland", "PL"}, {"colombia", "CO"}, {"mexico", "MX"},
	{"high pay", "HIGH_PAY"}, {"high-pay", "HIGH_PAY"}, {"highpay", "HIGH_PAY"}, {"top pay", "HIGH_PAY"},
}

// countryExact backs the exact (case-insensitive) lookup in NormalizeCountry.
var countryExact = func() map[string]string {
	m := make(map[string]string, len(countryAliases))
	for _, a := range countryAliases {
		m[a.Name] = a.Code
	}
	return m
}()

type synonym struct {
	From string
	To   string
}

// titleSynonyms are matched token-wise in declaration order, one
// left-to-right pass; replacement text is never rewritten again.
var titleSynonyms = []synonym{
	{"software eng", "software engineer"}, {"sw eng", "software engineer"}, {"swe", "software engineer"},
	{"frontend", "front end"}, {"front-end", "front end"}, {"backend", "back end"}, {"back-end", "back end"},
	{"fullstack", "full stack"}, {"full-stack", "full stack"},
	{"pm", "product manager"}, {"prod mgr", "product manager"}, {"product owner", "product manager"},
	{"ds", "data scientist"}, {"mle", "machine learning engineer"}, {"ml", "machine learning"},
	{"devops", "devops"}, {"sre", "site reliability engineer"},
	{"sec eng", "security engineer"}, {"infosec", "security"},
}

// developerTokens in a title query trigger the widened developer match.
var developerTokens = map[string]bool{
	"developer":  true,
	"programmer": true,
	"coder":      true,
}

// DeveloperTerms is the fixed synonym set the widened developer clause
// matches against title/description columns.
var DeveloperTerms = []string{
	"developer", "programmer", "coder", "software developer", "software engineer",
}

// DefaultEUCodes is the representative member set used for the EU
// pseudo-country. Overridable via config; not a complete member list.
var DefaultEUCodes = []string{"DE", "AT", "ES", "FR", "IT", "NL", "BE", "SE", "PL"}

// DefaultHighPayCities drive both the HIGH_PAY filter and its tiered
// ordering (San Francisco, New York, Zurich first, in that order).
var DefaultHighPayCities = []string{"san francisco", "new york", "zurich", "geneva", "london"}

// cityHints map well-known cities to country codes so that a code query
// also matches rows whose location names only the city.
var cityHints = []alias{
	{"zurich", "CH"}, {"geneva", "CH"}, {"basel", "CH"},
	{"berlin", "DE"}, {"munich", "DE"}, {"hamburg", "DE"},
	{"vienna", "AT"},
	{"madrid", "ES"}, {"barcelona", "ES"},
	{"paris", "FR"}, {"amsterdam", "NL"}, {"brussels", "BE"}, {"stockholm", "SE"},
	{"warsaw", "PL"}, {"milan", "IT"}, {"rome", "IT"},
	{"london", "UK"},
	{"new york", "US"}, {"san francisco", "US"}, {"seattle", "US"}, {"austin", "US"},
	{"bogota", "CO"}, {"mexico city", "MX"},
}

// AliasNamesFor returns the alias names that map to code, in declaration
// order, skipping bare 2-letter entries (those are covered by the
// separator-token patterns instead).
func AliasNamesFor(code string) []string {
	var names []string
	for _, a := range countryAliases {
		if a.Code == code && len(a.Name) > 2 {
			names = append(names, a.Name)
		}
	}
	return names
}

// CityHintsFor returns the city names known to sit inside code.
func CityHintsFor(code string) []string {
	var names []string
	for _, h := range cityHints {
		if h.Code == code {
			names = append(names, h.Name)
		}
	}
	return names
}
