// Package transform normalizes country names for the sovereign-country views.
package transform

import "strings"

// CountryAliases maps OWID country names to their canonical sovereign-state spelling.
var CountryAliases = map[string]string{
	"United States":                "United States of America",
	"Democratic Republic of Congo": "Dem. Rep. Congo",
	"Central African Republic":     "Central African Rep.",
	"Dominican Republic":           "Dominican Rep.",
	"Bosnia and Herzegovina":       "Bosnia and Herz.",
	"South Sudan":                  "S. Sudan",
	"Equatorial Guinea":            "Eq. Guinea",
	"Solomon Islands":              "Solomon Is.",
	"Eswatini":                     "eSwatini",
	"Cote d'Ivoire":                "Côte d'Ivoire",
}

// sovereignStates is the canonical sovereign-state name set (Natural Earth short names).
var sovereignStates = strings.Split(strings.Join([]string{
	"Afghanistan|Albania|Algeria|Angola|Argentina|Armenia|Australia|Austria|Azerbaijan",
	"Bahamas|Bangladesh|Belarus|Belgium|Belize|Benin|Bhutan|Bolivia|Bosnia and Herz.|Botswana",
	"Brazil|Brunei|Bulgaria|Burkina Faso|Burundi|Cambodia|Cameroon|Canada|Central African Rep.",
	"Chad|Chile|China|Colombia|Congo|Costa Rica|Côte d'Ivoire|Croatia|Cuba|Cyprus|Czechia",
	"Dem. Rep. Congo|Denmark|Djibouti|Dominican Rep.|Ecuador|Egypt|El Salvador|Eq. Guinea",
	"Eritrea|Estonia|eSwatini|Ethiopia|Fiji|Finland|France|Gabon|Gambia|Georgia|Germany|Ghana",
	"Greece|Guatemala|Guinea|Guinea-Bissau|Guyana|Haiti|Honduras|Hungary|Iceland|India",
	"Indonesia|Iran|Iraq|Ireland|Israel|Italy|Jamaica|Japan|Jordan|Kazakhstan|Kenya|Kosovo",
	"Kuwait|Kyrgyzstan|Laos|Latvia|Lebanon|Lesotho|Liberia|Libya|Lithuania|Luxembourg",
	"Madagascar|Malawi|Malaysia|Mali|Mauritania|Mexico|Moldova|Mongolia|Montenegro|Morocco",
	"Mozambique|Myanmar|Namibia|Nepal|Netherlands|New Zealand|Nicaragua|Niger|Nigeria",
	"North Korea|North Macedonia|Norway|Oman|Pakistan|Panama|Papua New Guinea|Paraguay|Peru",
	"Philippines|Poland|Portugal|Qatar|Romania|Russia|Rwanda|S. Sudan|Saudi Arabia|Senegal",
	"Serbia|Sierra Leone|Slovakia|Slovenia|Solomon Is.|Somalia|South Africa|South Korea|Spain",
	"Sri Lanka|Sudan|Suriname|Sweden|Switzerland|Syria|Taiwan|Tajikistan|Tanzania|Thailand",
	"Timor-Leste|Togo|Trinidad and Tobago|Tunisia|Turkey|Turkmenistan|Uganda|Ukraine",
	"United Arab Emirates|United Kingdom|United States of America|Uruguay|Uzbekistan|Vanuatu",
	"Venezuela|Vietnam|Yemen|Zambia|Zimbabwe",
}, "|"), "|")

// CountryNames normalizes names with an alias table and checks them against a sovereign set.
// The zero value has no aliases and accepts no names; use NewCountryNames.
type CountryNames struct {
	aliases   map[string]string
	sovereign map[string]bool
}

// NewCountryNames builds a CountryNames from the default alias table and sovereign set.
func NewCountryNames() CountryNames {
	aliases := make(map[string]string, len(CountryAliases))
	for k, v := range CountryAliases {
		aliases[k] = v
	}
	sovereign := make(map[string]bool, len(sovereignStates))
	for _, s := range sovereignStates {
		sovereign[s] = true
	}
	return CountryNames{aliases: aliases, sovereign: sovereign}
}

// Normalize applies the alias table to name.
func (n CountryNames) Normalize(name string) string {
	if alias, ok := n.aliases[name]; ok {
		return alias
	}
	return name
}

// IsSovereign reports whether the normalized name is a sovereign state.
func (n CountryNames) IsSovereign(name string) bool {
	return n.sovereign[n.Normalize(name)]
}

// SovereignStates returns the canonical names in the sovereign set.
func SovereignStates() []string {
	return append([]string(nil), sovereignStates...)
}
