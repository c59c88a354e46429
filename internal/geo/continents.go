package geo

import (
	"strings"

	"github.com/sells-group/emissions-cli/internal/model"
)

// Continent codes used by the ISO country → continent table.
const (
	CodeAfrica       = "AF"
	CodeAntarctica   = "AN"
	CodeAsia         = "AS"
	CodeEurope       = "EU"
	CodeNorthAmerica = "NA"
	CodeOceania      = "OC"
	CodeSouthAmerica = "SA"
)

// continentMembers lists ISO 3166-1 alpha-2 codes per continent code.
var continentMembers = map[string]string{
	CodeAfrica: "AO BF BI BJ BW CD CF CG CI CM CV DJ DZ EG EH ER ET GA GH GM GN GQ GW IO KE KM LR LS LY MA " +
		"MG ML MR MU MW MZ NA NE NG RE RW SC SD SH SL SN SO SS ST SZ TD TF TG TN TZ UG YT ZA ZM ZW",
	CodeAntarctica: "AQ",
	CodeAsia: "AE AF AM AZ BD BH BN BT CN CY GE HK ID IL IN IQ IR JO JP KG KH KP KR KW KZ LA LB LK MM MN " +
		"MO MV MY NP OM PH PK PS QA SA SG SY TH TJ TL TM TR TW UZ VN YE",
	CodeEurope: "AD AL AT AX BA BE BG BY CH CZ DE DK EE ES FI FO FR GB GG GI GR HR HU IE IM IS IT JE LI LT " +
		"LU LV MC MD ME MK MT NL NO PL PT RO RS RU SE SI SJ SK SM UA VA XK",
	CodeNorthAmerica: "AG AI AW BB BL BM BQ BS BZ CA CR CU CW DM DO GD GL GP GT HN HT JM KN KY LC MF MQ MS MX " +
		"NI PA PM PR SV SX TC TT US VC VG VI",
	CodeOceania:      "AS AU CC CK CX FJ FM GU HM KI MH MP NC NF NR NU NZ PF PG PN PW SB TK TO TV UM VU WF WS",
	CodeSouthAmerica: "AR BO BR BV CL CO EC FK GF GS GY PE PY SR UY VE",
}

// DefaultCountryContinents returns a fresh alpha-2 → continent code table.
func DefaultCountryContinents() map[string]string {
	m := make(map[string]string, 256)
	for code, members := range continentMembers {
		for _, alpha2 := range strings.Fields(members) {
			m[alpha2] = code
		}
	}
	return m
}

// DefaultContinentLabels returns the fixed continent code → label table.
// Antarctica has no label and classifies as Other.
func DefaultContinentLabels() map[string]model.Continent {
	return map[string]model.Continent{
		CodeAfrica:       model.Africa,
		CodeAsia:         model.Asia,
		CodeEurope:       model.Europe,
		CodeNorthAmerica: model.NorthAmerica,
		CodeSouthAmerica: model.SouthAmerica,
		CodeOceania:      model.Oceania,
	}
}
