package geo

import "github.com/sells-group/emissions-cli/internal/model"

// DefaultOverrides returns the manual country → continent table consulted before the ISO lookup.
//
// It covers historical regions, OWID regional and income-group rollups, Global Carbon
// Project and Jones et al. artifacts, and names the ISO lookup resolves wrongly or not at all.
// Rollups map to Other so they never land in a real continent.
func DefaultOverrides() map[string]model.Continent {
	return map[string]model.Continent{
		// Historical regions and GCP country artifacts.
		"USSR":                           model.Europe,
		"Czechoslovakia":                 model.Europe,
		"Yugoslavia":                     model.Europe,
		"Kosovo":                         model.Europe,
		"Ryukyu Islands":                 model.Asia,
		"Ryukyu Islands (GCP)":           model.Asia,
		"Kuwaiti Oil Fires":              model.Asia,
		"Kuwaiti Oil Fires (GCP)":        model.Asia,
		"Panama Canal Zone":              model.NorthAmerica,
		"Panama Canal Zone (GCP)":        model.NorthAmerica,
		"St. Kitts-Nevis-Anguilla":       model.NorthAmerica,
		"St. Kitts-Nevis-Anguilla (GCP)": model.NorthAmerica,
		"Leeward Islands":                model.NorthAmerica,
		"Leeward Islands (GCP)":          model.NorthAmerica,
		"Netherlands Antilles":           model.NorthAmerica,
		"French Equatorial Africa":       model.Africa,
		"French Equatorial Africa (GCP)": model.Africa,
		"French West Africa":             model.Africa,
		"French West Africa (GCP)":       model.Africa,

		// Names the ISO lookup misreads.
		"Micronesia (country)":            model.Oceania,
		"East Timor":                      model.Asia,
		"Congo":                           model.Africa,
		"Democratic Republic of Congo":    model.Africa,
		"Cape Verde":                      model.Africa,
		"Saint Helena":                    model.Africa,
		"Curacao":                         model.NorthAmerica,
		"Bonaire Sint Eustatius and Saba": model.NorthAmerica,
		"Sint Maarten (Dutch part)":       model.NorthAmerica,
		"Georgia":                         model.Asia,

		// Regional, income-group and transport rollups.
		"World":                                    model.Other,
		"Africa":                                   model.Other,
		"Asia":                                     model.Other,
		"Europe":                                   model.Other,
		"North America":                            model.Other,
		"South America":                            model.Other,
		"Oceania":                                  model.Other,
		"Antarctica":                               model.Other,
		"European Union (27)":                      model.Other,
		"European Union (28)":                      model.Other,
		"Asia (excl. China and India)":             model.Other,
		"Europe (excl. EU-27)":                     model.Other,
		"Europe (excl. EU-28)":                     model.Other,
		"North America (excl. USA)":                model.Other,
		"High-income countries":                    model.Other,
		"Upper-middle-income countries":            model.Other,
		"Lower-middle-income countries":            model.Other,
		"Low-income countries":                     model.Other,
		"International aviation":                   model.Other,
		"International shipping":                   model.Other,
		"International transport":                  model.Other,
		"Africa (GCP)":                             model.Other,
		"Asia (GCP)":                               model.Other,
		"Central America (GCP)":                    model.Other,
		"Europe (GCP)":                             model.Other,
		"Middle East (GCP)":                        model.Other,
		"North America (GCP)":                      model.Other,
		"Oceania (GCP)":                            model.Other,
		"South America (GCP)":                      model.Other,
		"OECD (GCP)":                               model.Other,
		"Non-OECD (GCP)":                           model.Other,
		"OECD (Jones et al.)":                      model.Other,
		"Non-OECD (Jones et al.)":                  model.Other,
		"Least developed countries (Jones et al.)": model.Other,
	}
}
