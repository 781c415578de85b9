package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var speciesTitle = cases.Title(language.English)

// NormalizeSpecies canonicalizes a reported species name so "sloth bear",
// "SLOTH BEAR", and " Sloth  Bear " all store as "Sloth Bear".
func NormalizeSpecies(species string) string {
	fields := strings.Fields(species)
	if len(fields) == 0 {
		return ""
	}
	return speciesTitle.String(strings.Join(fields, " "))
}
