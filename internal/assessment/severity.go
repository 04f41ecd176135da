package assessment

import "strings"

// Static offence-code lookup tables. Both the scoring rules and the temporal
// analyser read these so the classifications cannot drift apart.

// seriousOffenceCodes is the canonical serious-offence set: drink driving
// (DR), drug driving (DG), dangerous driving (DD40-DD90) and causing death
// by careless driving (CD40-CD90). Any endorsement carrying one of these
// codes triggers the flat serious-offence contribution and classifies as
// severity 4.
var seriousOffenceCodes = map[string]struct{}{
	"DR10": {}, "DR20": {}, "DR30": {}, "DR31": {}, "DR40": {},
	"DR50": {}, "DR60": {}, "DR61": {}, "DR70": {}, "DR80": {}, "DR90": {},
	"DG10": {}, "DG40": {}, "DG60": {},
	"DD40": {}, "DD60": {}, "DD80": {}, "DD90": {},
	"CD40": {}, "CD50": {}, "CD60": {}, "CD80": {}, "CD90": {},
}

// severityOverrides classifies individual codes whose family prefix would
// give the wrong level. CU80 is use of a hand-held phone, not a vehicle
// condition offence.
var severityOverrides = map[string]int{
	"CU80": 2,
}

// severityByPrefix classifies offence families by their two-character code
// prefix. Families not listed default to severity 1.
var severityByPrefix = map[string]int{
	"DR": 4, "DG": 4, "DD": 4,
	"CD": 3, "CU": 3, "IN": 3, "UT": 3,
	"SP": 2, "SB": 2,
}

// offenceFamilyNames maps code prefixes to human-readable offence family
// names used in repeat-offence factors.
var offenceFamilyNames = map[string]string{
	"SP": "speeding",
	"DR": "drink/drug driving",
	"DG": "drug driving",
	"DD": "dangerous driving",
	"CD": "careless driving",
	"IN": "insurance offences",
	"CU": "vehicle condition offences",
	"UT": "unauthorised vehicle taking",
	"BA": "driving while disqualified",
	"LC": "licence offences",
	"MS": "miscellaneous offences",
	"TS": "traffic sign offences",
	"PC": "pedestrian crossing offences",
	"SB": "seatbelt offences",
}

// severityOf classifies an offence code into level 1 (minor) to 4 (serious).
func severityOf(code string) int {
	code = strings.ToUpper(strings.TrimSpace(code))
	if level, ok := severityOverrides[code]; ok {
		return level
	}
	if _, ok := seriousOffenceCodes[code]; ok {
		return 4
	}
	if level, ok := severityByPrefix[offencePrefix(code)]; ok {
		return level
	}
	return 1
}

// isSeriousOffence reports membership in the canonical serious-offence set.
func isSeriousOffence(code string) bool {
	_, ok := seriousOffenceCodes[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// offencePrefix returns the two-character family prefix of an offence code.
func offencePrefix(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 2 {
		return code
	}
	return code[:2]
}

// offenceFamilyName resolves a prefix to its display name, falling back to
// the raw prefix for families the table does not know.
func offenceFamilyName(prefix string) string {
	if name, ok := offenceFamilyNames[prefix]; ok {
		return name
	}
	return strings.ToUpper(prefix) + " offences"
}
