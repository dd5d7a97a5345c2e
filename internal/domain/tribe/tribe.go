package tribe

import "strings"

// Tribe is one of the four fixed factions a pet belongs to permanently.
type Tribe string

const (
	FOFO  Tribe = "FOFO"
	CAOS  Tribe = "CAOS"
	CHAD  Tribe = "CHAD"
	DEGEN Tribe = "DEGEN"
)

func All() []Tribe {
	return []Tribe{FOFO, CAOS, CHAD, DEGEN}
}

// Parse accepts the canonical names plus the legacy "CRINGE" alias for DEGEN.
func Parse(s string) (Tribe, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FOFO":
		return FOFO, true
	case "CAOS":
		return CAOS, true
	case "CHAD":
		return CHAD, true
	case "DEGEN", "CRINGE":
		return DEGEN, true
	default:
		return "", false
	}
}

// MultiplierBps is the tribe factor applied to staking power, in basis points.
func (t Tribe) MultiplierBps() int64 {
	switch t {
	case FOFO:
		return 10000
	case CAOS:
		return 10500
	case CHAD:
		return 11000
	case DEGEN:
		return 12000
	default:
		return 10000
	}
}

// Guild is the shared per-tribe aggregate: treasury only ever grows,
// power and member counts are recomputed from active stakes on demand.
type Guild struct {
	Tribe       Tribe
	Treasury    int64
	TotalPower  int64
	MemberCount int
	Version     int64
}
