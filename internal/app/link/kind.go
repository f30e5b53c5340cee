package link

// Kind describes one parent entity type that can own attachments. Each
// kind has its own join table; there is no shared polymorphic table.
type Kind struct {
	Name       string
	PathPrefix string
	LinkTable  string
	// RequiresType marks kinds whose attachments must carry a
	// classification before they can be persisted.
	RequiresType bool
}

var (
	KindClaim     = Kind{Name: "claims", PathPrefix: "claims", LinkTable: "claim_attachments", RequiresType: true}
	KindTicket    = Kind{Name: "tickets", PathPrefix: "tickets", LinkTable: "ticket_attachments", RequiresType: true}
	KindLetter    = Kind{Name: "letters", PathPrefix: "letters", LinkTable: "letter_attachments", RequiresType: true}
	KindCourtCase = Kind{Name: "court-cases", PathPrefix: "court-cases", LinkTable: "court_case_attachments", RequiresType: true}
	KindUnit      = Kind{Name: "units", PathPrefix: "units", LinkTable: "unit_attachments", RequiresType: false}
)

var kinds = []Kind{KindClaim, KindTicket, KindLetter, KindCourtCase, KindUnit}

// Kinds returns all parent kinds, used for migrations and route wiring.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// KindByName resolves a URL segment to a parent kind.
func KindByName(name string) (Kind, bool) {
	for _, k := range kinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}
