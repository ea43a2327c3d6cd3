package resolve

// Outcome is the closed set of results a resolution can produce. Raw internal
// errors never cross this boundary; every failure collapses into one of these.
type Outcome interface {
	sealed()
}

// Redirect sends the visitor to a destination URL (primary or fallback).
type Redirect struct {
	URL string
}

// ContactPayload carries a synthesized vCard document for download.
type ContactPayload struct {
	Slug string
	Card string
}

// NeedPin asks the visitor for the link's PIN without any error context.
type NeedPin struct{}

// WrongPin asks again after a failed attempt, with a user-facing message that
// never echoes the supplied PIN.
type WrongPin struct {
	Message string
}

// Unavailable is the uniform terminal denial: unknown slug, archived or
// expired record, consumed scan limit, dead target with no fallbacks, or an
// unreachable store all look identical to the visitor.
type Unavailable struct{}

func (Redirect) sealed()       {}
func (ContactPayload) sealed() {}
func (NeedPin) sealed()        {}
func (WrongPin) sealed()       {}
func (Unavailable) sealed()    {}
