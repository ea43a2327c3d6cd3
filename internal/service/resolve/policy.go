package resolve

import "github.com/mexxdev/qrdirect/internal/domain"

// Credentials carries what the visitor presented with the scan. PINSupplied
// distinguishes "no PIN at all" from "an empty PIN was typed": the former gets
// the PIN prompt, the latter is a failed attempt.
type Credentials struct {
	PIN         string
	PINSupplied bool
}

type decision int

const (
	decisionAllow decision = iota
	decisionNeedPin
	decisionWrongPin
	decisionDeny
)

// policyResult is the verdict of the pure gate check. Expire is set when the
// deny was caused by a consumed scan limit on a still-ACTIVE record, so the
// caller can flip the stored status lazily.
type policyResult struct {
	decision decision
	expire   bool
}

// evaluatePolicy runs the access gates against an in-memory snapshot of the
// record, in fixed order: status, then scan limit, then PIN. It performs no
// I/O; the authoritative limit check happens later in the store.
//
// Contact records only pass the status gate: limits and PINs never apply to
// them, and a supplied PIN is ignored rather than rejected.
func evaluatePolicy(rec domain.Record, creds Credentials) policyResult {
	if rec.Meta().Status != domain.RecordStatusActive {
		return policyResult{decision: decisionDeny}
	}

	link, ok := rec.(*domain.LinkRecord)
	if !ok {
		return policyResult{decision: decisionAllow}
	}

	if link.LimitReached() {
		return policyResult{decision: decisionDeny, expire: true}
	}

	if link.Protected() {
		if !creds.PINSupplied {
			return policyResult{decision: decisionNeedPin}
		}
		if !verifyPIN(creds.PIN, *link.PINHash) {
			return policyResult{decision: decisionWrongPin}
		}
	}

	return policyResult{decision: decisionAllow}
}
