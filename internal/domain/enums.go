package domain

// RecordKind discriminates the two record variants. It is fixed for the
// lifetime of a record.
type RecordKind string

const (
	RecordKindLink    RecordKind = "LINK"
	RecordKindContact RecordKind = "CONTACT"
)

func (k RecordKind) String() string { return string(k) }

func (k RecordKind) IsValid() bool {
	switch k {
	case RecordKindLink, RecordKindContact:
		return true
	}
	return false
}

// RecordStatus represents the lifecycle state of a record.
type RecordStatus string

const (
	RecordStatusActive   RecordStatus = "ACTIVE"
	RecordStatusArchived RecordStatus = "ARCHIVED"
	RecordStatusExpired  RecordStatus = "EXPIRED"
)

func (s RecordStatus) String() string { return string(s) }

func (s RecordStatus) IsValid() bool {
	switch s {
	case RecordStatusActive, RecordStatusArchived, RecordStatusExpired:
		return true
	}
	return false
}
