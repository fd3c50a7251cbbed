package entities

// Record is implemented by every administrable entity type.
// A RecordID of zero marks a record that has not been persisted yet.
type Record interface {
	RecordID() int64
	RecordKind() string
	DisplayName() string
	// SearchableText returns the values the listing filter is matched against.
	SearchableText() []string
}

// RecordPtr lets generic stores assign the identifier of a freshly inserted record.
type RecordPtr[E any] interface {
	*E
	Record
	SetRecordID(id int64)
}

// IsNew reports whether the record has never been stored.
func IsNew(r Record) bool {
	return r.RecordID() == 0
}
