package session

// Ledger is the match history: an append-only sequence of game records in
// submission order, one per submitted game. Records are never reordered or
// deleted except by a full match reset. The only mutable part of a record is
// the Trades tail of the most recently appended record, which stays open
// until the next game is submitted.
type Ledger struct {
	records []*GameRecord
}

// NewLedger creates an empty match history ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append adds a completed game record to the history.
func (l *Ledger) Append(record *GameRecord) {
	l.records = append(l.records, record)
}

// Latest returns the most recently appended record, or nil when the history
// is empty. Trades executed between games attach to this record.
func (l *Ledger) Latest() *GameRecord {
	if len(l.records) == 0 {
		return nil
	}
	return l.records[len(l.records)-1]
}

// All returns the records in submission order. The returned slice is a copy;
// the records themselves are shared.
func (l *Ledger) All() []*GameRecord {
	out := make([]*GameRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of recorded games.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Clear drops the entire history. Only a full match reset calls this.
func (l *Ledger) Clear() {
	l.records = nil
}
