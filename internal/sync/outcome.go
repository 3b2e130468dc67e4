package sync

// Outcome reports the result of an operation that creates a primary record
// and then attempts a best-effort contact association. The operation's error
// return covers the primary record; Outcome lets callers distinguish full
// success from partial success without parsing logs.
type Outcome struct {
	// ID is the created record's HubSpot ID.
	ID string `json:"id"`
	// AssociationOK is true when no association was requested or the
	// requested association succeeded.
	AssociationOK bool `json:"association_ok"`
}
