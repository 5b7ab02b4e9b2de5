package domain

// PantryRecord represents an existing inventory entry. Records are read-only
// input to reconciliation; this service never creates or mutates them.
type PantryRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
