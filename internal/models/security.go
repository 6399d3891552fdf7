package models

// SecurityEntry represents one row of the security reference table.
// Entries are loaded once at startup and never mutated afterwards.
type SecurityEntry struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// Label returns the narration label for the security: the display name when
// present, otherwise the name, otherwise the raw symbol.
func (e SecurityEntry) Label() string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	if e.Name != "" {
		return e.Name
	}
	return e.Symbol
}
