package models

// IngestionResult summarizes one ingestion run for a single account scope.
type IngestionResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Processed returns the number of messages that reached a terminal outcome.
func (r IngestionResult) Processed() int {
	return r.Created + r.Skipped + r.Failed
}
