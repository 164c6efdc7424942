package model

// Envelope is the response shape shared by the listing and search endpoints.
type Envelope struct {
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
	Total int64    `json:"total"`
	Data  []Recipe `json:"data"`
}
