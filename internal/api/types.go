package api

import "github.com/pageza/recipe-explorer/backend/internal/query"

// pageRequest holds the raw paging parameters. They stay strings so that
// malformed values fall back to defaults instead of failing the request.
type pageRequest struct {
	Page  string `schema:"page"`
	Limit string `schema:"limit"`
}

// searchRequest is the query string accepted by the search endpoint.
type searchRequest struct {
	Title     string `schema:"title"`
	Cuisine   string `schema:"cuisine"`
	Rating    string `schema:"rating"`
	TotalTime string `schema:"total_time"`
	Calories  string `schema:"calories"`
	Page      string `schema:"page"`
	Limit     string `schema:"limit"`
}

func (r searchRequest) filters() query.FilterInput {
	return query.FilterInput{
		Title:     r.Title,
		Cuisine:   r.Cuisine,
		Rating:    r.Rating,
		TotalTime: r.TotalTime,
		Calories:  r.Calories,
	}
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	OK bool `json:"ok"`
}
