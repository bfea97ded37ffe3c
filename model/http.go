package model

type PartSummary struct {
	Name                string         `json:"name"`
	Summary             string         `json:"summary"`
	RepetitionInContext map[int]string `json:"repetition_in_context"`
}

type AnalysisResponse struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	GeneralSummary string        `json:"general_summary"`
	Parts          []PartSummary `json:"parts"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
