package dto

type SweepRequest struct {
	ReferenceDate string `json:"reference_date" validate:"omitempty,datetime=2006-01-02"`
}

type SweepResponse struct {
	TargetDate string `json:"target_date"`
	Found      int    `json:"found"`
	Sent       int    `json:"sent"`
	Failed     int    `json:"failed"`
}
