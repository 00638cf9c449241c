package booking

type CreateBookingReq struct {
	ItemID    string `json:"item_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type DecisionReq struct {
	Decision string `json:"decision" validate:"required,oneof=APPROVE DECLINE"`
}
