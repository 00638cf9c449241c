package item

type CreateItemReq struct {
	Title            string   `json:"title" validate:"required"`
	Description      string   `json:"description" validate:"required"`
	Category         string   `json:"category" validate:"required,category"`
	DailyPrice       float64  `json:"daily_price" validate:"required,gt=0"`
	ReplacementValue float64  `json:"replacement_value" validate:"required,gt=0"`
	MinRentDays      int      `json:"min_rent_days" validate:"gte=0"`
	Images           []string `json:"images"`
}

type UpdateItemReq struct {
	Title            *string   `json:"title"`
	Description      *string   `json:"description"`
	Category         *string   `json:"category" validate:"omitempty,category"`
	DailyPrice       *float64  `json:"daily_price" validate:"omitempty,gt=0"`
	ReplacementValue *float64  `json:"replacement_value" validate:"omitempty,gt=0"`
	MinRentDays      *int      `json:"min_rent_days" validate:"omitempty,gte=0"`
	Images           *[]string `json:"images"`
	IsActive         *bool     `json:"is_active"`
}
