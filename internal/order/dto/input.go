package dto

type CheckoutAddress struct {
	Street string `json:"street"`
	City   string `json:"city" binding:"required"`
}

type CheckoutInput struct {
	Name          string          `json:"name" binding:"required"`
	Email         string          `json:"email" binding:"required,email"`
	Address       CheckoutAddress `json:"address" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

type OrderFilters struct {
	Status   string `form:"status" json:"status"`
	Page     int    `form:"page" json:"page"`
	PageSize int    `form:"page_size" json:"page_size"`
}
