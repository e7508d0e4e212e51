package domain

// Address is a saved shipping address on the user's account.
type Address struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Details string `json:"details"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
}

// AddressInput is the body for saving a new address.
type AddressInput struct {
	Name    string `json:"name" validate:"required,min=2,max=50"`
	Details string `json:"details" validate:"required,min=3,max=200"`
	Phone   string `json:"phone" validate:"required,eg_phone"`
	City    string `json:"city" validate:"required,min=2,max=50"`
}

// ShippingAddress is the address attached to an order.
type ShippingAddress struct {
	Details string `json:"details" validate:"required,min=3,max=200"`
	Phone   string `json:"phone" validate:"required,eg_phone"`
	City    string `json:"city" validate:"required,min=2,max=50"`
}
