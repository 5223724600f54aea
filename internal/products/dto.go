package products

// ProductForm carries the JSON payload for create and update.
type ProductForm struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description"`
	Code        string `json:"code" validate:"required,max=50"`
	Price       string `json:"price" validate:"required"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
	Category    string `json:"category" validate:"required,max=100"`
	Supplier    string `json:"supplier" validate:"max=200"`
}

// QuantityForm carries a direct quantity replacement.
type QuantityForm struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}
