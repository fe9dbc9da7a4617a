package dto

// ProductResponse describes a gold listing.
type ProductResponse struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Purity float64 `json:"purity"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Price  int64   `json:"price"`
}
