package dto

// BestOptionsRequest is the inbound order. Pointer fields distinguish
// missing values from zero values during validation.
type BestOptionsRequest struct {
	City    string    `json:"city"`
	SKUs    []SKUItem `json:"skus"`
	Address *Address  `json:"address"`
}

type SKUItem struct {
	SKU          *string `json:"sku"`
	CountDesired *int    `json:"count_desired"`
}

type Address struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
