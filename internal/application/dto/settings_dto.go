package dto

import "time"

// SellerIdentityRequest body de PUT /api/settings/seller.
type SellerIdentityRequest struct {
	NTNCNIC      string `json:"ntn_cnic" validate:"required,ntncnic"`
	BusinessName string `json:"business_name" validate:"required"`
	Province     string `json:"province" validate:"required"`
	Address      string `json:"address" validate:"required"`
}

// SellerIdentityResponse identidad del vendedor configurada.
type SellerIdentityResponse struct {
	NTNCNIC      string    `json:"ntn_cnic"`
	BusinessName string    `json:"business_name"`
	Province     string    `json:"province"`
	Address      string    `json:"address"`
	UpdatedAt    time.Time `json:"updated_at"`
}
