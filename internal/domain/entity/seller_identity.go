package entity

import "time"

// SellerIdentity datos fiscales del vendedor de la instalación (uno solo).
type SellerIdentity struct {
	NTNCNIC      string
	BusinessName string
	Province     string
	Address      string
	UpdatedAt    time.Time
}
