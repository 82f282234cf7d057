package models

// Requests for the card HTTP endpoints.

type CardSearchRequest struct {
	Q string `query:"q" json:"q" validate:"max=100"`
}

type PriceRequest struct {
	Name string `query:"name" json:"name" validate:"required,max=200"`
}
