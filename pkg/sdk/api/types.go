package api

import "time"

// Name is one ENS name as the marketplace backend reports it.
// Monetary fields are wei amounts encoded as decimal strings; they can exceed
// int64 so they stay strings until someone needs math on them.
type Name struct {
	TokenID          string     `json:"token_id"`
	Name             string     `json:"name"`
	Owner            *string    `json:"owner"`
	ExpiryDate       *time.Time `json:"expiry_date"`
	RegistrationDate *time.Time `json:"registration_date"`

	ListingPriceWei  *string `json:"listing_price_wei"`
	HighestOfferWei  *string `json:"highest_offer_wei"`
	LastSalePriceWei *string `json:"last_sale_price"`

	HasNumbers bool `json:"has_numbers"`
	HasEmoji   bool `json:"has_emoji"`

	IsListed       bool `json:"is_listed"`
	IsPremium      bool `json:"is_premium"`
	IsGracePeriod  bool `json:"is_grace_period"`
	IsUnregistered bool `json:"is_unregistered,omitempty"`
}

// Pagination is the backend's page metadata block.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// APIError is the error block of the response envelope.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SearchData carries the result list. Depending on the endpoint variant the
// backend populates either "names" or "results"; callers must accept both.
type SearchData struct {
	Names      []Name     `json:"names"`
	Results    []Name     `json:"results"`
	Pagination Pagination `json:"pagination"`
}

// SearchResponse is the full response envelope of the search endpoint.
type SearchResponse struct {
	Data    SearchData `json:"data"`
	Success bool       `json:"success"`
	Error   *APIError  `json:"error,omitempty"`
}

// Items returns whichever of names/results is populated, preferring names.
func (r *SearchResponse) Items() []Name {
	if len(r.Data.Names) > 0 {
		return r.Data.Names
	}
	return r.Data.Results
}
