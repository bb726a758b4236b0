package domain

import "time"

// Product is one shop listing returned by the product search collaborator
type Product struct {
	Name          string   `json:"itemName"`
	Price         int      `json:"itemPrice"`
	URL           string   `json:"itemUrl"`
	AffiliateURL  string   `json:"affiliateUrl"`
	ImageURL      string   `json:"imageUrl"`
	ShopName      string   `json:"shopName"`
	ReviewAverage *float64 `json:"reviewAverage,omitempty"`
	ReviewCount   int      `json:"reviewCount,omitempty"`
}

// CachedProducts is a search result remembered by a ProductCache
type CachedProducts struct {
	Keyword   string
	Products  []Product
	FetchedAt time.Time
}

// PlantProducts pairs a recommended plant with the products found for it.
// Products is empty, never nil, when the lookup failed.
type PlantProducts struct {
	Plant    Plant     `json:"plant"`
	Keyword  string    `json:"keyword"`
	Products []Product `json:"products"`
	Err      error     `json:"-"`
}
