// Package model contains domain entities and DTOs used across layers.
// I keep it lean: data shapes plus the status tables that define workflows.
package model

import "time"

// Property is a listing offered for sale or rent.
type Property struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       int64          `json:"price"` // minor units of Currency
	Currency    string         `json:"currency"`
	City        string         `json:"city"`
	Address     string         `json:"address"`
	AreaSqm     int            `json:"area_sqm"`
	Rooms       int            `json:"rooms"`
	Type        PropertyType   `json:"type"`
	Deal        DealType       `json:"deal"`
	Status      PropertyStatus `json:"status"`
	BrokerID    *int64         `json:"broker_id,omitempty"`
	ImageURLs   []string       `json:"image_urls"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// PropertyFilter narrows property listings. Zero values do not filter.
type PropertyFilter struct {
	City     string
	Type     PropertyType
	Deal     DealType
	Status   PropertyStatus
	BrokerID int64
	MinPrice int64
	MaxPrice int64
}

// Broker is an agent listed in the public directory.
type Broker struct {
	ID        int64        `json:"id"`
	FullName  string       `json:"full_name"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Agency    string       `json:"agency"`
	AvatarURL string       `json:"avatar_url,omitempty"`
	Status    BrokerStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// News is an article of the marketing site.
type News struct {
	ID          int64      `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	CoverURL    string     `json:"cover_url,omitempty"`
	Status      NewsStatus `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ExchangeRate is the price of one unit of Currency in the base currency.
type ExchangeRate struct {
	ID        int64     `json:"id"`
	Currency  string    `json:"currency"`
	Rate      float64   `json:"rate"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
