package model

import "InvestTracker/internal/date"

// Account is an investment account held at the backend.
type Account struct {
	AccountID   int64  `json:"account_id"`
	AccountName string `json:"account_name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type AccountCreate struct {
	AccountName string `json:"account_name"`
	Description string `json:"description,omitempty"`
}

type AccountUpdate struct {
	AccountName *string `json:"account_name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Ticker is a tracked stock symbol.
type Ticker struct {
	TickerID     int64  `json:"ticker_id"`
	TickerSymbol string `json:"ticker_symbol"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type TickerCreate struct {
	TickerSymbol string `json:"ticker_symbol"`
}

type TickerUpdate struct {
	TickerSymbol *string `json:"ticker_symbol,omitempty"`
}

// TickerPrice is one price sample of a ticker as stored by the backend.
type TickerPrice struct {
	PriceID   int64     `json:"price_id"`
	TickerID  int64     `json:"ticker_id"`
	Date      date.Date `json:"date"`
	Price     float64   `json:"price"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

type TickerPriceCreate struct {
	TickerID int64     `json:"ticker_id"`
	Date     date.Date `json:"date"`
	Price    float64   `json:"price"`
}

type TickerPriceUpdate struct {
	TickerID *int64     `json:"ticker_id,omitempty"`
	Date     *date.Date `json:"date,omitempty"`
	Price    *float64   `json:"price,omitempty"`
}

// OwnershipStatus qualifies a holding.
type OwnershipStatus string

const (
	Owned    OwnershipStatus = "Owned"
	Unowned  OwnershipStatus = "Unowned"
	Unvested OwnershipStatus = "Unvested"
)

// AccountHolding is a dated position of an account in a ticker.
type AccountHolding struct {
	HoldingID      int64           `json:"holding_id"`
	AccountID      int64           `json:"account_id"`
	Date           date.Date       `json:"date"`
	TickerSymbol   string          `json:"ticker_symbol"`
	NumberOfShares float64         `json:"number_of_shares"`
	Value          float64         `json:"value"`
	Ownership      OwnershipStatus `json:"ownership"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

type AccountHoldingCreate struct {
	AccountID      int64           `json:"account_id"`
	Date           date.Date       `json:"date"`
	TickerSymbol   string          `json:"ticker_symbol"`
	NumberOfShares float64         `json:"number_of_shares"`
	Value          float64         `json:"value"`
	Ownership      OwnershipStatus `json:"ownership"`
}

type AccountHoldingUpdate struct {
	AccountID      *int64           `json:"account_id,omitempty"`
	Date           *date.Date       `json:"date,omitempty"`
	TickerSymbol   *string          `json:"ticker_symbol,omitempty"`
	NumberOfShares *float64         `json:"number_of_shares,omitempty"`
	Value          *float64         `json:"value,omitempty"`
	Ownership      *OwnershipStatus `json:"ownership,omitempty"`
}

// Property is a real-estate asset.
type Property struct {
	PropertyID int64  `json:"property_id"`
	Name       string `json:"name"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type PropertyCreate struct {
	Name string `json:"name"`
}

type PropertyUpdate struct {
	Name *string `json:"name,omitempty"`
}

// PropertyValue is a dated valuation of a property.
type PropertyValue struct {
	PropertyValueID int64     `json:"property_value_id"`
	PropertyID      int64     `json:"property_id"`
	Date            date.Date `json:"date"`
	Valuation       float64   `json:"valuation"`
	CreatedAt       string    `json:"created_at"`
	UpdatedAt       string    `json:"updated_at"`
}

type PropertyValueCreate struct {
	PropertyID int64     `json:"property_id"`
	Date       date.Date `json:"date"`
	Valuation  float64   `json:"valuation"`
}

type PropertyValueUpdate struct {
	PropertyID *int64     `json:"property_id,omitempty"`
	Date       *date.Date `json:"date,omitempty"`
	Valuation  *float64   `json:"valuation,omitempty"`
}

// PropertyMortgage is the outstanding mortgage balance of a property at a date.
type PropertyMortgage struct {
	PropertyMortgageID int64     `json:"property_mortgage_id"`
	PropertyID         int64     `json:"property_id"`
	Date               date.Date `json:"date"`
	Mortgage           float64   `json:"mortgage"`
	CreatedAt          string    `json:"created_at"`
	UpdatedAt          string    `json:"updated_at"`
}

type PropertyMortgageCreate struct {
	PropertyID int64     `json:"property_id"`
	Date       date.Date `json:"date"`
	Mortgage   float64   `json:"mortgage"`
}

type PropertyMortgageUpdate struct {
	PropertyID *int64     `json:"property_id,omitempty"`
	Date       *date.Date `json:"date,omitempty"`
	Mortgage   *float64   `json:"mortgage,omitempty"`
}
