package model

import "strings"

// PropertyType classifies the real estate itself.
type PropertyType string

const (
	PropertyApartment  PropertyType = "apartment"
	PropertyHouse      PropertyType = "house"
	PropertyLand       PropertyType = "land"
	PropertyCommercial PropertyType = "commercial"
)

// DealType is how the property is offered.
type DealType string

const (
	DealSale DealType = "sale"
	DealRent DealType = "rent"
)

// PropertyStatus is the listing workflow state.
type PropertyStatus string

const (
	PropertyDraft     PropertyStatus = "draft"
	PropertyPublished PropertyStatus = "published"
	PropertyReserved  PropertyStatus = "reserved"
	PropertySold      PropertyStatus = "sold"
	PropertyRented    PropertyStatus = "rented"
	PropertyArchived  PropertyStatus = "archived"
)

// BrokerStatus controls directory visibility.
type BrokerStatus string

const (
	BrokerActive    BrokerStatus = "active"
	BrokerSuspended BrokerStatus = "suspended"
)

// NewsStatus is the editorial workflow state.
type NewsStatus string

const (
	NewsDraft     NewsStatus = "draft"
	NewsPublished NewsStatus = "published"
	NewsArchived  NewsStatus = "archived"
)

var propertyTransitions = map[PropertyStatus][]PropertyStatus{
	PropertyDraft:     {PropertyPublished},
	PropertyPublished: {PropertyReserved, PropertySold, PropertyRented, PropertyArchived},
	PropertyReserved:  {PropertyPublished, PropertySold, PropertyRented},
	PropertyArchived:  {PropertyDraft},
	// sold and rented are terminal
}

var brokerTransitions = map[BrokerStatus][]BrokerStatus{
	BrokerActive:    {BrokerSuspended},
	BrokerSuspended: {BrokerActive},
}

var newsTransitions = map[NewsStatus][]NewsStatus{
	NewsDraft:     {NewsPublished},
	NewsPublished: {NewsArchived},
	NewsArchived:  {NewsDraft},
}

func canMove[S comparable](table map[S][]S, from, to S) bool {
	for _, s := range table[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanTransition reports whether a listing may move from s to next.
func (s PropertyStatus) CanTransition(next PropertyStatus) bool {
	return canMove(propertyTransitions, s, next)
}

// CanTransition reports whether a broker may move from s to next.
func (s BrokerStatus) CanTransition(next BrokerStatus) bool {
	return canMove(brokerTransitions, s, next)
}

// CanTransition reports whether an article may move from s to next.
func (s NewsStatus) CanTransition(next NewsStatus) bool {
	return canMove(newsTransitions, s, next)
}

// Valid reports whether s is a known property status.
func (s PropertyStatus) Valid() bool {
	switch s {
	case PropertyDraft, PropertyPublished, PropertyReserved, PropertySold, PropertyRented, PropertyArchived:
		return true
	}
	return false
}

func (s BrokerStatus) Valid() bool { return s == BrokerActive || s == BrokerSuspended }

func (s NewsStatus) Valid() bool {
	return s == NewsDraft || s == NewsPublished || s == NewsArchived
}

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyApartment, PropertyHouse, PropertyLand, PropertyCommercial:
		return true
	}
	return false
}

func (d DealType) Valid() bool { return d == DealSale || d == DealRent }

// ParsePropertyStatus normalizes case and surrounding spaces.
func ParsePropertyStatus(s string) PropertyStatus {
	return PropertyStatus(strings.ToLower(strings.TrimSpace(s)))
}

func ParseBrokerStatus(s string) BrokerStatus {
	return BrokerStatus(strings.ToLower(strings.TrimSpace(s)))
}

func ParseNewsStatus(s string) NewsStatus {
	return NewsStatus(strings.ToLower(strings.TrimSpace(s)))
}

func ParsePropertyType(s string) PropertyType {
	return PropertyType(strings.ToLower(strings.TrimSpace(s)))
}

func ParseDealType(s string) DealType {
	return DealType(strings.ToLower(strings.TrimSpace(s)))
}
