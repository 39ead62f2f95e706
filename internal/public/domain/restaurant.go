package domain

import "time"

// Restaurant represents one establishment of the delivery catalogue.
type Restaurant struct {
	ID          string
	Name        string
	Categories  []string
	Address     string
	LogoURL     string
	Phone       string
	ReviewAvg   float64
	ReviewCount int
	DeliveryFee DeliveryFeeDisplay
	Location    GeoPoint
	OpenHours   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DeliveryFeeDisplay carries the pre-formatted fee strings shown to
// users, as delivered by the upstream data source.
type DeliveryFeeDisplay struct {
	Basic string
}

// GeoPoint is a longitude/latitude pair in GeoJSON field order.
type GeoPoint struct {
	Longitude float64
	Latitude  float64
}
