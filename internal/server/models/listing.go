package models

import "time"

const (
	ListingTypeSale = "sale"
	ListingTypeRent = "rent"
)

// Listing is a property offered for sale or rent. UserRef is the owner's
// user id; it is not referentially enforced and survives account deletion.
type Listing struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name" validate:"required"`
	Description   string    `json:"description" validate:"required"`
	Address       string    `json:"address" validate:"required"`
	Type          string    `json:"type" validate:"oneof=sale rent"`
	Bedroom       int       `json:"bedroom" validate:"min=1"`
	Bathroom      int       `json:"bathroom" validate:"min=1"`
	RegularPrice  float64   `json:"regularPrice" validate:"min=50"`
	DiscountPrice float64   `json:"discountPrice" validate:"min=0"`
	Offer         bool      `json:"offer"`
	Parking       bool      `json:"parking"`
	Furnished     bool      `json:"furnished"`
	ImageURLs     []string  `json:"imageUrls" validate:"min=1,max=6,dive,required"`
	UserRef       string    `json:"userRef"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ListingPatch names the listing fields an owner may change; nil means
// "leave as is". Owner and timestamps are not patchable.
type ListingPatch struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Address       *string   `json:"address"`
	Type          *string   `json:"type"`
	Bedroom       *int      `json:"bedroom"`
	Bathroom      *int      `json:"bathroom"`
	RegularPrice  *float64  `json:"regularPrice"`
	DiscountPrice *float64  `json:"discountPrice"`
	Offer         *bool     `json:"offer"`
	Parking       *bool     `json:"parking"`
	Furnished     *bool     `json:"furnished"`
	ImageURLs     *[]string `json:"imageUrls"`
}

// Apply copies the set fields of p onto l.
func (p ListingPatch) Apply(l *Listing) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Address != nil {
		l.Address = *p.Address
	}
	if p.Type != nil {
		l.Type = *p.Type
	}
	if p.Bedroom != nil {
		l.Bedroom = *p.Bedroom
	}
	if p.Bathroom != nil {
		l.Bathroom = *p.Bathroom
	}
	if p.RegularPrice != nil {
		l.RegularPrice = *p.RegularPrice
	}
	if p.DiscountPrice != nil {
		l.DiscountPrice = *p.DiscountPrice
	}
	if p.Offer != nil {
		l.Offer = *p.Offer
	}
	if p.Parking != nil {
		l.Parking = *p.Parking
	}
	if p.Furnished != nil {
		l.Furnished = *p.Furnished
	}
	if p.ImageURLs != nil {
		l.ImageURLs = append([]string(nil), (*p.ImageURLs)...)
	}
}
