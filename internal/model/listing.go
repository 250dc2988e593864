package model

// HouseType is the kind of building a property is in
type HouseType string

const (
	HouseTypeHouse           HouseType = "House"
	HouseTypeApartment       HouseType = "Apartment"
	HouseTypeBedAndBreakfast HouseType = "Bed and breakfast"
	HouseTypeBoutiqueHotel   HouseType = "Boutique hotel"
)

// HouseTypes lists every house type in display order
var HouseTypes = []HouseType{
	HouseTypeHouse,
	HouseTypeApartment,
	HouseTypeBedAndBreakfast,
	HouseTypeBoutiqueHotel,
}

// PlaceType is how much of the property the guest gets
type PlaceType string

const (
	PlaceTypeEntirePlace PlaceType = "Entire place"
	PlaceTypePrivateRoom PlaceType = "Private room"
	PlaceTypeHotelRoom   PlaceType = "Hotel room"
	PlaceTypeSharedRoom  PlaceType = "Shared room"
)

// PlaceTypes lists every place type in display order
var PlaceTypes = []PlaceType{
	PlaceTypeEntirePlace,
	PlaceTypePrivateRoom,
	PlaceTypeHotelRoom,
	PlaceTypeSharedRoom,
}

// ParseHouseType returns the house type matching s exactly
func ParseHouseType(s string) (HouseType, bool) {
	for _, ht := range HouseTypes {
		if string(ht) == s {
			return ht, true
		}
	}
	return "", false
}

// ParsePlaceType returns the place type matching s exactly
func ParsePlaceType(s string) (PlaceType, bool) {
	for _, pt := range PlaceTypes {
		if string(pt) == s {
			return pt, true
		}
	}
	return "", false
}

// Property represents a bookable property listing
type Property struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	City         string    `json:"city" db:"city"`
	Territory    string    `json:"territory" db:"territory"`
	Country      string    `json:"country" db:"country"`
	Rate         float64   `json:"rate" db:"rate"`   // Price per night
	Stars        float64   `json:"stars" db:"stars"` // 0-5 in 0.5 steps
	HouseType    HouseType `json:"houseType" db:"house_type"`
	PlaceType    PlaceType `json:"placeType" db:"place_type"`
	HostID       string    `json:"hostId" db:"host_id"`
	ImageSrc     string    `json:"imageSrc" db:"image_src"`
	ImageAltText string    `json:"imageAltText" db:"image_alt_text"`
}

// PropertyDetail represents a single property with its host standing
type PropertyDetail struct {
	Property
	SuperHost bool `json:"superHost"`
}

// LocationOption is a selectable country in the location filter
type LocationOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// LocationOptions are the countries offered by the location filter
var LocationOptions = []LocationOption{
	{Label: "Canada", Value: "CA"},
	{Label: "Costa Rica", Value: "CR"},
	{Label: "United States", Value: "US"},
}
