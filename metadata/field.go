package metadata

import "strconv"

// Field is the tag of one metadata value. Tags are persisted, so existing values
// never change; new fields are appended before FieldCount.
type Field uint8

const (
	FieldCuisine Field = iota + 1
	FieldOpeningHours
	FieldPhoneNumber
	FieldFaxNumber
	FieldStars
	FieldOperator
	FieldURL
	FieldWebsite
	FieldInternet
	FieldElevation
	FieldTurnLanes
	FieldTurnLanesForward
	FieldTurnLanesBackward
	FieldEmail
	FieldPostcode
	FieldWikipedia
	FieldMaxSpeed
	FieldFlats
	FieldHeight
	FieldMinHeight
	FieldDenomination
	FieldBuildingLevels
	FieldTestID
	FieldSponsoredID
	FieldPriceRate
	FieldRating
	FieldBannerURL
	FieldLevel
	FieldAirportIATA
	FieldBrand
	FieldDuration

	// FieldCount is one past the last known field. Tags at or above it were
	// written by a newer build and are skipped on read.
	FieldCount
)

var fieldNames = [FieldCount]string{
	FieldCuisine:           "cuisine",
	FieldOpeningHours:      "opening_hours",
	FieldPhoneNumber:       "phone",
	FieldFaxNumber:         "fax",
	FieldStars:             "stars",
	FieldOperator:          "operator",
	FieldURL:               "url",
	FieldWebsite:           "website",
	FieldInternet:          "internet_access",
	FieldElevation:         "ele",
	FieldTurnLanes:         "turn:lanes",
	FieldTurnLanesForward:  "turn:lanes:forward",
	FieldTurnLanesBackward: "turn:lanes:backward",
	FieldEmail:             "email",
	FieldPostcode:          "postcode",
	FieldWikipedia:         "wikipedia",
	FieldMaxSpeed:          "maxspeed",
	FieldFlats:             "flats",
	FieldHeight:            "height",
	FieldMinHeight:         "min_height",
	FieldDenomination:      "denomination",
	FieldBuildingLevels:    "building:levels",
	FieldTestID:            "test_id",
	FieldSponsoredID:       "sponsored_id",
	FieldPriceRate:         "price_rate",
	FieldRating:            "rating:sponsored",
	FieldBannerURL:         "banner_url",
	FieldLevel:             "level",
	FieldAirportIATA:       "iata",
	FieldBrand:             "brand",
	FieldDuration:          "duration",
}

// Known reports whether f is a field this build understands.
func (f Field) Known() bool {
	return f > 0 && f < FieldCount
}

func (f Field) String() string {
	if f.Known() {
		return fieldNames[f]
	}

	return "field(" + strconv.Itoa(int(f)) + ")"
}

// ParseField returns the field with the given name.
func ParseField(name string) (Field, bool) {
	for f := FieldCuisine; f < FieldCount; f++ {
		if fieldNames[f] == name {
			return f, true
		}
	}

	return 0, false
}
