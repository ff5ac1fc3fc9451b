// Package phone enriches submitted numbers with E.164 and region metadata.
// It is informational only and never decides whether a number is accepted.
package phone

import (
	"github.com/nyaruka/phonenumbers"

	"github.com/rgdevment/scam-scanner/internal/registry"
)

type Details struct {
	E164   string
	Region string
}

// Describe parses raw with libphonenumber rules. Numbers without a country
// code are resolved against defaultRegion. When parsing fails the registry's
// normalized form is returned with no region.
func Describe(raw, defaultRegion string) Details {
	num, err := phonenumbers.Parse(raw, defaultRegion)
	if err != nil {
		return Details{E164: registry.Normalize(raw)}
	}

	d := Details{E164: phonenumbers.Format(num, phonenumbers.E164)}
	if phonenumbers.IsValidNumber(num) {
		d.Region = phonenumbers.GetRegionCodeForNumber(num)
	}
	return d
}
