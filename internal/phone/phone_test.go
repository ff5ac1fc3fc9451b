package phone_test

import (
	"testing"

	"github.com/rgdevment/scam-scanner/internal/phone"
	"github.com/stretchr/testify/assert"
)

func TestDescribeInternational(t *testing.T) {
	d := phone.Describe("+1 650-253-0000", "")

	assert.Equal(t, "+16502530000", d.E164)
	assert.Equal(t, "US", d.Region)
}

func TestDescribeDefaultRegion(t *testing.T) {
	d := phone.Describe("(650) 253-0000", "US")

	assert.Equal(t, "+16502530000", d.E164)
	assert.Equal(t, "US", d.Region)
}

func TestDescribeUnparseable(t *testing.T) {
	d := phone.Describe("12 34-56", "")

	assert.Equal(t, "123456", d.E164)
	assert.Empty(t, d.Region)
}
