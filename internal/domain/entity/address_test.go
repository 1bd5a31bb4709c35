package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddress_IsCountryOnly(t *testing.T) {
	tests := []struct {
		name    string
		address Address
		want    bool
	}{
		{
			name:    "all classification fields empty",
			address: Address{Town: "Ambleside", City: "Kendal", Postcode: "LA22 9SX"},
			want:    true,
		},
		{
			name:    "first name set",
			address: Address{FirstName: "Ada"},
			want:    false,
		},
		{
			name:    "house name set",
			address: Address{HouseName: "Rose Cottage"},
			want:    false,
		},
		{
			name:    "street set",
			address: Address{Street: "High Street"},
			want:    false,
		},
		{
			name:    "zero value",
			address: Address{},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.address.IsCountryOnly())
		})
	}
}

func TestAddress_IsCountryOnly_ReclassifiesAfterPopulation(t *testing.T) {
	address := Address{Country: &Country{ID: 1, Name: "United Kingdom"}}
	assert.True(t, address.IsCountryOnly())

	address.FirstName = "Ada"
	address.HouseName = "Rose Cottage"
	address.Street = "High Street"
	assert.False(t, address.IsCountryOnly())
}

func TestAddress_ConcatenateDisplay_CountryOnly(t *testing.T) {
	address := Address{Country: &Country{ID: 1, Name: "United Kingdom"}}

	assert.Equal(t, "United Kingdom", address.ConcatenateDisplay(", ", true))
	assert.Equal(t, "United Kingdom", address.ConcatenateDisplay("<br/>", false))
}

func TestAddress_ConcatenateDisplay_FullAddress(t *testing.T) {
	address := Address{
		Title:     "Mr",
		FirstName: "Joe",
		LastName:  "Bloggs",
		HouseName: "1",
		Street:    "The Street",
		City:      "Cambridge",
		Postcode:  "CB1 1TT",
		Country:   &Country{ID: 1, Name: "United Kingdom"},
	}

	got := address.ConcatenateDisplay(", ", true)
	assert.Equal(t, "Mr Joe Bloggs, 1, The Street, , Cambridge, , CB1 1TT, United Kingdom", got)
}

func TestAddress_ConcatenateDisplay_BlankFieldsKeepDelimiters(t *testing.T) {
	address := Address{
		FirstName: "Joe",
		HouseName: "1",
		Street:    "The Street",
		Town:      "",
		City:      "Cambridge",
		County:    "",
		Postcode:  "CB1 1TT",
		Country:   &Country{ID: 1, Name: "United Kingdom"},
	}

	// Blank fields are not skipped; downstream pages split on the delimiter
	// and rely on fixed positions.
	got := address.ConcatenateDisplay("|", false)
	assert.Equal(t, "Joe|1|The Street||Cambridge||United Kingdom", got)
}

func TestAddress_ConcatenateDisplay_PostcodeToggle(t *testing.T) {
	address := Address{
		FirstName: "Joe",
		LastName:  "Bloggs",
		HouseName: "1",
		Street:    "The Street",
		Town:      "Histon",
		City:      "Cambridge",
		County:    "Cambridgeshire",
		Postcode:  "CB1 1TT",
		Country:   &Country{ID: 1, Name: "United Kingdom"},
	}

	withPostcode := address.ConcatenateDisplay(", ", true)
	withoutPostcode := address.ConcatenateDisplay(", ", false)

	assert.Contains(t, withPostcode, "CB1 1TT")
	assert.NotContains(t, withoutPostcode, "CB1 1TT")
	assert.Equal(t, "Joe Bloggs, 1, The Street, Histon, Cambridge, Cambridgeshire, United Kingdom", withoutPostcode)
}

func TestAddress_CountryName_UnloadedReference(t *testing.T) {
	address := Address{}
	assert.Equal(t, "", address.CountryName())
}
