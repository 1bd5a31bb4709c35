package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemUser_PrimaryEmail(t *testing.T) {
	primary := &EmailAddress{ID: 7, Address: "joe@example.com"}
	secondary := &EmailAddress{ID: 9, Address: "joe@work.example.com"}

	user := SystemUser{
		PrimaryEmailID: 7,
		EmailAddresses: []*EmailAddress{secondary, primary},
	}

	assert.Equal(t, primary, user.PrimaryEmail())
}

func TestSystemUser_PrimaryEmail_NotLoaded(t *testing.T) {
	user := SystemUser{PrimaryEmailID: 7}
	assert.Nil(t, user.PrimaryEmail())
}

func TestSystemUser_HasEmail(t *testing.T) {
	user := SystemUser{
		EmailAddresses: []*EmailAddress{
			{ID: 1, Address: "joe@example.com"},
		},
	}

	assert.True(t, user.HasEmail("joe@example.com"))
	assert.False(t, user.HasEmail("other@example.com"))
}
