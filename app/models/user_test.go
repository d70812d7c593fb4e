package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserHashesPassword(t *testing.T) {
	user, err := CreateUser("stillone", "still@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "stillone", user.Name)
	assert.Equal(t, "still@example.com", user.Email)
	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, user.CheckPassword("secret123"))
	assert.False(t, user.CheckPassword("wrong"))
	assert.False(t, user.IsPremium)
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{name: "short username", username: "ab", email: "a@example.com", password: "secret123"},
		{name: "bad email", username: "stillone", email: "not-an-email", password: "secret123"},
		{name: "short password", username: "stillone", email: "a@example.com", password: "abc"},
	}

	for _, tt := range tests {
		if _, err := CreateUser(tt.username, tt.email, tt.password); err == nil {
			t.Fatalf("%s: expected validation error", tt.name)
		}
	}
}

func TestSetPasswordRotatesHash(t *testing.T) {
	user, err := CreateUser("stillone", "still@example.com", "secret123")
	require.NoError(t, err)
	oldHash := user.Password

	require.NoError(t, user.SetPassword("newsecret"))
	assert.NotEqual(t, oldHash, user.Password)
	assert.True(t, user.CheckPassword("newsecret"))
	assert.False(t, user.CheckPassword("secret123"))
}

func TestHasLinkedSubscription(t *testing.T) {
	u := &User{}
	assert.False(t, u.HasLinkedSubscription())

	u.BillingSubscriptionID = "sub_1"
	assert.True(t, u.HasLinkedSubscription())
}
