package userservice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/krn-hov/Blog-List-App/internal/common"
)

func TestValidateUsername(t *testing.T) {
	testCases := []struct {
		name     string
		username string
		wantErrs map[string]string
	}{
		{name: "valid username", username: "krnhov", wantErrs: map[string]string{}},
		{name: "empty username", username: "", wantErrs: map[string]string{"username": "must be provided"}},
		{name: "too short", username: "ab", wantErrs: map[string]string{"username": "must be between 3 and 25 characters long"}},
		{name: "invalid characters", username: "krn hov!", wantErrs: map[string]string{"username": "must only contain letters and numbers"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateUsername(v, tc.username)
			assert.Equal(t, tc.wantErrs, v.Errors)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	testCases := []struct {
		name  string
		email string
		valid bool
	}{
		{name: "valid email", email: "krnhov@example.com", valid: true},
		{name: "empty email", email: "", valid: false},
		{name: "missing domain", email: "krnhov@", valid: false},
		{name: "missing local part", email: "@example.com", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateEmail(v, tc.email)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "valid password", password: "correct horse battery", valid: true},
		{name: "empty password", password: "", valid: false},
		{name: "too short", password: "sekret", valid: false},
		{name: "too long", password: strings.Repeat("a", 73), valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validatePassword(v, tc.password)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}

func TestPasswordSetAndCompare(t *testing.T) {
	var p Password

	err := p.set("correct horse battery")
	assert.NoError(t, err)
	assert.NotEmpty(t, p.hash)

	ok, err := p.compare("correct horse battery")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.compare("wrong password")
	assert.NoError(t, err)
	assert.False(t, ok)
}
