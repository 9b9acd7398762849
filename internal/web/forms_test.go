package web

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFormValidate(t *testing.T) {
	valid := url.Values{
		"username":  {"alice"},
		"email":     {"alice@example.com"},
		"password1": {"s3cret-pass"},
		"password2": {"s3cret-pass"},
	}

	tcases := []struct {
		name        string
		field       string
		value       string
		expectedErr error
	}{
		{name: "valid", expectedErr: nil},
		{name: "missing username", field: "username", value: "", expectedErr: errUsernameRequired},
		{name: "username with spaces", field: "username", value: "alice smith", expectedErr: errUsernameInvalid},
		{name: "invalid email", field: "email", value: "not-an-email", expectedErr: errEmailInvalid},
		{name: "email with display name", field: "email", value: "Alice <alice@example.com>", expectedErr: errEmailInvalid},
		{name: "password mismatch", field: "password2", value: "other-pass", expectedErr: errPasswordMismatch},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			v := url.Values{}
			for k, vs := range valid {
				v[k] = vs
			}
			if tc.field != "" {
				v.Set(tc.field, tc.value)
			}

			err := newRegisterForm(v).validate()
			if tc.expectedErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expectedErr)
			}
		})
	}
}

func TestRegisterFormPasswordRules(t *testing.T) {
	form := registerForm{Username: "alice", Email: "alice@example.com", Password1: "1234567", Password2: "1234567"}

	err := form.validate()
	assert.ErrorIs(t, err, errPasswordShort)
	assert.ErrorIs(t, err, errPasswordNumeric)
}

func TestNewRegisterFormNormalizes(t *testing.T) {
	form := newRegisterForm(url.Values{
		"username": {" Alice "},
		"email":    {"Alice@Example.COM"},
	})

	assert.Equal(t, "alice", form.Username)
	assert.Equal(t, "alice@example.com", form.Email)
	assert.NotContains(t, form.values(), "password1")
}

func TestProfileFormValidate(t *testing.T) {
	assert.NoError(t, profileForm{Username: "Alice", Email: "alice@example.com"}.validate())
	assert.ErrorIs(t, profileForm{Username: "", Email: "alice@example.com"}.validate(), errUsernameRequired)
	assert.ErrorIs(t, profileForm{Username: "alice", Email: "nope"}.validate(), errEmailInvalid)
}
