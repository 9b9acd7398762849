package web

import (
	"errors"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minPasswordLength = 8
	maxUsernameLength = 150
)

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

	errUsernameRequired = errors.New("username is required")
	errUsernameTooLong  = errors.New("username is too long")
	errUsernameInvalid  = errors.New("username may only contain letters, digits and @/./+/-/_")
	errEmailInvalid     = errors.New("enter a valid email address")
	errPasswordMismatch = errors.New("the two password fields didn't match")
	errPasswordShort    = errors.New("password is too short")
	errPasswordNumeric  = errors.New("password is entirely numeric")
)

type registerForm struct {
	Name      string
	Username  string
	Email     string
	Password1 string
	Password2 string
}

func newRegisterForm(v url.Values) registerForm {
	return registerForm{
		Name:      strings.TrimSpace(v.Get("name")),
		Username:  strings.ToLower(strings.TrimSpace(v.Get("username"))),
		Email:     strings.ToLower(strings.TrimSpace(v.Get("email"))),
		Password1: v.Get("password1"),
		Password2: v.Get("password2"),
	}
}

func (f registerForm) validate() error {
	var errs []error
	if err := validateUsername(f.Username); err != nil {
		errs = append(errs, err)
	}
	if err := validateEmail(f.Email); err != nil {
		errs = append(errs, err)
	}
	if f.Password1 != f.Password2 {
		errs = append(errs, errPasswordMismatch)
	}
	if utf8.RuneCountInString(f.Password1) < minPasswordLength {
		errs = append(errs, errPasswordShort)
	}
	if isNumeric(f.Password1) {
		errs = append(errs, errPasswordNumeric)
	}

	return errors.Join(errs...)
}

// values returns the submitted fields for re-display, without passwords.
func (f registerForm) values() url.Values {
	return url.Values{
		"name":     {f.Name},
		"username": {f.Username},
		"email":    {f.Email},
	}
}

type profileForm struct {
	Name     string
	Username string
	Email    string
	Bio      string
}

func newProfileForm(v url.Values) profileForm {
	return profileForm{
		Name:     strings.TrimSpace(v.Get("name")),
		Username: strings.TrimSpace(v.Get("username")),
		Email:    strings.ToLower(strings.TrimSpace(v.Get("email"))),
		Bio:      strings.TrimSpace(v.Get("bio")),
	}
}

func (f profileForm) validate() error {
	return errors.Join(validateUsername(f.Username), validateEmail(f.Email))
}

func (f profileForm) values() url.Values {
	return url.Values{
		"name":     {f.Name},
		"username": {f.Username},
		"email":    {f.Email},
		"bio":      {f.Bio},
	}
}

func validateUsername(username string) error {
	switch {
	case username == "":
		return errUsernameRequired
	case utf8.RuneCountInString(username) > maxUsernameLength:
		return errUsernameTooLong
	case !usernamePattern.MatchString(username):
		return errUsernameInvalid
	}

	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errEmailInvalid
	}

	return nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}
