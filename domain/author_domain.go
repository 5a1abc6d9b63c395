package domain

import (
	"errors"
)

var (
	MessageSuccessRegister = "Your user is created, please log in."
	MessageSuccessLogin    = "You are logged in."
	MessageSuccessLogout   = "You are logged out."
	MessageErrorLogin      = "Invalid credentials"

	MsgUsernameRequired  = "This field must not be empty!"
	MsgUsernameTooShort  = "Username must have at least 4 characters"
	MsgUsernameTooLong   = "Username must have less than 150 characters"
	MsgFirstNameRequired = "Write your first name"
	MsgLastNameRequired  = "Write your last name"
	MsgEmailRequired     = "E-mail must not be empty"
	MsgEmailInvalid      = "The e-mail must be valid."
	MsgEmailInUse        = "User e-mail is already in use"
	MsgPasswordRequired  = "Password must not be empty"
	MsgPassword2Required = "Confirm password must not be empty"
	MsgPasswordWeak      = "Password must have at least one uppercase letter, " +
		"one lowercase letter and one number. The length should be " +
		"at least 8 characters."
	MsgPasswordMismatch = "Password and Confirm password must be equal"

	ErrInvalidCredentials = errors.New("invalid credentials")
)

type (
	RegisterRequest struct {
		FirstName string `form:"first_name" validate:"required"`
		LastName  string `form:"last_name" validate:"required"`
		Username  string `form:"username" validate:"required,min=4,max=150"`
		Email     string `form:"email" validate:"required,email"`
		Password  string `form:"password" validate:"required,strongpassword"`
		Password2 string `form:"password2" validate:"required"`
	}

	LoginRequest struct {
		Username string `form:"username" validate:"required"`
		Password string `form:"password" validate:"required"`
	}

	LogoutRequest struct {
		Username string `form:"username" validate:"required"`
	}

	AuthorResponse struct {
		ID        string `json:"id"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
)
