package author

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jgelli/recipes-go/domain"
	"github.com/jgelli/recipes-go/entities"
	"github.com/jgelli/recipes-go/internal/utils/mailing"
)

type (
	AuthorService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthorResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.AuthorResponse, error)
	}

	authorService struct {
		authorRepository AuthorRepository
		validator        *validator.Validate
	}
)

func NewAuthorService(authorRepository AuthorRepository, validate *validator.Validate) AuthorService {
	return &authorService{
		authorRepository: authorRepository,
		validator:        validate,
	}
}

// Register validates the whole submission at once, aggregating every field
// violation, and only then creates the account with a bcrypt-hashed password.
// The email pre-check is a fast path for the common case; the unique index on
// the column is the source of truth, and a lost race surfaces as the same
// field message.
func (s *authorService) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthorResponse, error) {
	verr := domain.NewValidationError()

	if err := s.validator.Struct(req); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return domain.AuthorResponse{}, err
		}
		for _, fe := range fieldErrors {
			field, message := registerFieldMessage(fe)
			verr.Add(field, message)
		}
	}

	if req.Password != req.Password2 {
		verr.Add("password", domain.MsgPasswordMismatch)
		verr.Add("password2", domain.MsgPasswordMismatch)
	}

	if req.Email != "" {
		exists, err := s.authorRepository.EmailExists(ctx, req.Email)
		if err != nil {
			return domain.AuthorResponse{}, err
		}
		if exists {
			verr.Add("email", domain.MsgEmailInUse)
		}
	}

	if verr.HasErrors() {
		return domain.AuthorResponse{}, verr
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.AuthorResponse{}, err
	}

	user := &entities.User{
		ID:        uuid.New(),
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashed),
	}

	if err := s.authorRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			verr.Add("email", domain.MsgEmailInUse)
			return domain.AuthorResponse{}, verr
		}
		return domain.AuthorResponse{}, err
	}

	// Best effort: a failed welcome mail must not fail the registration.
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>your account was created. You can now log in and start publishing recipes.</p>",
		user.FirstName,
	)
	if err := mailing.SendMail(user.Email, "Welcome to Recipes", body); err != nil {
		log.Printf("failed to send welcome mail to %s: %v", user.Email, err)
	}

	return toAuthorResponse(user), nil
}

func (s *authorService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthorResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return domain.AuthorResponse{}, domain.ErrInvalidCredentials
	}

	user, err := s.authorRepository.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AuthorResponse{}, domain.ErrInvalidCredentials
		}
		return domain.AuthorResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.AuthorResponse{}, domain.ErrInvalidCredentials
	}

	return toAuthorResponse(user), nil
}

func registerFieldMessage(fe validator.FieldError) (string, string) {
	switch fe.Field() {
	case "Username":
		switch fe.Tag() {
		case "min":
			return "username", domain.MsgUsernameTooShort
		case "max":
			return "username", domain.MsgUsernameTooLong
		default:
			return "username", domain.MsgUsernameRequired
		}
	case "FirstName":
		return "first_name", domain.MsgFirstNameRequired
	case "LastName":
		return "last_name", domain.MsgLastNameRequired
	case "Email":
		if fe.Tag() == "email" {
			return "email", domain.MsgEmailInvalid
		}
		return "email", domain.MsgEmailRequired
	case "Password":
		if fe.Tag() == "strongpassword" {
			return "password", domain.MsgPasswordWeak
		}
		return "password", domain.MsgPasswordRequired
	case "Password2":
		return "password2", domain.MsgPassword2Required
	default:
		return fe.Field(), fe.Tag()
	}
}

func toAuthorResponse(user *entities.User) domain.AuthorResponse {
	return domain.AuthorResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}
