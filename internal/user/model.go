package user

import (
	"fmt"
	"regexp"
	"strings"

	appErrors "fintrack/customErrors"
	"fintrack/internal/tokenstore"
)

const (
	MAX_LENGTH_NAME     = 255
	MAX_LENGTH_EMAIL    = 255
	MIN_PASSWORD_LENGTH = 6
	MAX_PASSWORD_LENGTH = 72
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9](\.?[a-zA-Z0-9_%+-])*@[a-zA-Z0-9-]+(\.[a-zA-Z0-9-]+)*\.[a-zA-Z]{2,}$`)

type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

// UserWithTokens is the login/signup result. The token pair is handed to the
// Token Store right away and never kept on the session user.
type UserWithTokens struct {
	User
	Tokens tokenstore.TokenPair
}

// Balance is the server-derived snapshot for a date range. All values are
// decimal strings, passed through verbatim.
type Balance struct {
	Balance               string `json:"balance"`
	Earnings              string `json:"earnings"`
	Expenses              string `json:"expenses"`
	Investments           string `json:"investments"`
	EarningsPercentage    string `json:"earningsPercentage"`
	ExpensesPercentage    string `json:"expensesPercentage"`
	InvestmentsPercentage string `json:"investmentsPercentage"`
}

type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type LoginInput struct {
	Email    string
	Password string
}

func (input SignupInput) ValidateFields() error {
	if strings.TrimSpace(input.FirstName) == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "First name cannot be empty!",
		}
	}
	if len(input.FirstName) > MAX_LENGTH_NAME {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("First name so long, maximum length is %d", MAX_LENGTH_NAME),
		}
	}
	if strings.TrimSpace(input.LastName) == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Last name cannot be empty!",
		}
	}
	if len(input.LastName) > MAX_LENGTH_NAME {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Last name so long, maximum length is %d", MAX_LENGTH_NAME),
		}
	}
	if err := validateEmail(input.Email); err != nil {
		return err
	}
	return validatePassword(input.Password)
}

func (input LoginInput) ValidateFields() error {
	if err := validateEmail(input.Email); err != nil {
		return err
	}
	return validatePassword(input.Password)
}

func validateEmail(email string) error {
	if email == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Email cannot be empty!",
		}
	}
	if !emailRegex.MatchString(email) {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Invalid email format, example valid email: john.doe@gmail.com",
		}
	}
	if len(email) > MAX_LENGTH_EMAIL {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Email so long, maximum length is %d", MAX_LENGTH_EMAIL),
		}
	}
	return nil
}

func validatePassword(password string) error {
	password = strings.TrimSpace(password)
	if len(password) < MIN_PASSWORD_LENGTH {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Password so short, minimum length is %d", MIN_PASSWORD_LENGTH),
		}
	}
	if len(password) > MAX_PASSWORD_LENGTH {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Password so long, maximum length is %d", MAX_PASSWORD_LENGTH),
		}
	}
	return nil
}

// Wire shapes. The API speaks snake_case for user fields and nests the token
// pair under "tokens" on signup/login responses.

type signupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type userWithTokensResponse struct {
	userResponse
	Tokens struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	} `json:"tokens"`
}
