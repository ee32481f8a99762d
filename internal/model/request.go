package model

type SignupRequest struct {
	Username  string  `json:"username" validate:"required,max=50"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required"`
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
}

// LoginRequest accepts the identifier under either key; the original SPA
// sends usernames and email addresses through the same field.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Identifier() string {
	if r.Username != "" {
		return r.Username
	}
	return r.Email
}

type UpdateProfileRequest struct {
	FirstName      *string `json:"firstName" validate:"omitempty,max=100"`
	LastName       *string `json:"lastName" validate:"omitempty,max=100"`
	Email          *string `json:"email" validate:"omitempty,email"`
	ProfilePicture *string `json:"profilePicture" validate:"omitempty,uri"`
}

type CourseRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Code        string  `json:"code" validate:"required,max=50"`
	Description *string `json:"description"`
	Credit      *int    `json:"credit" validate:"omitempty,gte=0"`
	Image       *string `json:"image" validate:"omitempty,uri"`
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  AuthClaims `json:"user"`
}

type SignupResponse struct {
	Message string     `json:"message"`
	User    PublicUser `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
