package request

// SignupRequest is the request body for creating an account
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SubmitScoreRequest is the request body for recording a score
// Score is a pointer so that a missing score is distinguishable from zero
type SubmitScoreRequest struct {
	Score *int   `json:"score" validate:"required,min=0,max=2147483647"`
	Mode  string `json:"mode" validate:"required,oneof=walls pass-through"`
}

// StartGameRequest is the request body for registering a live game
type StartGameRequest struct {
	ID   string `json:"id,omitempty" validate:"omitempty,max=64,gameid"`
	Mode string `json:"mode" validate:"required,oneof=walls pass-through"`
}
