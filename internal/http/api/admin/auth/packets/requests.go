package packets

// body for logging in
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}
