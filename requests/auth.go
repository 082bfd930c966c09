package requests

type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=4,max=50"`
	Password    string `json:"password" binding:"required,min=6"`
	NamaLengkap string `json:"nama_lengkap" binding:"required,max=100"`
	NoHP        string `json:"no_hp"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateProfileRequest struct {
	NamaLengkap     string  `json:"nama_lengkap"`
	NoHP            *string `json:"no_hp"`
	Password        string  `json:"password"`
	CurrentPassword string  `json:"current_password"`
}
