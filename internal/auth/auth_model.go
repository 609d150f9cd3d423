package auth

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=Admin Dictator Sponsor"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ActivateRequest carries the profile fields a fresh account must fill in
// before it can act. Dictators set name and territory, sponsors set the
// company name.
type ActivateRequest struct {
	Name        string `json:"name"`
	Territory   string `json:"territory"`
	CompanyName string `json:"companyName"`
}

type AuthResponse struct {
	Token           string `json:"token"`
	Role            string `json:"role"`
	NeedsActivation bool   `json:"needsActivation"`
}
