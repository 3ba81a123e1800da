package authapimodels

type JWTResponse struct {
	Token string `json:"token"`
}

type UserClaims struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
