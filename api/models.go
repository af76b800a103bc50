package api

// AuthURLResponse carries the provider authorization URL; its state query
// parameter seeds the OAuth handshake.
type AuthURLResponse struct {
	URL string `json:"url"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ExchangeRequest struct {
	Code string `json:"code"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type PostKeyResponse struct {
	PostKey   string `json:"post_key"`
	CreatedAt string `json:"created_at"`
}

type PostListItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type PostsPage struct {
	Posts      []PostListItem `json:"posts"`
	Pagination Pagination     `json:"pagination"`
}

type CreateTestPostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type CreateTestPostResponse struct {
	ID string `json:"id"`
}
