package review

import "time"

type Review struct {
	ID        string    `json:"id"`
	RouteID   string    `json:"route_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateReviewRequest struct {
	Rating int    `json:"rating" validate:"min=1,max=5"`
	Text   string `json:"text" validate:"max=5000"`
}
