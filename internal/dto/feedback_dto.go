package dto

type FeedbackInput struct {
	Rating   int     `json:"rating" binding:"required,min=1,max=5"`
	Comments *string `json:"comments"`
}
