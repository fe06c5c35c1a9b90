package dto

type CategoryInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"required"`
}

type ServiceInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Price       int    `json:"price" binding:"gte=0"`
	CategoryID  uint   `json:"category_id" binding:"required"`
}
