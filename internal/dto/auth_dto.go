package dto

type RegisterInput struct {
	Username    string  `json:"username" binding:"required,min=3,max=100"`
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=6"`
	Role        string  `json:"role" binding:"required,oneof=cust serv"`
	Phone       *string `json:"phone" binding:"omitempty,max=15"`
	City        *string `json:"city" binding:"omitempty,max=100"`
	Pin         *string `json:"pin" binding:"omitempty,len=6"`
	Address     *string `json:"address"`
	Experience  *string `json:"experience" binding:"omitempty,max=3"`
	ServiceType *string `json:"service_type"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	Role  string  `json:"role"`
	ID    uint    `json:"id"`
	Email string  `json:"email"`
	Pin   *string `json:"pin,omitempty"`
}

// ProfessionalListItem is the admin's view of a service professional.
type ProfessionalListItem struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	ServiceType *string `json:"service"`
	Experience  *string `json:"experience"`
	Active      bool    `json:"active"`
}
