package dto

// ContactDTO 联系表单
type ContactDTO struct {
	Name    string `form:"name" validate:"required,max=100"`
	Email   string `form:"email" validate:"required,email"`
	Message string `form:"message" validate:"required,max=5000"`
}
