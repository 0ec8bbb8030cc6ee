package submit_inquiry

import (
	submitInquiry "github.com/m04kA/SMC-MeetingBooking/internal/usecase/submit_inquiry"
)

// InquiryRequest HTTP request model
type InquiryRequest struct {
	Company  string `json:"company" validate:"required,max=100,single_line"`
	Name     string `json:"name" validate:"required,max=100,single_line"`
	Email    string `json:"email" validate:"required,max=254,email"`
	Category string `json:"category" validate:"required,max=50,single_line"`
	Message  string `json:"message" validate:"required,max=2000"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *InquiryRequest) ToUseCaseRequest() *submitInquiry.Request {
	return &submitInquiry.Request{
		Company:  r.Company,
		Name:     r.Name,
		Email:    r.Email,
		Category: r.Category,
		Message:  r.Message,
	}
}
