package domain

// Inquiry обращение с формы обратной связи лендинга (не сохраняется, только уходит письмом)
type Inquiry struct {
	Company  string
	Name     string
	Email    string
	Category string
	Message  string
}
