package submit_inquiry

// Request модель обращения через форму обратной связи
type Request struct {
	Company  string
	Name     string
	Email    string
	Category string
	Message  string
}
