package submit_inquiry

import (
	"context"

	submitInquiry "github.com/m04kA/SMC-MeetingBooking/internal/usecase/submit_inquiry"
)

type SubmitInquiryUseCase interface {
	Execute(ctx context.Context, req *submitInquiry.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
