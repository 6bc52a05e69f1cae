package dto

// SendEmailRequest fans an email out to the listed recipients
type SendEmailRequest struct {
	Recipients []string `json:"recipients" binding:"required,min=1,dive,email"`
	Subject    string   `json:"subject" binding:"required"`
	Message    string   `json:"message" binding:"required"`
}

// SendSMSRequest fans a text message out to the listed phone numbers
type SendSMSRequest struct {
	Recipients []string `json:"recipients" binding:"required,min=1"`
	Message    string   `json:"message" binding:"required"`
}

// SendResult reports the per-recipient outcome of a fan-out
type SendResult struct {
	Recipient string `json:"recipient"`
	Sent      bool   `json:"sent"`
	Error     string `json:"error,omitempty"`
}

// SendResponse summarizes a fan-out send
type SendResponse struct {
	Sent    int          `json:"sent"`
	Failed  int          `json:"failed"`
	Results []SendResult `json:"results"`
}
