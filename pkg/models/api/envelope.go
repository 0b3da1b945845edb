package api

// Response is the envelope wrapped around every JSON payload, success or
// failure.
type Response struct {
	Message    string   `json:"message,omitempty"`
	Succeeded  bool     `json:"succeeded"`
	StatusCode int      `json:"statusCode"`
	Data       any      `json:"data,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

func OK(statusCode int, message string, data any) Response {
	return Response{
		Message:    message,
		Succeeded:  true,
		StatusCode: statusCode,
		Data:       data,
	}
}

func Fail(statusCode int, message string, errs ...string) Response {
	return Response{
		Message:    message,
		Succeeded:  false,
		StatusCode: statusCode,
		Errors:     errs,
	}
}
