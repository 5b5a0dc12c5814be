package httperror

// Error is the API error envelope.
type Error struct {
	Message string `json:"error" example:"the body of your request contains invalid or un-parseable data"`
}

// New wraps an error for an API response.
func New(e error) Error {
	return Error{
		Message: e.Error(),
	}
}
