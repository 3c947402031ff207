package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses. Kept here for the swagger annotations; the actual rendering is
// done by the central HTTP error handler.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// messageResponse is a plain acknowledgement body.
type messageResponse struct {
	Message string `json:"message"`
}
