package httputils

// RequestError is the uniform error payload of the API
type RequestError struct {
	Error string `json:"error"`
}
