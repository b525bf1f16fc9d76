package response

// Response is the JSON envelope wrapping every reply sent over the
// wire. Type names the request it answers ("<action>_response") and
// RequestUUID echoes the client's uuid field when one was supplied.
type Response struct {
	Type        string      `json:"type,omitempty"`
	Success     bool        `json:"success"`
	Data        interface{} `json:"data,omitempty"`
	Error       string      `json:"error,omitempty"`
	RequestUUID string      `json:"request_uuid,omitempty"`
}

func Success(data interface{}) *Response {
	return &Response{
		Success: true,
		Data:    data,
	}
}

func Failure(message string) *Response {
	return &Response{
		Success: false,
		Error:   message,
	}
}

// WithType sets the response type name and returns the same envelope,
// so handlers can chain it onto Success/Failure.
func (r *Response) WithType(typeName string) *Response {
	r.Type = typeName
	return r
}
