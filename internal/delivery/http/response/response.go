package response

import (
	"github.com/gin-gonic/gin"
)

// ContactResponse is the envelope of the contact endpoint.
type ContactResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// ErrorResponse is the error body of every other endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Renderer writes an error body in a route group's format.
type Renderer func(c *gin.Context, code int, message string)

// OK sends the contact success body {ok:true}
func OK(c *gin.Context, code int) {
	c.JSON(code, ContactResponse{OK: true})
}

// Fail sends the contact error body {ok:false,error}
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, ContactResponse{OK: false, Error: message})
}

// Error sends the plain error body {error}
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}

// JSON sends data as is
func JSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}
