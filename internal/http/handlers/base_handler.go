// README: Base handler utilities (JSON helpers).
package handlers

import (
	"github.com/gin-gonic/gin"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

// writeMessage answers with the {"message": ...} shape every /ask reply uses.
func writeMessage(c *gin.Context, status int, msg string) {
	writeJSON(c, status, messageResponse{Message: msg})
}
