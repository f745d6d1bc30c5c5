package utils

import "github.com/gin-gonic/gin"

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
}

// JSONRedirect is used for auth failures: the frontend reads `redirect`
// and navigates to the login entry point.
func JSONRedirect(c *gin.Context, code int, message, location string) {
	c.JSON(code, gin.H{"success": false, "message": message, "redirect": location})
}
