package actions

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gitlab.com/przworld-exchange/economy_core/httputils"
	"gitlab.com/przworld-exchange/economy_core/logger"
)

// Ping godoc
// swagger:route GET /ping misc ping
// Ping
//
// Ping the server
//
//	Produces:
//	- application/json
//
//	Schemes: http, https
//
//	Responses:
//	  200: StringResp
func Ping(c *gin.Context) {
	c.JSON(200, "pong")
}

func abortWithError(c *gin.Context, code int, message string) {
	l := getlog(c)
	l.Debug().Stack().Int("resp_code", code).Msg(message)
	c.AbortWithStatusJSON(code, httputils.RequestError{Error: message})
}

func getlog(c *gin.Context) zerolog.Logger {
	return logger.GetLogger(c)
}

// RequireAdminKey restricts privileged endpoints to callers presenting the
// configured admin api key
func (actions *Actions) RequireAdminKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Api-Key")
		if actions.cfg.Server.API.AdminKey == "" || key != actions.cfg.Server.API.AdminKey {
			abortWithError(c, http.StatusUnauthorized, "Invalid api key")
			return
		}
		c.Next()
	}
}
