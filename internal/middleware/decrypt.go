package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"youngmoney/pkg/codec"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type encryptedBody struct {
	Encrypted interface{} `json:"encrypted"`
	Data      string      `json:"data"`
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return false
	}
}

// Decrypt replaces a {"encrypted": true, "data": "<base64>"} JSON body with its
// decrypted JSON. Any other body passes through untouched.
func Decrypt(cd *codec.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.ContentLength == 0 {
			c.Next()
			return
		}
		raw, err := io.ReadAll(c.Request.Body)
		_ = c.Request.Body.Close()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Dados criptografados inválidos"})
			return
		}
		body := raw

		var env encryptedBody
		if json.Unmarshal(raw, &env) == nil && truthy(env.Encrypted) && env.Data != "" {
			plain, err := cd.Decode(env.Data)
			if err == nil && len(bytes.TrimSpace(plain)) == 0 {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Erro ao descriptografar dados"})
				return
			}
			if err != nil || !json.Valid(plain) {
				log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("[decrypt] invalid payload")
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Dados criptografados inválidos"})
				return
			}
			body = plain
			c.Request.Header.Set("Content-Type", "application/json")
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Request.ContentLength = int64(len(body))
		c.Next()
	}
}
