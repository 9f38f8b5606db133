package respond

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Text writes a 200 plain-text body.
func Text(c *gin.Context, body string) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

// Attachment writes data as a download named fileName.
func Attachment(c *gin.Context, fileName, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+strings.ReplaceAll(fileName, `"`, "")+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// Page reads ?limit and ?offset. Unparseable values fall back to the
// defaults; limit is clamped to [0, maxLimit] and offset to >= 0.
func Page(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int) {
	limit = queryInt(c, "limit", defaultLimit)
	offset = max(queryInt(c, "offset", 0), 0)
	return min(max(limit, 0), maxLimit), offset
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return def
	}
	return v
}
