package users

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/KeshavWanjale/usercrud/common/apiutil"
	"github.com/gin-gonic/gin"
)

const (
	collectionPath = "/users"
	itemPrefix     = collectionPath + "/"
)

// RegisterRoutes mounts the users resource. Every standard method reaches
// Handle so that unsupported ones get the JSON 405 body; other methods arrive
// through ServePath from the router's fallback.
func RegisterRoutes(router gin.IRouter, h *Handler) {
	router.Any(collectionPath, h.ServeHTTP)
	router.Any(itemPrefix+":id", h.ServeHTTP)
}

// ServeHTTP adapts a routed gin request to Handle.
func (h *Handler) ServeHTTP(c *gin.Context) {
	raw, hasID := c.Params.Get("id")
	h.serve(c, raw, hasID)
}

// ServePath serves c when its path names the users collection or one user,
// whatever the method. It reports false, writing nothing, for other paths.
func (h *Handler) ServePath(c *gin.Context) bool {
	path := c.Request.URL.Path
	if path == collectionPath {
		h.serve(c, "", false)
		return true
	}

	raw, ok := strings.CutPrefix(path, itemPrefix)
	if !ok || raw == "" || strings.Contains(raw, "/") {
		return false
	}
	h.serve(c, raw, true)
	return true
}

func (h *Handler) serve(c *gin.Context, rawID string, hasID bool) {
	req := Request{Method: c.Request.Method}

	if hasID {
		id, err := strconv.ParseUint(rawID, 10, strconv.IntSize)
		if err != nil {
			apiutil.WriteErrorResponse(c, http.StatusNotFound, "Not found")
			return
		}
		uid := uint(id)
		req.ID = &uid
	}

	body, err := c.GetRawData()
	if err != nil {
		apiutil.WriteErrorResponse(c, http.StatusBadRequest, invalidJSONMessage)
		return
	}
	req.Body = body

	resp := h.Handle(c.Request.Context(), req)
	c.JSON(resp.Status, resp.Body)
}
