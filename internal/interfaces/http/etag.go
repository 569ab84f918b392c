package http

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gofiber/fiber/v2"
)

// entityTag etiqueta débil derivada de (recurso, id, versión): cambia con cada escritura confirmada.
func entityTag(resource string, id, version int64) string {
	h := xxhash.New()
	_, _ = h.WriteString(resource)
	_, _ = h.WriteString(":")
	_, _ = h.WriteString(strconv.FormatInt(id, 10))
	_, _ = h.WriteString(":")
	_, _ = h.WriteString(strconv.FormatInt(version, 10))
	return `W/"` + strconv.FormatUint(h.Sum64(), 16) + `"`
}

// notModified fija ETag y devuelve true si If-None-Match coincide.
func notModified(c *fiber.Ctx, tag string) bool {
	c.Set(fiber.HeaderETag, tag)
	inm := c.Get(fiber.HeaderIfNoneMatch)
	if inm == "" {
		return false
	}
	for _, candidate := range strings.Split(inm, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == tag || "W/"+candidate == tag {
			return true
		}
	}
	return false
}
