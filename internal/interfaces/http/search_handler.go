package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/apetrovv/warehouse-api/internal/application/usecase"
)

// SearchHandler maneja el buscador global (protegido).
type SearchHandler struct {
	uc *usecase.SearchUseCase
}

// NewSearchHandler construye el handler.
func NewSearchHandler(uc *usecase.SearchUseCase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Search godoc
// @Summary      Buscador global (productos y celdas)
// @Description  Productos por nombre/SKU con sus ubicaciones; celdas por código.
// @Tags         search
// @Security     Bearer
// @Produce      json
// @Param        q      query  string  true   "Término de búsqueda"
// @Param        limit  query  int     false  "Límite por tipo"  default(10)
// @Success      200    {array}  dto.SearchResult
// @Router       /api/search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.Query("q"), c.QueryInt("limit", 10))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
