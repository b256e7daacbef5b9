package handlers

import (
	"net/http"
	"strconv"

	"github.com/Skotchmaster/customer_orders/internal/service/search"
	"github.com/Skotchmaster/customer_orders/internal/util"
	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
)

type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return respond(c, http.StatusBadRequest, "query is required", nil)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := util.Calculate(page, size)

	total, products, err := search.Search(c.Request().Context(), h.ES, h.Index, q, from, size)
	if err != nil {
		return respond(c, http.StatusInternalServerError, err.Error(), nil)
	}
	return respond(c, http.StatusOK, "Search completed", echo.Map{"total": total, "products": products})
}
