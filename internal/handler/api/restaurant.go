package api

import (
	"net/http"

	resdto "dinetime-api/internal/handler/dto/response"
	"dinetime-api/internal/infra"
	"dinetime-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RestaurantHandler struct {
	restaurantQueries queries.RestaurantQueries
}

func NewRestaurantHandler(restaurantQueries queries.RestaurantQueries) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantQueries: restaurantQueries,
	}
}

// @Summary List restaurants
// @Description List the restaurant catalog
// @Tags restaurants
// @Produce json
// @Success 200 {array} resdto.RestaurantListResponse
// @Router /restaurants [get]
func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	items, err := h.restaurantQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.RestaurantListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromRestaurantListItem(item)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get restaurant
// @Description Get one restaurant with its published booking slots
// @Tags restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} resdto.RestaurantResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /restaurants/{id} [get]
func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid restaurant ID format",
		})
		return
	}

	view, err := h.restaurantQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Restaurant not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRestaurantView(view))
}
