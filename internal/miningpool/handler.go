package miningpool

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// errorBody writes the error envelope shared by every failing route
func errorBody(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"statusCode": status,
		"message":    message,
		"error":      http.StatusText(status),
	})
}

func (h *Handler) ListMiningPools(c *gin.Context) {
	pools, err := h.service.ListSummaries(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to list mining pools")
		errorBody(c, http.StatusInternalServerError, "Failed to list mining pools")
		return
	}

	c.JSON(http.StatusOK, pools)
}

func (h *Handler) GetMiningPool(c *gin.Context) {
	id := c.Param("id")

	pool, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			errorBody(c, http.StatusNotFound, fmt.Sprintf("Mining pool with id %s not found", id))
			return
		}
		logrus.WithError(err).WithField("pool_id", id).Error("Failed to get mining pool")
		errorBody(c, http.StatusInternalServerError, "Failed to get mining pool")
		return
	}

	c.JSON(http.StatusOK, pool)
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	pools := router.Group("/mining-pools")
	{
		pools.GET("", h.ListMiningPools)
		pools.GET("/:id", h.GetMiningPool)
	}
}
