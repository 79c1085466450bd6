package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"agrimitra/internal/i18n"
	"agrimitra/internal/model"
	"agrimitra/internal/service"
)

// CatalogHandler serves the disease library, news feed, bot directory,
// and translation tables.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ListDiseases returns the disease library
// @Summary      List the disease library
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/library [get]
func (h *CatalogHandler) ListDiseases(c *gin.Context) {
	diseases, err := h.catalogService.ListDiseases(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list diseases")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Code:    50001,
			Message: "Internal Server Error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    diseases,
	})
}

// GetDisease returns one library entry
// @Summary      Get a disease
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "disease id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/v1/library/{id} [get]
func (h *CatalogHandler) GetDisease(c *gin.Context) {
	disease, err := h.catalogService.GetDisease(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDiseaseNotFound) {
			c.JSON(http.StatusNotFound, model.ErrorResponse{
				Code:    40402,
				Message: err.Error(),
			})
			return
		}
		log.Error().Err(err).Msg("failed to get disease")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Code:    50001,
			Message: "Internal Server Error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    disease,
	})
}

// ListNews returns the news feed
// @Summary      List agricultural news
// @Tags         catalog
// @Produce      json
// @Param        limit  query     int  false  "max articles"
// @Success      200    {object}  map[string]interface{}
// @Router       /api/v1/news [get]
func (h *CatalogHandler) ListNews(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "0"), 10, 64)

	articles, err := h.catalogService.ListNews(c.Request.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list news")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Code:    50001,
			Message: "Internal Server Error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    articles,
	})
}

// ListBots returns the crop assistant directory
// @Summary      List crop assistants
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/bots [get]
func (h *CatalogHandler) ListBots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    h.catalogService.ListBots(),
	})
}

// GetTranslations returns the UI strings for a language
// @Summary      Get translation table
// @Tags         catalog
// @Produce      json
// @Param        lang  path      string  true  "language code (en, hi, mr)"
// @Success      200   {object}  map[string]interface{}
// @Router       /api/v1/i18n/{lang} [get]
func (h *CatalogHandler) GetTranslations(c *gin.Context) {
	lang := i18n.Parse(c.Param("lang"))

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"language": string(lang),
			"strings":  i18n.Table(lang),
		},
	})
}
