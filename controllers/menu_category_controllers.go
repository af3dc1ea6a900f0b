package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/table-order/repository"
	"github.com/yeremiapane/table-order/utils"
)

type MenuCategoryController struct {
	Repo repository.MenuRepository
}

func NewMenuCategoryController(repo repository.MenuRepository) *MenuCategoryController {
	return &MenuCategoryController{Repo: repo}
}

// GetAllCategories lists the distinct menu categories with item counts.
func (mcc *MenuCategoryController) GetAllCategories(c *gin.Context) {
	categories, err := mcc.Repo.Categories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, categories)
}
