package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/table-order/models"
	"github.com/yeremiapane/table-order/repository"
	"github.com/yeremiapane/table-order/utils"
)

type MenuController struct {
	Repo repository.MenuRepository
}

func NewMenuController(repo repository.MenuRepository) *MenuController {
	return &MenuController{Repo: repo}
}

// menuID parses :id. A non-numeric id cannot exist, so it reports not found.
func menuID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, models.ErrNotFound)
		return 0, false
	}
	return uint(id), true
}

func (mc *MenuController) GetAllMenus(c *gin.Context) {
	items, err := mc.Repo.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, items)
}

func (mc *MenuController) GetMenuByID(c *gin.Context) {
	id, ok := menuID(c)
	if !ok {
		return
	}
	item, err := mc.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, item)
}

func (mc *MenuController) CreateMenu(c *gin.Context) {
	var item models.MenuItem
	if !bindJSON(c, &item) {
		return
	}
	if err := item.ValidateNew(); err != nil {
		respondServiceError(c, err)
		return
	}
	item.ID = 0
	if err := mc.Repo.Create(c.Request.Context(), &item); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.WithField("menu_id", item.ID).Infof("Menu item created: %s", item.Name)
	utils.RespondJSON(c, http.StatusCreated, item)
}

func (mc *MenuController) UpdateMenu(c *gin.Context) {
	id, ok := menuID(c)
	if !ok {
		return
	}
	var patch models.MenuItemPatch
	if !bindJSON(c, &patch) {
		return
	}
	item, err := mc.Repo.Update(c.Request.Context(), id, func(m *models.MenuItem) error {
		if err := patch.Validate(); err != nil {
			return err
		}
		patch.Apply(m)
		return nil
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, item)
}

// DeleteMenu responds with the removed item.
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	id, ok := menuID(c)
	if !ok {
		return
	}
	item, err := mc.Repo.Delete(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.WithField("menu_id", id).Info("Menu item deleted")
	utils.RespondJSON(c, http.StatusOK, item)
}
