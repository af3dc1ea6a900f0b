package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/table-order/models"
	"github.com/yeremiapane/table-order/repository"
	"github.com/yeremiapane/table-order/utils"
)

type TableController struct {
	Repo repository.TableRepository
}

func NewTableController(repo repository.TableRepository) *TableController {
	return &TableController{Repo: repo}
}

func (tc *TableController) GetAllTables(c *gin.Context) {
	status := models.TableStatus(strings.ToLower(c.Query("status")))
	if status != "" && !status.Valid() {
		respondServiceError(c, models.NewValidationError("status", "unknown table status "+string(status)))
		return
	}
	tables, err := tc.Repo.List(c.Request.Context(), status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, tables)
}

func (tc *TableController) GetTableByID(c *gin.Context) {
	table, err := tc.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, table)
}

func (tc *TableController) CreateTable(c *gin.Context) {
	var table models.Table
	if !bindJSON(c, &table) {
		return
	}
	if err := table.ValidateNew(); err != nil {
		respondServiceError(c, err)
		return
	}
	table.ID = ""
	if err := tc.Repo.Create(c.Request.Context(), &table); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("New table created: %s (status=%s)", table.ID, table.Status)
	utils.RespondJSON(c, http.StatusCreated, table)
}

func (tc *TableController) UpdateTable(c *gin.Context) {
	var patch models.TablePatch
	if !bindJSON(c, &patch) {
		return
	}
	table, err := tc.Repo.Update(c.Request.Context(), c.Param("id"), func(t *models.Table) error {
		if err := patch.Validate(); err != nil {
			return err
		}
		patch.Apply(t)
		return nil
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, table)
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	table, err := tc.Repo.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Table deleted: %s", table.ID)
	utils.RespondJSON(c, http.StatusOK, table)
}
