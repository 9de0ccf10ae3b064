package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/account-service/internal/models"
	"github.com/SAP-F-2025/account-service/internal/services"
	"github.com/SAP-F-2025/account-service/internal/utils"
)

// DirectoryHandler serves the public teacher and donor listings.
type DirectoryHandler struct {
	BaseHandler
	directoryService services.DirectoryService
}

func NewDirectoryHandler(directoryService services.DirectoryService, logger utils.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		BaseHandler:      NewBaseHandler(logger),
		directoryService: directoryService,
	}
}

// ListTeachers lists the teacher directory
// @Summary List teachers
// @Tags directory
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} services.DirectoryPage
// @Failure 500 {object} ErrorResponse
// @Router /teachers [get]
func (h *DirectoryHandler) ListTeachers(c *gin.Context) {
	h.list(c, models.RoleTeacher)
}

// ListDonors lists the donor directory
// @Summary List donors
// @Tags directory
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} services.DirectoryPage
// @Failure 500 {object} ErrorResponse
// @Router /donors [get]
func (h *DirectoryHandler) ListDonors(c *gin.Context) {
	h.list(c, models.RoleDonor)
}

func (h *DirectoryHandler) list(c *gin.Context, role models.Role) {
	h.LogRequest(c, "Listing directory", "role", role)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	result, err := h.directoryService.List(c.Request.Context(), role, page, size)
	if err != nil {
		h.LogError(c, err, "Failed to list directory", "role", role)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to list directory",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportTeachers exports the teacher roster as a spreadsheet
// @Summary Export teachers
// @Tags directory
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 500 {object} ErrorResponse
// @Router /teachers/export [get]
func (h *DirectoryHandler) ExportTeachers(c *gin.Context) {
	h.export(c, models.RoleTeacher)
}

// ExportDonors exports the donor roster as a spreadsheet
// @Summary Export donors
// @Tags directory
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 500 {object} ErrorResponse
// @Router /donors/export [get]
func (h *DirectoryHandler) ExportDonors(c *gin.Context) {
	h.export(c, models.RoleDonor)
}

func (h *DirectoryHandler) export(c *gin.Context, role models.Role) {
	h.LogRequest(c, "Exporting roster", "role", role)

	data, err := h.directoryService.ExportRoster(c.Request.Context(), role)
	if err != nil {
		h.LogError(c, err, "Failed to export roster", "role", role)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to export roster",
		})
		return
	}

	filename := fmt.Sprintf("%s.xlsx", role.StorageKey())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
