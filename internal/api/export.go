package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/studycollab/collab-back/internal/db"
	"github.com/studycollab/collab-back/internal/excel"
)

// ExportBookings godoc
// @Summary      Download every booking as an .xlsx workbook
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} file
// @Security     BearerAuth
// @Router       /admin/export/bookings [get]
func ExportBookings(c *gin.Context) {
	bookings, err := db.ListAllBookings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	f, err := excel.BuildBookingsWorkbook(bookings)
	if err != nil {
		zap.S().Errorw("bookings export failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		zap.S().Errorw("bookings export write failed", "error", err)
	}
}
