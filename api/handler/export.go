package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prospectio/leadscout/export"
	"github.com/prospectio/leadscout/models"
	"github.com/prospectio/leadscout/storage"
)

// exportLimit caps how many leads one export request returns.
const exportLimit = 10000

// Export returns a handler for GET /api/v1/export.
//
// The same search filters as GET /api/v1/leads apply; format is csv
// (default), json, or xlsx.
func Export(repo storage.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		format := export.Format(c.DefaultQuery("format", "csv"))
		switch format {
		case export.FormatCSV, export.FormatJSON, export.FormatXLSX:
		default:
			bindError(c, fmt.Errorf("unsupported export format %q", format))
			return
		}

		var q models.SearchQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			bindError(c, err)
			return
		}
		q.Defaults()
		q.Limit = exportLimit
		q.Offset = 0

		leads, _, err := repo.Search(c.Request.Context(), q)
		if err != nil {
			detail := errorDetail(err)
			c.JSON(statusFor(detail), gin.H{"success": false, "error": detail})
			return
		}

		filename := fmt.Sprintf("leads-%s.%s", time.Now().Format("20060102"), format)
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Header("Content-Type", export.ContentType(format))
		c.Status(http.StatusOK)

		if err := export.Write(c.Writer, format, leads); err != nil {
			// Headers are already out; all we can do is drop the connection.
			c.Abort()
		}
	}
}
