package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter mounts the health check and the /api/v1 routes.
func NewRouter(scan *ScanHandler, analysis *AnalysisHandler, maxMultipartMemory int64) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())
	if maxMultipartMemory > 0 {
		router.MaxMultipartMemory = maxMultipartMemory
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Soil Health Card Scanner",
		})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/crops", analysis.ListCrops)

		scanGroup := api.Group("/scan", RequireUser())
		{
			scanGroup.POST("/ocr", scan.ScanOCR)
			scanGroup.POST("/vision", scan.ScanVision)
			scanGroup.POST("/text", scan.ScanText)
			scanGroup.POST("/verify", analysis.Verify)
		}

		scans := api.Group("/scans", RequireUser())
		{
			scans.GET("", analysis.ListScans)
			scans.GET("/export", analysis.ExportScans)
			scans.GET("/:id", analysis.GetScan)
		}
	}
	return router
}
