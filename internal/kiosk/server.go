// Package kiosk exposes the scan triggers over HTTP for kiosk displays and
// phone camera apps.
package kiosk

import (
	"image"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"qrattend/internal/auth"
	"qrattend/internal/httpmiddleware"
	"qrattend/internal/scan"
)

// maxImageBytes bounds uploaded scan images.
const maxImageBytes = 8 << 20

// Options configures the router.
type Options struct {
	Orchestrator *scan.Orchestrator
	Gatherer     prometheus.Gatherer
	SigningKey   string
	Issuer       string
	RatePerMin   int
	// Healthy reports optional dependency health; nil means always healthy.
	Healthy func(c *gin.Context) gin.H
}

// NewRouter builds the kiosk HTTP API.
func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       24 * time.Hour,
	}))
	r.Use(httpmiddleware.SecurityHeaders())

	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}
	r.GET("/healthz", func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if opts.Healthy != nil {
			for k, v := range opts.Healthy(c) {
				body[k] = v
			}
		}
		c.JSON(http.StatusOK, body)
	})

	h := &handler{orch: opts.Orchestrator}
	limiter := httpmiddleware.NewScanLimiter(opts.RatePerMin, opts.RatePerMin)
	v1 := r.Group("/v1",
		auth.KioskAuth(opts.SigningKey, opts.Issuer),
		limiter.Middleware(kioskName),
	)
	v1.POST("/scans", h.scanText)
	v1.POST("/scans/image", h.scanImage)
	v1.POST("/scans/test", h.scanTestImage)
	return r
}

func kioskName(c *gin.Context) string {
	if v, ok := c.Get(auth.ClaimsKey); ok {
		if claims, ok := v.(auth.KioskClaims); ok {
			return claims.Kiosk
		}
	}
	return ""
}

type handler struct {
	orch *scan.Orchestrator
}

func (h *handler) scanText(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ticket, err := h.orch.HandleText(c.Request.Context(), req.Text)
	respond(c, ticket, err)
}

func (h *handler) scanImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes)
	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image field required"})
		return
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image: " + err.Error()})
		return
	}
	ticket, err := h.orch.ScanImage(c.Request.Context(), img)
	respond(c, ticket, err)
}

func (h *handler) scanTestImage(c *gin.Context) {
	ticket, err := h.orch.ScanFile(c.Request.Context(), "")
	respond(c, ticket, err)
}

// respond reports scan acceptance. The submission outcome arrives later as a
// notification, so success here means "accepted", not "recorded".
func respond(c *gin.Context, ticket scan.Ticket, err error) {
	if err != nil {
		category := scan.Category(err)
		status := http.StatusUnprocessableEntity
		if category == scan.CategoryOther {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": err.Error(), "category": category})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"scan_id": ticket.ScanID,
		"row":     ticket.Row.Values(),
	})
}
