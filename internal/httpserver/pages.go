package httpserver

import (
	"bytes"
	"net/http"
	"strconv"

	"storefront-tagging/internal/tagging"
	"github.com/gin-gonic/gin"
)

const htmlContentType = "text/html; charset=utf-8"

// pageQuery is the request-state of one storefront page render, as
// reported by the theme or edge-include layer.
type pageQuery struct {
	ProductID  int64  `form:"product_id"`
	Category   string `form:"category"`
	CartID     string `form:"cart_id"`
	CustomerID int64  `form:"customer_id"`
	CartPage   bool   `form:"cart_page"`
	SearchPage bool   `form:"search"`
	StaticPage bool   `form:"page"`
}

func renderPageHandler(svc *tagging.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q pageQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page query"})
			return
		}
		view := tagging.PageView{
			ProductID:    q.ProductID,
			CategorySlug: q.Category,
			CartID:       q.CartID,
			CustomerID:   q.CustomerID,
			CartPage:     q.CartPage,
			SearchPage:   q.SearchPage,
			StaticPage:   q.StaticPage,
		}

		var buf bytes.Buffer
		if err := svc.RenderPage(c.Request.Context(), &buf, view); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "render failed"})
			return
		}
		c.Data(http.StatusOK, htmlContentType, buf.Bytes())
	}
}

func productFragmentHandler(svc *tagging.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}
		var buf bytes.Buffer
		if err := svc.TagProduct(c.Request.Context(), &buf, id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "render failed"})
			return
		}
		c.Data(http.StatusOK, htmlContentType, buf.Bytes())
	}
}

func categoryFragmentHandler(svc *tagging.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var buf bytes.Buffer
		if err := svc.TagCategory(c.Request.Context(), &buf, c.Param("slug")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "render failed"})
			return
		}
		c.Data(http.StatusOK, htmlContentType, buf.Bytes())
	}
}

func cartFragmentHandler(svc *tagging.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var buf bytes.Buffer
		if err := svc.TagCart(c.Request.Context(), &buf, c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "render failed"})
			return
		}
		c.Data(http.StatusOK, htmlContentType, buf.Bytes())
	}
}

func customerFragmentHandler(svc *tagging.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
			return
		}
		var buf bytes.Buffer
		if err := svc.TagCustomer(c.Request.Context(), &buf, id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "render failed"})
			return
		}
		c.Data(http.StatusOK, htmlContentType, buf.Bytes())
	}
}

// orderHookRequest is the order-finalization event payload. The binding
// requirement is the shape guard: malformed payloads never reach the
// tagging pipeline.
type orderHookRequest struct {
	OrderID int64 `json:"order_id" binding:"required"`
}

func orderHookHandler(svc *tagging.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderHookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload"})
			return
		}
		var buf bytes.Buffer
		if err := svc.TagOrder(c.Request.Context(), &buf, req.OrderID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "render failed"})
			return
		}
		c.Data(http.StatusOK, htmlContentType, buf.Bytes())
	}
}
