package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"storefront-tagging/internal/domain"
	"storefront-tagging/internal/repository/settings"
	"github.com/gin-gonic/gin"
)

type settingsResponse struct {
	AccountID          string `json:"account_id"`
	ServerAddress      string `json:"server_address"`
	UseDefaultElements bool   `json:"use_default_elements"`
}

// updateSettingsRequest updates only the provided keys, mirroring the
// per-setting validation of the admin screen.
type updateSettingsRequest struct {
	AccountID          *string `json:"account_id"`
	ServerAddress      *string `json:"server_address"`
	UseDefaultElements *bool   `json:"use_default_elements"`
}

func getSettingsHandler(repo settings.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := loadSettings(c.Request.Context(), repo)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load settings"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func putSettingsHandler(repo settings.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateSettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid settings payload"})
			return
		}

		var problems []string
		if req.AccountID != nil && strings.TrimSpace(*req.AccountID) == "" {
			problems = append(problems, "account id is required")
		}
		if req.ServerAddress != nil && !isValidServerAddress(*req.ServerAddress) {
			problems = append(problems, "invalid server address; the address cannot include the protocol")
		}
		if len(problems) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": problems})
			return
		}

		ctx := c.Request.Context()
		updates := map[string]*string{
			settings.KeyAccountID:     req.AccountID,
			settings.KeyServerAddress: req.ServerAddress,
		}
		for key, value := range updates {
			if value == nil {
				continue
			}
			if err := repo.Set(ctx, key, strings.TrimSpace(*value)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "save settings"})
				return
			}
		}
		if req.UseDefaultElements != nil {
			value := "0"
			if *req.UseDefaultElements {
				value = "1"
			}
			if err := repo.Set(ctx, settings.KeyUseDefaultElements, value); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "save settings"})
				return
			}
		}

		resp, err := loadSettings(ctx, repo)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load settings"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func loadSettings(ctx context.Context, repo settings.Repository) (settingsResponse, error) {
	resp := settingsResponse{}
	var err error
	if resp.AccountID, err = getOrEmpty(ctx, repo, settings.KeyAccountID); err != nil {
		return resp, err
	}
	if resp.ServerAddress, err = getOrEmpty(ctx, repo, settings.KeyServerAddress); err != nil {
		return resp, err
	}
	if resp.ServerAddress == "" {
		resp.ServerAddress = settings.DefaultServerAddress
	}
	flag, err := getOrEmpty(ctx, repo, settings.KeyUseDefaultElements)
	if err != nil {
		return resp, err
	}
	// Missing flag falls back to the install default.
	resp.UseDefaultElements = flag == "1" || flag == ""
	return resp, nil
}

func getOrEmpty(ctx context.Context, repo settings.Repository, key string) (string, error) {
	value, err := repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// isValidServerAddress accepts a bare host (optionally with a path) and
// rejects anything carrying its own protocol. The address is valid when
// prefixing it with http:// yields a URL that round-trips unchanged.
func isValidServerAddress(addr string) bool {
	addr = strings.TrimSpace(addr)
	if addr == "" || strings.Contains(addr, "://") {
		return false
	}
	u, err := url.Parse("http://" + addr)
	if err != nil || u.Host == "" {
		return false
	}
	return u.String() == "http://"+addr
}
