package mealplan

import (
	"net/http"

	mealplanService "mealplan-generator/internal/core/mealplan"
	"mealplan-generator/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateRequest 從傳單圖片生成計畫的請求
type GenerateRequest struct {
	Images      []string           `json:"images" binding:"required"` // base64、data URI 或 URL
	Preferences common.Preferences `json:"preferences"`
}

// FlyersRequest 僅做傳單辨識的請求
type FlyersRequest struct {
	Images []string `json:"images" binding:"required"`
}

// FromProductsRequest 從校對後商品生成計畫的請求。
// 可傳完整 flyers（保留店家），或只傳 products 清單。
type FromProductsRequest struct {
	Flyers      []common.FlyerResult `json:"flyers,omitempty"`
	Products    []common.Product     `json:"products,omitempty"`
	Preferences common.Preferences   `json:"preferences"`
}

// GroceryListRequest 從既有計畫重新導出採買清單的請求
type GroceryListRequest struct {
	Plan   common.MealPlan      `json:"plan" binding:"required"`
	Flyers []common.FlyerResult `json:"flyers,omitempty"`
}

// ToggleRequest 切換採買項目勾選狀態的請求
type ToggleRequest struct {
	GroceryList common.GroceryList `json:"grocery_list" binding:"required"`
	ItemID      string             `json:"item_id" binding:"required"`
}

// Handler 餐飲計畫處理程序
type Handler struct {
	service *mealplanService.Service
}

// NewHandler 創建新的餐飲計畫處理程序
func NewHandler(service *mealplanService.Service) *Handler {
	return &Handler{service: service}
}

// HandleGenerate 傳單圖片 → 完整一週計畫（含採買清單）
func (h *Handler) HandleGenerate(c *gin.Context) {
	requestID := ensureRequestID(c)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "code": common.ErrCodeInvalidRequest})
		return
	}
	if len(req.Images) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one image is required", "code": common.ErrCodeInvalidRequest})
		return
	}

	common.LogInfo("開始處理計畫生成請求",
		zap.String("request_id", requestID),
		zap.Int("images", len(req.Images)),
		zap.Int("family_size", req.Preferences.FamilySize),
	)

	plan, err := h.service.GeneratePlan(c.Request.Context(), req.Images, req.Preferences)
	if err != nil {
		writeServiceError(c, err, requestID)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// HandleFlyers 傳單圖片 → 辨識結果，供前端先行校對商品
func (h *Handler) HandleFlyers(c *gin.Context) {
	requestID := ensureRequestID(c)

	var req FlyersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "code": common.ErrCodeInvalidRequest})
		return
	}
	if len(req.Images) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one image is required", "code": common.ErrCodeInvalidRequest})
		return
	}

	common.LogInfo("開始處理傳單辨識請求",
		zap.String("request_id", requestID),
		zap.Int("images", len(req.Images)),
	)

	flyers := h.service.ExtractFlyers(c.Request.Context(), req.Images)

	c.JSON(http.StatusOK, gin.H{"flyers": flyers})
}

// HandleFromProducts 校對後商品 → 完整一週計畫
func (h *Handler) HandleFromProducts(c *gin.Context) {
	requestID := ensureRequestID(c)

	var req FromProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "code": common.ErrCodeInvalidRequest})
		return
	}

	flyers := req.Flyers
	if len(flyers) == 0 && len(req.Products) > 0 {
		flyers = []common.FlyerResult{{
			StoreName: common.UnknownStore,
			Products:  req.Products,
		}}
	}

	common.LogInfo("開始處理商品生成計畫請求",
		zap.String("request_id", requestID),
		zap.Int("flyers", len(flyers)),
	)

	plan, err := h.service.GeneratePlanFromFlyers(c.Request.Context(), flyers, req.Preferences)
	if err != nil {
		writeServiceError(c, err, requestID)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// HandleGroceryList 既有計畫 → 採買清單（ID 穩定，可重複導出）
func (h *Handler) HandleGroceryList(c *gin.Context) {
	var req GroceryListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "code": common.ErrCodeInvalidRequest})
		return
	}

	list := h.service.BuildGroceryList(req.Plan, req.Flyers)

	c.JSON(http.StatusOK, list)
}

// HandleToggleItem 切換採買項目勾選狀態
func (h *Handler) HandleToggleItem(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "code": common.ErrCodeInvalidRequest})
		return
	}

	list := h.service.ToggleGroceryItem(req.GroceryList, req.ItemID)

	c.JSON(http.StatusOK, list)
}

// ensureRequestID 補齊缺少的 X-Request-ID
func ensureRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}

// writeServiceError 偏好驗證錯誤回 400，其餘視為服務端問題
func writeServiceError(c *gin.Context, err error, requestID string) {
	if common.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": common.ErrCodeInvalidRequest})
		return
	}

	common.LogError("計畫生成失敗",
		zap.Error(err),
		zap.String("request_id", requestID),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate meal plan", "code": common.ErrCodeInternalError})
}
