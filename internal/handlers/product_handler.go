package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/barberflowapp/barberflow-api/internal/audit"
	"github.com/barberflowapp/barberflow-api/internal/httperr"
	"github.com/barberflowapp/barberflow-api/internal/httpresp"
	"github.com/barberflowapp/barberflow-api/internal/models"
)

type ProductHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewProductHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *ProductHandler {
	return &ProductHandler{db: db, audit: auditDispatcher}
}

func (h *ProductHandler) dispatch(c *gin.Context, action string, entityID uint) {
	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   action,
		Entity:   "product",
		EntityID: &entityID,
	})
}

type ProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	MinStock int             `json:"min_stock"`
}

// ProductView acrescenta o alerta de estoque baixo à listagem.
type ProductView struct {
	models.Product
	LowStock bool `json:"low_stock"`
}

func (h *ProductHandler) List(c *gin.Context) {
	var products []models.Product
	if err := h.db.Order("name ASC").Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "Não foi possível listar os produtos.")
		return
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, ProductView{
			Product:  products[i],
			LowStock: products[i].LowStock(),
		})
	}

	httpresp.List(c, views)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	product := models.Product{
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		MinStock: req.MinStock,
	}

	if err := h.db.Create(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_create_product", "Não foi possível criar o produto.")
		return
	}

	h.dispatch(c, "product_created", product.ID)
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var product models.Product
	if err := h.db.First(&product, id).Error; err != nil {
		httperr.NotFound(c, "product_not_found", "Produto não encontrado.")
		return
	}

	product.Name = req.Name
	product.Price = req.Price
	product.Stock = req.Stock
	product.MinStock = req.MinStock

	if err := h.db.Save(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "Não foi possível atualizar o produto.")
		return
	}

	h.dispatch(c, "product_updated", product.ID)
	httpresp.OK(c, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	if err := h.db.Delete(&models.Product{}, id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_product", "Não foi possível remover o produto.")
		return
	}

	h.dispatch(c, "product_deleted", uint(id))
	c.Status(http.StatusNoContent)
}
