package router

import (
	"net/http"

	"github.com/deppfellow/todo-api/internal/handler"
	"github.com/deppfellow/todo-api/internal/model"
	"github.com/labstack/echo/v4"
)

func registerItemRoutes(r *echo.Echo, h *handler.Handlers) {
	items := r.Group("/items")

	items.GET("", handler.Handle(h.Item.Handler, h.Item.ListItems, http.StatusOK, &model.ListItemsRequest{}))
	items.POST("", handler.Handle(h.Item.Handler, h.Item.CreateItem, http.StatusCreated, &model.CreateItemRequest{}))
	items.GET("/:id", handler.Handle(h.Item.Handler, h.Item.GetItem, http.StatusOK, &model.ItemIDRequest{}))
	items.PUT("/:id", handler.Handle(h.Item.Handler, h.Item.UpdateItem, http.StatusOK, &model.UpdateItemRequest{}))
	items.DELETE("/:id", handler.HandleNoContent(h.Item.Handler, h.Item.DeleteItem, http.StatusOK, &model.ItemIDRequest{}))
}
