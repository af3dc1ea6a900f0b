package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-order/config"
	"github.com/yeremiapane/table-order/controllers"
	"github.com/yeremiapane/table-order/middlewares"
	"github.com/yeremiapane/table-order/models"
	"github.com/yeremiapane/table-order/repository"
	"github.com/yeremiapane/table-order/services"
	"github.com/yeremiapane/table-order/utils"
)

// Deps are the services the routes are wired to.
type Deps struct {
	Orders *services.OrderService
	Menu   repository.MenuRepository
	Tables repository.TableRepository
	Admin  models.AdminUser
	Tokens *utils.TokenManager
}

// NewDeps builds the gorm backed stores and the order service.
func NewDeps(db *gorm.DB, cfg *config.Config, admin models.AdminUser, tokens *utils.TokenManager, publisher services.EventPublisher) Deps {
	lifecycle := models.Lifecycle{Strict: cfg.StrictTransitions}
	return Deps{
		Orders: services.NewOrderService(repository.NewOrderRepository(db), lifecycle, publisher),
		Menu:   repository.NewMenuRepository(db),
		Tables: repository.NewTableRepository(db),
		Admin:  admin,
		Tokens: tokens,
	}
}

func SetupRouter(cfg *config.Config, d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigin))
	r.Use(middlewares.NewRateLimiter(cfg.RateLimit, cfg.RateWindow).RateLimit())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	orderCtrl := controllers.NewOrderController(d.Orders)
	menuCtrl := controllers.NewMenuController(d.Menu)
	categoryCtrl := controllers.NewMenuCategoryController(d.Menu)
	tableCtrl := controllers.NewTableController(d.Tables)
	adminCtrl := controllers.NewAdminController(d.Admin, d.Tokens, d.Orders)

	gate := middlewares.AdminGate(cfg.AuthRequired, d.Tokens)

	api := r.Group("/api")
	{
		orders := api.Group("/orders")
		{
			orders.GET("", orderCtrl.GetAllOrders)
			orders.POST("", orderCtrl.CreateOrder)
			orders.GET("/statuses", orderCtrl.GetStatuses)
			orders.GET("/:id", orderCtrl.GetOrderByID)
			orders.GET("/:id/status", orderCtrl.GetOrderStatus)
			orders.PUT("/:id", gate, orderCtrl.UpdateOrder)
			orders.PATCH("/:id", gate, orderCtrl.UpdateOrder)
		}

		menu := api.Group("/menu")
		{
			menu.GET("", menuCtrl.GetAllMenus)
			menu.GET("/categories", categoryCtrl.GetAllCategories)
			menu.GET("/:id", menuCtrl.GetMenuByID)
			menu.POST("", gate, menuCtrl.CreateMenu)
			menu.PUT("/:id", gate, menuCtrl.UpdateMenu)
			menu.PATCH("/:id", gate, menuCtrl.UpdateMenu)
			menu.DELETE("/:id", gate, menuCtrl.DeleteMenu)
		}

		tables := api.Group("/tables")
		{
			tables.GET("", tableCtrl.GetAllTables)
			tables.GET("/:id", tableCtrl.GetTableByID)
			tables.POST("", gate, tableCtrl.CreateTable)
			tables.PUT("/:id", gate, tableCtrl.UpdateTable)
			tables.PATCH("/:id", gate, tableCtrl.UpdateTable)
			tables.DELETE("/:id", gate, tableCtrl.DeleteTable)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/login", middlewares.NewLoginLimiter(cfg.LoginRatePerMinute).Middleware(), adminCtrl.Login)
			admin.POST("/logout", middlewares.AuthMiddleware(d.Tokens), adminCtrl.Logout)
			admin.GET("/session", adminCtrl.Session)
			admin.GET("/dashboard", gate, adminCtrl.GetDashboardStats)
		}
	}

	return r
}
