package marketserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customerports "github.com/marketcore/go-gin-market-server/internal/domains/customers/ports"
)

// Route binds an HTTP method and path to a handler chain.
type Route struct {
	Name     string
	Method   string
	Pattern  string
	Handlers gin.HandlersChain
}

// ApiHandleFunctions groups the handler implementations per API section.
type ApiHandleFunctions struct {
	CustomerAPI CustomerAPI
	GoodsAPI    GoodsAPI
	SalesAPI    SalesAPI
	ReviewAPI   ReviewAPI
}

// NewRouter returns a gin engine with all routes registered. The customer
// service backs the bearer-token middleware applied to every request.
func NewRouter(handleFunctions ApiHandleFunctions, customers customerports.Service) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions, customers)
}

// NewRouterWithGinEngine adds all routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, customers customerports.Service) *gin.Engine {
	router.Use(BearerAuth(customers))
	for _, route := range getRoutes(handleFunctions) {
		if len(route.Handlers) == 0 {
			continue
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.Handlers...)
		case http.MethodPost:
			router.POST(route.Pattern, route.Handlers...)
		case http.MethodPut:
			router.PUT(route.Pattern, route.Handlers...)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.Handlers...)
		}
	}
	return router
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"Register",
			http.MethodPost,
			"/customers/register",
			gin.HandlersChain{handleFunctions.CustomerAPI.Register},
		},
		{
			"Login",
			http.MethodPost,
			"/customers/login",
			gin.HandlersChain{handleFunctions.CustomerAPI.Login},
		},
		{
			"Logout",
			http.MethodPost,
			"/customers/logout",
			gin.HandlersChain{requireAuthenticated(), handleFunctions.CustomerAPI.Logout},
		},
		{
			"ListCustomers",
			http.MethodGet,
			"/customers",
			gin.HandlersChain{requireAdmin(), handleFunctions.CustomerAPI.List},
		},
		{
			"GetCustomer",
			http.MethodGet,
			"/customers/:username",
			gin.HandlersChain{requireOwnerOrAdmin("username"), handleFunctions.CustomerAPI.GetByUsername},
		},
		{
			"UpdateCustomer",
			http.MethodPut,
			"/customers/:username",
			gin.HandlersChain{requireOwnerOrAdmin("username"), handleFunctions.CustomerAPI.Update},
		},
		{
			"DeleteCustomer",
			http.MethodDelete,
			"/customers/:username",
			gin.HandlersChain{requireOwnerOrAdmin("username"), handleFunctions.CustomerAPI.Delete},
		},
		{
			"ChargeWallet",
			http.MethodPost,
			"/customers/:username/wallet/charge",
			gin.HandlersChain{requireAdmin(), handleFunctions.CustomerAPI.ChargeWallet},
		},
		{
			"DeductWallet",
			http.MethodPost,
			"/customers/:username/wallet/deduct",
			gin.HandlersChain{requireAdmin(), handleFunctions.CustomerAPI.DeductWallet},
		},
		{
			"PurchaseHistory",
			http.MethodGet,
			"/customers/:username/purchases",
			gin.HandlersChain{requireOwnerOrAdmin("username"), handleFunctions.SalesAPI.PurchaseHistory},
		},
		{
			"ListCustomerReviews",
			http.MethodGet,
			"/customers/:username/reviews",
			gin.HandlersChain{requireOwnerOrAdmin("username"), handleFunctions.ReviewAPI.ListByCustomer},
		},
		{
			"AddGoods",
			http.MethodPost,
			"/goods",
			gin.HandlersChain{requireAdmin(), handleFunctions.GoodsAPI.Add},
		},
		{
			"ListGoods",
			http.MethodGet,
			"/goods",
			gin.HandlersChain{handleFunctions.GoodsAPI.List},
		},
		{
			"GetGoods",
			http.MethodGet,
			"/goods/:goodsId",
			gin.HandlersChain{handleFunctions.GoodsAPI.Get},
		},
		{
			"UpdateGoods",
			http.MethodPut,
			"/goods/:goodsId",
			gin.HandlersChain{requireAdmin(), handleFunctions.GoodsAPI.Update},
		},
		{
			"DeleteGoods",
			http.MethodDelete,
			"/goods/:goodsId",
			gin.HandlersChain{requireAdmin(), handleFunctions.GoodsAPI.Delete},
		},
		{
			"DeductStock",
			http.MethodPost,
			"/goods/:goodsId/deduct",
			gin.HandlersChain{requireAdmin(), handleFunctions.GoodsAPI.DeductStock},
		},
		{
			"ListGoodsReviews",
			http.MethodGet,
			"/goods/:goodsId/reviews",
			gin.HandlersChain{handleFunctions.ReviewAPI.ListByGoods},
		},
		{
			"Purchase",
			http.MethodPost,
			"/sales",
			gin.HandlersChain{requireAuthenticated(), handleFunctions.SalesAPI.Purchase},
		},
		{
			"Recommend",
			http.MethodGet,
			"/recommendations",
			gin.HandlersChain{requireAuthenticated(), handleFunctions.SalesAPI.Recommend},
		},
		{
			"SubmitReview",
			http.MethodPost,
			"/reviews",
			gin.HandlersChain{requireAuthenticated(), handleFunctions.ReviewAPI.Submit},
		},
		{
			"GetReview",
			http.MethodGet,
			"/reviews/:reviewId",
			gin.HandlersChain{handleFunctions.ReviewAPI.Get},
		},
		{
			"UpdateReview",
			http.MethodPut,
			"/reviews/:reviewId",
			gin.HandlersChain{requireAuthenticated(), handleFunctions.ReviewAPI.Update},
		},
		{
			"DeleteReview",
			http.MethodDelete,
			"/reviews/:reviewId",
			gin.HandlersChain{requireAuthenticated(), handleFunctions.ReviewAPI.Delete},
		},
		{
			"ModerateReview",
			http.MethodPost,
			"/reviews/:reviewId/moderate",
			gin.HandlersChain{requireAdmin(), handleFunctions.ReviewAPI.Moderate},
		},
	}
}
