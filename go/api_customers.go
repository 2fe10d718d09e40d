package marketserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	customerdomain "github.com/marketcore/go-gin-market-server/internal/domains/customers/domain"
	customerports "github.com/marketcore/go-gin-market-server/internal/domains/customers/ports"
)

// CustomerAPI implements the customer account endpoints.
type CustomerAPI struct {
	service customerports.Service
}

// NewCustomerAPI wires dependencies.
func NewCustomerAPI(service customerports.Service) CustomerAPI {
	return CustomerAPI{service: service}
}

// Customer is the transport representation of an account. The password hash
// never leaves the service boundary.
type Customer struct {
	ID            int64           `json:"id"`
	FullName      string          `json:"full_name"`
	Username      string          `json:"username"`
	Age           int32           `json:"age"`
	Address       string          `json:"address,omitempty"`
	Gender        string          `json:"gender,omitempty"`
	MaritalStatus string          `json:"marital_status,omitempty"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
	IsAdmin       bool            `json:"is_admin"`
}

type registerCustomerRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	Username      string `json:"username" binding:"required"`
	Password      string `json:"password" binding:"required"`
	Age           int32  `json:"age" binding:"required"`
	Address       string `json:"address"`
	Gender        string `json:"gender"`
	MaritalStatus string `json:"marital_status"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateCustomerRequest struct {
	FullName      *string `json:"full_name"`
	Age           *int32  `json:"age"`
	Address       *string `json:"address"`
	Gender        *string `json:"gender"`
	MaritalStatus *string `json:"marital_status"`
}

type walletAmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

func fromDomainCustomer(customer *customerdomain.Customer) Customer {
	return Customer{
		ID:            customer.ID,
		FullName:      customer.FullName,
		Username:      customer.Username,
		Age:           customer.Age,
		Address:       customer.Address,
		Gender:        customer.Gender,
		MaritalStatus: customer.MaritalStatus,
		WalletBalance: customer.WalletBalance,
		IsAdmin:       customer.IsAdmin,
	}
}

// Post /customers/register
// Create a customer account
func (api *CustomerAPI) Register(c *gin.Context) {
	var payload registerCustomerRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	customer, err := api.service.Register(c.Request.Context(), customerports.RegisterInput{
		FullName:      payload.FullName,
		Username:      payload.Username,
		Password:      payload.Password,
		Age:           payload.Age,
		Address:       payload.Address,
		Gender:        payload.Gender,
		MaritalStatus: payload.MaritalStatus,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomainCustomer(customer))
}

// Post /customers/login
// Exchange credentials for a bearer token
func (api *CustomerAPI) Login(c *gin.Context) {
	var payload loginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	token, err := api.service.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": token})
}

// Post /customers/logout
// Invalidate the caller's session
func (api *CustomerAPI) Logout(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}
	api.service.Logout(c.Request.Context(), identity.Username)
	c.JSON(http.StatusOK, gin.H{"message": "logout successful"})
}

// Get /customers
// List all customer accounts
func (api *CustomerAPI) List(c *gin.Context) {
	customers, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result := make([]Customer, 0, len(customers))
	for _, customer := range customers {
		result = append(result, fromDomainCustomer(customer))
	}
	c.JSON(http.StatusOK, result)
}

// Get /customers/:username
// Get a customer account by login name
func (api *CustomerAPI) GetByUsername(c *gin.Context) {
	customer, err := api.service.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainCustomer(customer))
}

// Put /customers/:username
// Update profile fields
func (api *CustomerAPI) Update(c *gin.Context) {
	var payload updateCustomerRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	customer, err := api.service.Update(c.Request.Context(), c.Param("username"), customerports.UpdateProfileInput{
		FullName:      payload.FullName,
		Age:           payload.Age,
		Address:       payload.Address,
		Gender:        payload.Gender,
		MaritalStatus: payload.MaritalStatus,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainCustomer(customer))
}

// Delete /customers/:username
// Remove an account and its sessions
func (api *CustomerAPI) Delete(c *gin.Context) {
	username := c.Param("username")
	if strings.TrimSpace(username) == "" {
		respondError(c, http.StatusBadRequest, errors.New("username is required"))
		return
	}
	if err := api.service.Delete(c.Request.Context(), username); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
}

// Post /customers/:username/wallet/charge
// Top up a wallet
func (api *CustomerAPI) ChargeWallet(c *gin.Context) {
	var payload walletAmountRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	customer, err := api.service.ChargeWallet(c.Request.Context(), c.Param("username"), payload.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainCustomer(customer))
}

// Post /customers/:username/wallet/deduct
// Deduct from a wallet
func (api *CustomerAPI) DeductWallet(c *gin.Context) {
	var payload walletAmountRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	customer, err := api.service.DeductWallet(c.Request.Context(), c.Param("username"), payload.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainCustomer(customer))
}
