package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyFullName     = errors.New("full name is required")
	ErrEmptyUsername     = errors.New("username is required")
	ErrEmptyPassword     = errors.New("password is required")
	ErrWeakPassword      = errors.New("password must be at least 6 characters")
	ErrInvalidAge        = errors.New("age must be greater than zero")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
)

// Customer represents a registered shopper. WalletBalance never goes below zero.
type Customer struct {
	ID            int64
	FullName      string
	Username      string
	PasswordHash  string
	Age           int32
	Address       string
	Gender        string
	MaritalStatus string
	WalletBalance decimal.Decimal
	IsAdmin       bool
}

// NewCustomer builds a customer with a zero wallet, ensuring required invariants.
// The password hash is supplied by the application layer; the domain never sees
// plaintext credentials.
func NewCustomer(id int64, fullName, username, passwordHash string, age int32) (*Customer, error) {
	c := &Customer{ID: id, WalletBalance: decimal.Zero}
	if err := c.SetFullName(fullName); err != nil {
		return nil, err
	}
	if err := c.SetUsername(username); err != nil {
		return nil, err
	}
	if err := c.SetPasswordHash(passwordHash); err != nil {
		return nil, err
	}
	if err := c.SetAge(age); err != nil {
		return nil, err
	}
	return c, nil
}

// ValidatePassword enforces basic plaintext password strength before hashing.
func ValidatePassword(password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < 6 {
		return ErrWeakPassword
	}
	return nil
}

// SetFullName trims and validates the display name.
func (c *Customer) SetFullName(fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return ErrEmptyFullName
	}
	c.FullName = fullName
	return nil
}

// SetUsername trims and validates the login name.
func (c *Customer) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}
	c.Username = username
	return nil
}

// SetPasswordHash stores the hashed credential.
func (c *Customer) SetPasswordHash(hash string) error {
	if strings.TrimSpace(hash) == "" {
		return ErrEmptyPassword
	}
	c.PasswordHash = hash
	return nil
}

// SetAge validates the customer age.
func (c *Customer) SetAge(age int32) error {
	if age <= 0 {
		return ErrInvalidAge
	}
	c.Age = age
	return nil
}

// UpdateProfile applies optional profile fields.
func (c *Customer) UpdateProfile(address, gender, maritalStatus string) {
	c.Address = strings.TrimSpace(address)
	c.Gender = strings.TrimSpace(gender)
	c.MaritalStatus = strings.TrimSpace(maritalStatus)
}

// CreditWallet adds funds to the wallet.
func (c *Customer) CreditWallet(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	c.WalletBalance = c.WalletBalance.Add(amount)
	return nil
}

// DebitWallet removes funds, refusing to drive the balance negative.
func (c *Customer) DebitWallet(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if c.WalletBalance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	c.WalletBalance = c.WalletBalance.Sub(amount)
	return nil
}

// Validate re-applies core invariants for persistence.
func (c *Customer) Validate() error {
	if err := c.SetFullName(c.FullName); err != nil {
		return err
	}
	if err := c.SetUsername(c.Username); err != nil {
		return err
	}
	if err := c.SetPasswordHash(c.PasswordHash); err != nil {
		return err
	}
	if err := c.SetAge(c.Age); err != nil {
		return err
	}
	if c.WalletBalance.IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}
