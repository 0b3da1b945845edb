package api

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Role      string `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserProfile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Role      string `json:"role"`
}

// ExpenseRequest is the write shape for create and update calls.
type ExpenseRequest struct {
	ID          int64           `json:"id,omitempty"`
	CategoryID  *int64          `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expenseDate"`
	Note        string          `json:"note"`
}

type Expense struct {
	ID          int64           `json:"id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expenseDate"`
	Note        string          `json:"note"`
}

type ExpenseDetails struct {
	Expense
	Username string `json:"username"`
}

// AllUsersExpenses is the admin listing response: expense rows plus the
// requested usernames that matched nothing.
type AllUsersExpenses struct {
	Expenses          []ExpenseDetails `json:"expenses"`
	NotFoundUsernames []string         `json:"notFoundUsernames"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
