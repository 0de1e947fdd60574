package actions

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Transfer godoc
// swagger:route POST /token/transfer token transfer
// Transfer
//
// Move tokens between two accounts, applying the transfer tax
//
//	Consumes:
//	- application/x-www-form-urlencoded
//
//	Produces:
//	- application/json
//
//	Schemes: http, https
//
//	Responses:
//	  200: Events
//	  400: RequestErrorResp
func (actions *Actions) Transfer(c *gin.Context) {
	from := c.PostForm("from")
	to := c.PostForm("to")
	amount := c.PostForm("amount")

	events, err := actions.service.Transfer(from, to, amount)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, events)
}

// Approve godoc
// swagger:route POST /token/approve token approve
// Approve
//
// Set the allowance of a spender over the caller's tokens
func (actions *Actions) Approve(c *gin.Context) {
	owner := c.PostForm("owner")
	spender := c.PostForm("spender")
	amount := c.PostForm("amount")

	events, err := actions.service.Approve(owner, spender, amount)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, events)
}

// TransferStable godoc
// swagger:route POST /stable/transfer token transfer_stable
// Transfer stable coin
//
// Move stable coins between two accounts, fee free
func (actions *Actions) TransferStable(c *gin.Context) {
	from := c.PostForm("from")
	to := c.PostForm("to")
	amount := c.PostForm("amount")

	events, err := actions.service.TransferStable(from, to, amount)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, events)
}

// ApproveStable godoc
// swagger:route POST /stable/approve token approve_stable
// Approve stable coin
//
// Set the allowance of a spender over the caller's stable coins
func (actions *Actions) ApproveStable(c *gin.Context) {
	owner := c.PostForm("owner")
	spender := c.PostForm("spender")
	amount := c.PostForm("amount")

	events, err := actions.service.ApproveStable(owner, spender, amount)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetBalance godoc
// swagger:route GET /token/balance/:account token get_balance
// Get balance
//
// Get the token balance of an account
func (actions *Actions) GetBalance(c *gin.Context) {
	balance, err := actions.service.BalanceOf(c.Param("account"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, map[string]string{"balance": balance})
}

// GetStableBalance godoc
// swagger:route GET /stable/balance/:account token get_stable_balance
// Get stable coin balance
func (actions *Actions) GetStableBalance(c *gin.Context) {
	balance, err := actions.service.StableBalanceOf(c.Param("account"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, map[string]string{"balance": balance})
}

// GetAllowance godoc
// swagger:route GET /token/allowance token get_allowance
// Get allowance
func (actions *Actions) GetAllowance(c *gin.Context) {
	allowance, err := actions.service.Allowance(c.Query("owner"), c.Query("spender"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, map[string]string{"allowance": allowance})
}

// GetTotalSupply godoc
// swagger:route GET /token/supply token get_total_supply
// Get total supply
func (actions *Actions) GetTotalSupply(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]string{"total_supply": actions.service.TotalSupply()})
}

// GetTradingStatus godoc
// swagger:route GET /token/trading token get_trading_status
// Get trading status
func (actions *Actions) GetTradingStatus(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]bool{"trading_enabled": actions.service.IsTradingEnabled()})
}

// Buy godoc
// swagger:route POST /market/buy market buy
// Buy
//
// Swap base currency for tokens through the exchange pair
func (actions *Actions) Buy(c *gin.Context) {
	buyer := c.PostForm("buyer")
	amount := c.PostForm("amount")

	events, err := actions.service.Buy(buyer, amount)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, events)
}

// Sell godoc
// swagger:route POST /market/sell market sell
// Sell
//
// Swap tokens for base currency through the exchange pair
func (actions *Actions) Sell(c *gin.Context) {
	seller := c.PostForm("seller")
	amount := c.PostForm("amount")

	events, err := actions.service.Sell(seller, amount)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, events)
}
