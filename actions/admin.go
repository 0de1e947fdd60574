package actions

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gitlab.com/przworld-exchange/economy_core/model"
)

// EnableTrading godoc
// swagger:route POST /admin/trading/enable admin enable_trading
// Enable trading
//
// Flip the one-way trading switch
//
//	Security:
//	   AdminToken:
//
//	Responses:
//	  200: StringResp
//	  400: RequestErrorResp
func (actions *Actions) EnableTrading(c *gin.Context) {
	caller := c.PostForm("caller")

	if err := actions.service.EnableTrading(caller); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, "OK")
}

// TransferOwnership godoc
// swagger:route POST /admin/ownership admin transfer_ownership
// Transfer ownership
//
// Move the token contract ownership and the full owner balance
func (actions *Actions) TransferOwnership(c *gin.Context) {
	caller := c.PostForm("caller")
	newOwner := c.PostForm("new_owner")

	events, err := actions.service.TransferOwnership(caller, newOwner)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetFees godoc
// swagger:route GET /admin/fees admin get_fees
// Get fee rates
func (actions *Actions) GetFees(c *gin.Context) {
	c.JSON(http.StatusOK, actions.service.GetFeeRates())
}

// SetFees godoc
// swagger:route POST /admin/fees admin set_fees
// Set fee rates
//
// Replace the transfer tax table, subject to the hard cap
func (actions *Actions) SetFees(c *gin.Context) {
	caller := c.PostForm("caller")
	fees, ok := parseFeeRates(c)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid fee rates")
		return
	}

	if err := actions.service.SetFeeRates(caller, fees); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, fees)
}

// SetExempt godoc
// swagger:route POST /admin/exempt admin set_exempt
// Set tax exemption
func (actions *Actions) SetExempt(c *gin.Context) {
	caller := c.PostForm("caller")
	account := c.PostForm("account")
	exempt := c.PostForm("exempt") == "true"

	if err := actions.service.SetExempt(caller, account, exempt); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, "OK")
}

// SetRewardDistributor godoc
// swagger:route POST /admin/distributor admin set_reward_distributor
// Set reward distributor
//
// Repoint the reward fee funding target. Pointing it at the NFT
// collection starts feeding the reflections accumulator.
func (actions *Actions) SetRewardDistributor(c *gin.Context) {
	caller := c.PostForm("caller")
	distributor := c.PostForm("distributor")

	if err := actions.service.ChangeRewardDistributor(caller, distributor); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, "OK")
}

// RescueTokens godoc
// swagger:route POST /admin/rescue/tokens admin rescue_tokens
// Rescue stray tokens
//
// Move fungible tokens stuck on the collection back to the issuer
func (actions *Actions) RescueTokens(c *gin.Context) {
	caller := c.PostForm("caller")
	asset := c.PostForm("asset")
	amount := c.PostForm("amount")

	events, err := actions.service.RescueStrayTokens(caller, asset, amount)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, events)
}

// RescueBase godoc
// swagger:route POST /admin/rescue/base admin rescue_base
// Rescue base currency
//
// Move native base currency stuck on the collection back to the issuer
func (actions *Actions) RescueBase(c *gin.Context) {
	caller := c.PostForm("caller")
	amount := c.PostForm("amount")

	events, err := actions.service.RescueBase(caller, amount)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, events)
}

func parseFeeRates(c *gin.Context) (model.FeeRates, bool) {
	var fees model.FeeRates
	fields := []struct {
		name   string
		target *uint64
	}{
		{"liquidity", &fees.Liquidity},
		{"burn", &fees.Burn},
		{"marketing", &fees.Marketing},
		{"salary", &fees.Salary},
		{"reward", &fees.Reward},
	}
	for _, field := range fields {
		value, err := strconv.ParseUint(c.PostForm(field.name), 10, 64)
		if err != nil {
			return model.FeeRates{}, false
		}
		*field.target = value
	}
	return fees, true
}
