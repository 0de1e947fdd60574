package actions

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gitlab.com/przworld-exchange/economy_core/model"
)

type redeemRequest struct {
	Redeemer string        `json:"redeemer"`
	Voucher  model.Voucher `json:"voucher"`
}

// Redeem godoc
// swagger:route POST /nft/redeem nft redeem
// Redeem voucher
//
// Consume a signed voucher: verify the signature, collect the
// dual-currency payment and mint the NFT to the redeemer
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
//	Schemes: http, https
//
//	Responses:
//	  200: Events
//	  400: RequestErrorResp
func (actions *Actions) Redeem(c *gin.Context) {
	var request redeemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid redeem request")
		return
	}

	events, err := actions.service.Redeem(request.Redeemer, request.Voucher)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetRewardBalance godoc
// swagger:route GET /nft/rewards/:account nft get_reward_balance
// Get reward balance
//
// Get the holder's withdrawable premium reflections amount
func (actions *Actions) GetRewardBalance(c *gin.Context) {
	balance, err := actions.service.RewardBalanceOf(c.Param("account"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, map[string]string{"withdrawable": balance})
}

// WithdrawRewards godoc
// swagger:route POST /nft/rewards/withdraw nft withdraw_rewards
// Withdraw rewards
//
// Pay out the holder's accrued premium reflections
func (actions *Actions) WithdrawRewards(c *gin.Context) {
	holder := c.PostForm("holder")

	events, err := actions.service.WithdrawRewards(holder)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetNftSupply godoc
// swagger:route GET /nft/supply nft get_nft_supply
// Get NFT supply
func (actions *Actions) GetNftSupply(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]uint64{"total_supply": actions.service.NftTotalSupply()})
}

// GetNftOwner godoc
// swagger:route GET /nft/owner/:token_id nft get_nft_owner
// Get NFT owner
func (actions *Actions) GetNftOwner(c *gin.Context) {
	tokenID, err := strconv.ParseUint(c.Param("token_id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid token id")
		return
	}
	owner, err := actions.service.NftOwnerOf(tokenID)
	if err != nil {
		abortWithError(c, http.StatusNotFound, err.Error())
		return
	}
	c.JSON(http.StatusOK, map[string]string{"owner": owner})
}

// GetNftURI godoc
// swagger:route GET /nft/uri/:token_id nft get_nft_uri
// Get NFT metadata URI
func (actions *Actions) GetNftURI(c *gin.Context) {
	tokenID, err := strconv.ParseUint(c.Param("token_id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid token id")
		return
	}
	uri, err := actions.service.NftTokenURI(tokenID)
	if err != nil {
		abortWithError(c, http.StatusNotFound, err.Error())
		return
	}
	c.JSON(http.StatusOK, map[string]string{"uri": uri})
}

// GetNftBalance godoc
// swagger:route GET /nft/balance/:account nft get_nft_balance
// Get NFT balance
func (actions *Actions) GetNftBalance(c *gin.Context) {
	shares, err := actions.service.NftBalanceOf(c.Param("account"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, map[string]uint64{"balance": shares})
}

// NftTransfer godoc
// swagger:route POST /nft/transfer nft nft_transfer
// Transfer NFT
//
// Move one NFT between accounts
func (actions *Actions) NftTransfer(c *gin.Context) {
	from := c.PostForm("from")
	to := c.PostForm("to")
	tokenID, err := strconv.ParseUint(c.PostForm("token_id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid token id")
		return
	}

	events, err := actions.service.NftTransfer(from, to, tokenID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, events)
}
