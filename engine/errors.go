package engine

import "github.com/pkg/errors"

// Error taxonomy: authorization, state, balance and integrity failures.
// Every operation surfaces exactly one of these and the whole call is
// rolled back by the caller; nothing is retried internally.
var (
	// authorization
	ErrNotOwner           = errors.New("caller is not the owner")
	ErrSignatureInvalid   = errors.New("signature invalid or unauthorized")
	ErrUnauthorizedSigner = errors.New("voucher signer is not authorized to mint")

	// state
	ErrTradingDisabled      = errors.New("trading is not enabled yet")
	ErrTokenAlreadyMinted   = errors.New("token already minted")
	ErrTokenNotMinted       = errors.New("token does not exist")
	ErrNoWithdrawableAmount = errors.New("no withdrawable amount")
	ErrNoRewardTracker      = errors.New("no reward tracker for the given token")

	// balance
	ErrInsufficientBalance      = errors.New("insufficient balance")
	ErrInsufficientAllowance    = errors.New("insufficient allowance")
	ErrInsufficientStableCoin   = errors.New("insufficient stable coin balance to redeem")
	ErrInsufficientTokenBalance = errors.New("insufficient token balance to redeem")
	ErrInsufficientLiquidity    = errors.New("insufficient liquidity in the pool")

	// integrity / configuration
	ErrUnknownAsset   = errors.New("unknown asset address")
	ErrFeesTooHigh    = errors.New("total fee rates above hard cap")
	ErrNotNftOwner    = errors.New("caller does not own the token")
	ErrTransferToZero = errors.New("transfer to the zero address")
)
