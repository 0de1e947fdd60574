package service

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/przworld-exchange/economy_core/apps/pool"
	"gitlab.com/przworld-exchange/economy_core/config"
	"gitlab.com/przworld-exchange/economy_core/conv"
	"gitlab.com/przworld-exchange/economy_core/engine"
	"gitlab.com/przworld-exchange/economy_core/model"
	"gitlab.com/przworld-exchange/economy_core/monitor"
	"gitlab.com/przworld-exchange/economy_core/sign"
)

// Service owns the deployed economy state and serializes every operation
// behind one lock: execution is strictly serial, each call runs to
// completion and either commits as a whole or is rolled back to the
// snapshot taken on entry.
type Service struct {
	cfg   config.Config
	mu    sync.Mutex
	state *engine.State
}

// NewService deploys a fresh economy from the configuration: the taxed
// token, the stable coin, the NFT collection and the exchange pair seeded
// with the configured initial liquidity.
func NewService(cfg config.Config) (*Service, error) {
	tokenAddr, err := parseAddress(cfg.Token.Address)
	if err != nil {
		return nil, errors.Wrap(err, "token address")
	}
	owner, err := parseAddress(cfg.Token.Owner)
	if err != nil {
		return nil, errors.Wrap(err, "token owner")
	}
	marketing, err := parseAddress(cfg.Token.MarketingWallet)
	if err != nil {
		return nil, errors.Wrap(err, "marketing wallet")
	}
	salary, err := parseAddress(cfg.Token.TeamSalaryWallet)
	if err != nil {
		return nil, errors.Wrap(err, "team salary wallet")
	}
	receiveRewards, err := parseAddress(cfg.Token.ReceiveRewards)
	if err != nil {
		return nil, errors.Wrap(err, "receive rewards wallet")
	}
	dead, err := parseAddress(cfg.Token.DeadWallet)
	if err != nil {
		return nil, errors.Wrap(err, "dead wallet")
	}
	stableAddr, err := parseAddress(cfg.Stable.Address)
	if err != nil {
		return nil, errors.Wrap(err, "stable coin address")
	}
	nftAddr, err := parseAddress(cfg.Nft.Address)
	if err != nil {
		return nil, errors.Wrap(err, "nft address")
	}
	revenues, err := parseAddress(cfg.Nft.RevenuesWallet)
	if err != nil {
		return nil, errors.Wrap(err, "revenues wallet")
	}
	pairAddr, err := parseAddress(cfg.Pool.Address)
	if err != nil {
		return nil, errors.Wrap(err, "pool address")
	}

	initialSupply, err := conv.ToUnits(cfg.Token.InitialSupply, conv.TokenPrecision)
	if err != nil {
		return nil, errors.Wrap(err, "token initial supply")
	}
	swapThreshold, err := conv.ToUnits(cfg.Token.SwapTokensAt, conv.TokenPrecision)
	if err != nil {
		return nil, errors.Wrap(err, "swap threshold")
	}
	stableSupply, err := conv.ToUnits(cfg.Stable.InitialSupply, conv.TokenPrecision)
	if err != nil {
		return nil, errors.Wrap(err, "stable coin initial supply")
	}

	token, err := engine.NewToken(engine.TokenParams{
		Address:          tokenAddr,
		Owner:            owner,
		MarketingWallet:  marketing,
		TeamSalaryWallet: salary,
		ReceiveRewards:   receiveRewards,
		DeadWallet:       dead,
		InitialSupply:    initialSupply,
		SwapThreshold:    swapThreshold,
		Fees:             cfg.Token.Fees,
	})
	if err != nil {
		return nil, err
	}
	stable := engine.NewBasicToken(stableAddr, owner, stableSupply)
	base := engine.NewLedger()
	nft := engine.NewCollection(engine.CollectionParams{
		Address:        nftAddr,
		Owner:          owner,
		RevenuesWallet: revenues,
		DeadWallet:     dead,
		Domain:         sign.NewDomain(cfg.Chain.ID, nftAddr),
	})
	state := engine.NewState(token, stable, base, nft, func(t *engine.Token, b *engine.Ledger) engine.Pool {
		return pool.NewPair(pairAddr, t, b)
	})

	service := &Service{cfg: cfg, state: state}
	if err := service.seedLiquidity(owner); err != nil {
		return nil, err
	}
	log.Info().
		Str("section", "service").
		Str("token", tokenAddr.Hex()).
		Str("nft", nftAddr.Hex()).
		Str("pair", pairAddr.Hex()).
		Msg("Economy state initialized")
	return service, nil
}

// seedLiquidity mints the configured base currency to the owner and
// supplies the initial token/base reserves to the pair
func (service *Service) seedLiquidity(owner common.Address) error {
	if service.cfg.Pool.InitialTokens == "" || service.cfg.Pool.InitialBase == "" {
		return nil
	}
	tokens, err := conv.ToUnits(service.cfg.Pool.InitialTokens, conv.TokenPrecision)
	if err != nil {
		return errors.Wrap(err, "pool initial tokens")
	}
	baseAmount, err := conv.ToUnits(service.cfg.Pool.InitialBase, conv.TokenPrecision)
	if err != nil {
		return errors.Wrap(err, "pool initial base")
	}
	service.state.Base.Mint(owner, baseAmount)
	events := make([]model.Event, 0, 2)
	return service.state.Pool().AddLiquidity(owner, tokens, baseAmount, &events)
}

// execute serializes one operation against the state with whole-transaction
// atomicity: on any error or panic the pre-call snapshot is swapped back in
// and no partial mutation survives.
func (service *Service) execute(fn func(state *engine.State, events *[]model.Event) error) (result []model.Event, err error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	snapshot := service.state.Clone()
	defer func() {
		if r := recover(); r != nil {
			service.state = snapshot
			monitor.RejectedOperations.WithLabelValues("internal_error").Inc()
			log.Error().Str("section", "service").Interface("panic", r).Msg("Operation panicked, state restored")
			result = nil
			err = errors.Errorf("operation failed: %v", r)
		}
	}()

	events := make([]model.Event, 0, 8)
	if err := fn(service.state, &events); err != nil {
		service.state = snapshot
		monitor.RejectedOperations.WithLabelValues(rejectionReason(err)).Inc()
		return nil, err
	}
	return events, nil
}

// rejectionReason buckets an error into a fixed label set so the metric
// cardinality stays bounded no matter what the wrapped message contains
func rejectionReason(err error) string {
	switch errors.Cause(err) {
	case engine.ErrNotOwner, engine.ErrNotNftOwner, engine.ErrUnauthorizedSigner:
		return "not_authorized"
	case engine.ErrSignatureInvalid:
		return "bad_signature"
	case engine.ErrTradingDisabled:
		return "trading_disabled"
	case engine.ErrInsufficientBalance, engine.ErrInsufficientAllowance,
		engine.ErrInsufficientStableCoin, engine.ErrInsufficientTokenBalance,
		engine.ErrInsufficientLiquidity:
		return "insufficient_funds"
	default:
		return "invalid_input"
	}
}

// read runs a read-only accessor under the same lock
func (service *Service) read(fn func(state *engine.State)) {
	service.mu.Lock()
	defer service.mu.Unlock()
	fn(service.state)
}

func parseAddress(value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, errors.Errorf("invalid address %q", value)
	}
	return common.HexToAddress(value), nil
}

func parseUnits(value string) (*uint256.Int, error) {
	return conv.ToUnits(value, conv.TokenPrecision)
}
