package registry

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/gateway"
	"github.com/feral-file/ff-token-registry/internal/store"
)

// RegTokenRequest is a ticker registration paid from the creator's deposit balance
type RegTokenRequest struct {
	Creator   domain.Name       `json:"creator"`
	Ticker    domain.SymbolCode `json:"ticker"`
	Precision uint8             `json:"precision"`
	Payment   domain.Asset      `json:"payment"`
}

// RegToken registers a ticker for its creator. The registration fee is taken
// from the creator's deposit balance and forwarded to the fee receiver.
func (r *Registry) RegToken(ctx context.Context, tx store.Store, signers domain.Signers, req RegTokenRequest) error {
	if err := domain.RequireAuth(signers, req.Creator); err != nil {
		return err
	}

	cfg, err := r.requireEnabled(ctx, tx)
	if err != nil {
		return err
	}

	existing, err := tx.GetTokenByTicker(ctx, req.Ticker.String())
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateTicker, req.Ticker)
	}

	if err := checkTickerRule(cfg, req.Ticker, req.Precision); err != nil {
		return err
	}

	if cfg.Fees != nil {
		if err := r.payFee(ctx, tx, cfg, req.Creator, req.Payment); err != nil {
			return err
		}
	}

	return r.register(ctx, tx, req.Ticker, req.Creator, req.Precision)
}

func (r *Registry) payFee(ctx context.Context, tx store.Store, cfg Config, payer domain.Name, payment domain.Asset) error {
	if payment.Symbol != cfg.DepositAsset.Symbol {
		return fmt.Errorf("%w: incorrect payment symbol", domain.ErrWrongAsset)
	}
	if payment.Amount != cfg.Fees.RegToken.Amount {
		return fmt.Errorf("%w: expected %s", domain.ErrWrongAmount, cfg.Fees.RegToken)
	}

	balance, err := r.Balance(ctx, tx, payer)
	if err != nil {
		return err
	}
	if balance == nil || balance.Amount < payment.Amount {
		return fmt.Errorf("%w: contract balance cannot pay the registration fee", domain.ErrInsufficientBalance)
	}

	if err := r.Debit(ctx, tx, payer, payment); err != nil {
		return err
	}

	return r.gateway.Transfer(ctx, tx, gateway.Transfer{
		Contract: cfg.DepositAsset.Contract,
		From:     r.account,
		To:       cfg.Fees.Receiver,
		Quantity: payment,
		Memo:     domain.MEMO_REGISTRATION_FEE,
	})
}
