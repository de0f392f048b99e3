package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/learnledger/backend/database"
	"github.com/learnledger/backend/errs"
	"github.com/learnledger/backend/models"
)

type balanceHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Stores
}

func newBalanceHandler(db database.Stores) balanceHandler {
	logger := log.With().Str("handlerName", "balanceHandler").Logger()

	return balanceHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
	}
}

// getBalance returns the ledger balance for a wallet. A wallet with no
// ledger row reads as zero.
func (h balanceHandler) getBalance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wallet := chi.URLParam(r, "wallet")
		if !models.IsValidWallet(wallet) {
			h.responder.WriteError(w, errs.NewInvalidWalletError(wallet))
			return
		}

		balance, err := h.db.Balances().Get(wallet)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "balance", err))
			return
		}
		if balance == nil {
			balance = &models.Balance{
				Wallet:  models.NormalizeWallet(wallet),
				Balance: decimal.Zero,
			}
		}

		h.responder.WriteSuccess(w, "", balance)
	}
}
