package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/ledger"
)

// RecordJournalCommand persists a game's journal entries. Entries already
// stored are skipped by the repository, so the full journal can be resent on
// every save.
type RecordJournalCommand struct {
	GameID       string
	Transactions []*ledger.Transaction
}

// RecordJournalResponse represents the result of recording a journal
type RecordJournalResponse struct {
	Submitted    int
	FinalBalance int
}

// RecordJournalHandler handles the RecordJournal command
type RecordJournalHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewRecordJournalHandler creates a new RecordJournalHandler
func NewRecordJournalHandler(transactionRepo ledger.TransactionRepository) *RecordJournalHandler {
	return &RecordJournalHandler{
		transactionRepo: transactionRepo,
	}
}

// Handle executes the RecordJournal command
func (h *RecordJournalHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RecordJournalCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RecordJournalCommand")
	}
	if cmd.GameID == "" {
		return nil, fmt.Errorf("game id is required")
	}

	// Entries must chain: each balance_before is the previous balance_after
	for i, tx := range cmd.Transactions {
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("journal entry %d: %w", i, err)
		}
		if i > 0 && tx.BalanceBefore() != cmd.Transactions[i-1].BalanceAfter() {
			return nil, fmt.Errorf("journal entry %d: balance %d does not follow %d",
				i, tx.BalanceBefore(), cmd.Transactions[i-1].BalanceAfter())
		}
	}

	if err := h.transactionRepo.Append(ctx, cmd.GameID, cmd.Transactions); err != nil {
		return nil, fmt.Errorf("failed to persist journal: %w", err)
	}

	resp := &RecordJournalResponse{Submitted: len(cmd.Transactions)}
	if n := len(cmd.Transactions); n > 0 {
		resp.FinalBalance = cmd.Transactions[n-1].BalanceAfter()
	}
	return resp, nil
}

// RegisterHandlers wires the journal commands into the mediator
func RegisterHandlers(m common.Mediator, repo ledger.TransactionRepository) error {
	return common.RegisterHandler[*RecordJournalCommand](m, NewRecordJournalHandler(repo))
}
