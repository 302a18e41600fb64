// Package service runs a settlement from an expense sheet file to a list of
// transfers.
package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmynk/splitcosts/internal/calculator"
	"github.com/mmynk/splitcosts/internal/metrics"
	"github.com/mmynk/splitcosts/internal/models"
	"github.com/mmynk/splitcosts/internal/sheet"
)

// Error kinds reported to the metrics recorder.
const (
	KindRead      = "read"
	KindParse     = "parse"
	KindNoSharers = "no_sharers"
	KindDuplicate = "duplicate_participant"
	KindImbalance = "imbalance"
	KindUnknown   = "unknown"
)

// Result holds everything one settlement run produced.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	Sheet      *models.Sheet
	Balances   *calculator.BalanceResult
	Settlement *calculator.Settlement
}

// SettleService reads expense sheets and settles them.
type SettleService struct {
	strict   bool
	recorder *metrics.Recorder
	readOpts []sheet.Option
}

// NewSettleService creates a SettleService. A nil recorder disables metrics.
// readOpts are passed to the sheet reader.
func NewSettleService(strict bool, recorder *metrics.Recorder, readOpts ...sheet.Option) *SettleService {
	return &SettleService{strict: strict, recorder: recorder, readOpts: readOpts}
}

// SettleFile reads the expense sheet at path and settles it.
func (s *SettleService) SettleFile(path string) (*Result, error) {
	runID := uuid.New().String()
	logger := slog.With("run_id", runID, "path", path)

	sh, err := sheet.ReadFile(path, s.readOpts...)
	if err != nil {
		logger.Error("Failed to read expense sheet", "error", err)
		s.observeError(KindRead)
		return nil, err
	}
	logger.Info("Expense sheet read", "rows", len(sh.Rows), "participants", len(sh.Participants()))

	result, err := s.settle(sh, logger)
	if err != nil {
		logger.Error("Settlement failed", "error", err)
		return nil, err
	}
	result.RunID = runID

	logger.Info("Settlement computed",
		"transfers", len(result.Settlement.Transfers),
		"imbalance", result.Settlement.Imbalance.String(),
		"places", result.Balances.Places,
	)
	return result, nil
}

// Settle builds balances from an already-read sheet and settles them.
func (s *SettleService) Settle(sh *models.Sheet) (*Result, error) {
	return s.settle(sh, slog.Default())
}

func (s *SettleService) settle(sh *models.Sheet, logger *slog.Logger) (*Result, error) {
	balances, err := calculator.BuildBalances(*sh)
	if err != nil {
		s.observeError(errorKind(err))
		return nil, fmt.Errorf("failed to build balances: %w", err)
	}
	if s.recorder != nil {
		s.recorder.ObserveBalances(balances)
	}

	settlement, err := calculator.Settle(balances.Balances, calculator.WithStrict(s.strict))
	if err != nil {
		s.observeError(errorKind(err))
		return nil, fmt.Errorf("failed to settle balances: %w", err)
	}
	if s.recorder != nil {
		s.recorder.ObserveSettlement(settlement)
	}

	if !settlement.Imbalance.IsZero() {
		logger.Warn("Total balance is non-vanishing, settling as-is", "imbalance", settlement.Imbalance.String())
	}
	for _, r := range settlement.Residual {
		logger.Warn("Unresolved residual balance", "participant", r.MemberName, "balance", r.NetBalance.String())
	}

	return &Result{
		Sheet:      sh,
		Balances:   balances,
		Settlement: settlement,
	}, nil
}

func (s *SettleService) observeError(kind string) {
	if s.recorder != nil {
		s.recorder.ObserveError(kind)
	}
}

// errorKind maps a calculator error to its metrics label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, calculator.ErrInvalidAmount):
		return KindParse
	case errors.Is(err, calculator.ErrNoSharers):
		return KindNoSharers
	case errors.Is(err, calculator.ErrDuplicateParticipant):
		return KindDuplicate
	case errors.Is(err, calculator.ErrImbalance):
		return KindImbalance
	default:
		return KindUnknown
	}
}
