package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/coopera/savings-backend/internal/api/validate"
	"github.com/coopera/savings-backend/internal/models"
	repo "github.com/coopera/savings-backend/internal/repository"
	"github.com/coopera/savings-backend/internal/repository/memory"
	"github.com/coopera/savings-backend/internal/worker"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newLedger(t *testing.T) (*LedgerService, *memory.Store, *worker.Pool) {
	t.Helper()
	store := memory.NewStore()
	wp := worker.NewPool(1)
	svc := NewLedgerService(store.Goals(), store.Transactions(), store.PersonalSavings(), store.AuditLogs(), store.Notifications(), wp)
	return svc, store, wp
}

func seedGoal(store *memory.Store, target, current string, completed bool) (models.User, models.SavingsGoal) {
	u := store.SeedUser(models.User{AuthID: "ext-1", Name: "Ada", Email: "ada@example.com"})
	g := store.SeedGoal(models.SavingsGoal{
		UserID:        u.ID,
		Name:          "Emergency fund",
		TargetAmount:  dec(target),
		CurrentAmount: dec(current),
		IsCompleted:   completed,
	})
	return u, g
}

func TestApplyTransactionDepositCompletesGoal(t *testing.T) {
	svc, store, wp := newLedger(t)
	u, g := seedGoal(store, "100.00", "80.00", false)

	got, err := svc.ApplyTransaction(context.Background(), u.ID, g.ID, dec("30.00"), models.TxnDeposit)
	if err != nil {
		t.Fatalf("ApplyTransaction: %v", err)
	}
	if !got.CurrentAmount.Equal(dec("110.00")) {
		t.Errorf("current = %s, want 110.00", got.CurrentAmount)
	}
	if !got.IsCompleted {
		t.Error("expected goal to be completed")
	}
	if len(got.Transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(got.Transactions))
	}
	tx := got.Transactions[0]
	if tx.Description != "Deposit of $30.00" {
		t.Errorf("description = %q", tx.Description)
	}
	if !tx.Amount.Equal(dec("30.00")) || tx.Type != models.TxnDeposit {
		t.Errorf("unexpected record: %+v", tx)
	}

	wp.Stop()
	if len(store.Audits()) == 0 {
		t.Error("expected an audit entry")
	}
	if store.NotificationCount() != 1 {
		t.Errorf("notifications = %d, want 1 (goal completed)", store.NotificationCount())
	}
}

func TestApplyTransactionInsufficientFunds(t *testing.T) {
	svc, store, wp := newLedger(t)
	defer wp.Stop()
	u, g := seedGoal(store, "100.00", "110.00", true)

	_, err := svc.ApplyTransaction(context.Background(), u.ID, g.ID, dec("200.00"), models.TxnWithdrawal)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if got := store.Goal(g.ID); !got.CurrentAmount.Equal(dec("110.00")) {
		t.Errorf("current = %s, want unchanged 110.00", got.CurrentAmount)
	}
	if store.TransactionCount(g.ID) != 0 {
		t.Error("rejected withdrawal must not create a transaction record")
	}
}

func TestApplyTransactionWithdrawalKeepsCompletion(t *testing.T) {
	svc, store, wp := newLedger(t)
	defer wp.Stop()
	u, g := seedGoal(store, "100.00", "110.00", true)

	got, err := svc.ApplyTransaction(context.Background(), u.ID, g.ID, dec("50.00"), models.TxnWithdrawal)
	if err != nil {
		t.Fatalf("ApplyTransaction: %v", err)
	}
	if !got.CurrentAmount.Equal(dec("60.00")) {
		t.Errorf("current = %s, want 60.00", got.CurrentAmount)
	}
	if !got.IsCompleted {
		t.Error("withdrawal must not clear a previously-set completion flag")
	}
	if len(got.Transactions) != 1 || !got.Transactions[0].Amount.Equal(dec("-50.00")) {
		t.Errorf("expected one record with signed effect -50.00, got %+v", got.Transactions)
	}
}

func TestApplyTransactionValidation(t *testing.T) {
	svc, store, wp := newLedger(t)
	defer wp.Stop()
	u, g := seedGoal(store, "100.00", "0.00", false)

	var errs validate.Errs
	if _, err := svc.ApplyTransaction(context.Background(), u.ID, g.ID, dec("0"), models.TxnDeposit); !errors.As(err, &errs) {
		t.Errorf("zero amount: err = %v, want validation errors", err)
	}
	if _, err := svc.ApplyTransaction(context.Background(), u.ID, g.ID, dec("-5"), models.TxnDeposit); !errors.As(err, &errs) {
		t.Errorf("negative amount: err = %v, want validation errors", err)
	}
	if _, err := svc.ApplyTransaction(context.Background(), u.ID, g.ID, dec("5"), "TRANSFER"); !errors.As(err, &errs) {
		t.Errorf("bad type: err = %v, want validation errors", err)
	}
	if store.TransactionCount(g.ID) != 0 {
		t.Error("validation failures must not mutate the ledger")
	}
}

func TestApplyTransactionOwnership(t *testing.T) {
	svc, store, wp := newLedger(t)
	defer wp.Stop()
	_, g := seedGoal(store, "100.00", "50.00", false)
	other := store.SeedUser(models.User{AuthID: "ext-2", Name: "Eve", Email: "eve@example.com"})

	if _, err := svc.ApplyTransaction(context.Background(), other.ID, g.ID, dec("10"), models.TxnDeposit); !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("foreign goal: err = %v, want ErrNotFound", err)
	}
	if _, err := svc.ApplyTransaction(context.Background(), other.ID, "missing", dec("10"), models.TxnDeposit); !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("missing goal: err = %v, want ErrNotFound", err)
	}
}

func TestApplyTransactionAtomicityOnInsertFailure(t *testing.T) {
	svc, store, wp := newLedger(t)
	defer wp.Stop()
	u, g := seedGoal(store, "100.00", "80.00", false)

	store.FailNextTransactionInsert(errors.New("induced store failure"))
	if _, err := svc.ApplyTransaction(context.Background(), u.ID, g.ID, dec("30.00"), models.TxnDeposit); err == nil {
		t.Fatal("expected induced failure to surface")
	}

	got := store.Goal(g.ID)
	if !got.CurrentAmount.Equal(dec("80.00")) || got.IsCompleted {
		t.Errorf("goal mutated despite failed unit: %+v", got)
	}
	if store.TransactionCount(g.ID) != 0 {
		t.Error("failed unit must not leave a transaction record")
	}
}

func TestListTransactionsNewestFirst(t *testing.T) {
	svc, store, wp := newLedger(t)
	defer wp.Stop()
	u, g := seedGoal(store, "1000.00", "0.00", false)

	for _, amt := range []string{"1.00", "2.00", "3.00"} {
		if _, err := svc.ApplyTransaction(context.Background(), u.ID, g.ID, dec(amt), models.TxnDeposit); err != nil {
			t.Fatalf("deposit %s: %v", amt, err)
		}
	}

	txs, err := svc.ListTransactions(context.Background(), u.ID, g.ID)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("len = %d, want 3", len(txs))
	}
	for i, want := range []string{"3.00", "2.00", "1.00"} {
		if !txs[i].Amount.Equal(dec(want)) {
			t.Errorf("txs[%d] = %s, want %s", i, txs[i].Amount, want)
		}
	}
	for i := 1; i < len(txs); i++ {
		if txs[i].CreatedAt.After(txs[i-1].CreatedAt) {
			t.Error("history not ordered newest first")
		}
	}
}

func TestListTransactionsUnknownGoal(t *testing.T) {
	svc, store, wp := newLedger(t)
	defer wp.Stop()
	u := store.SeedUser(models.User{AuthID: "ext-1", Name: "Ada", Email: "ada@example.com"})

	if _, err := svc.ListTransactions(context.Background(), u.ID, "missing"); !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAddFundsMirrorsAggregate(t *testing.T) {
	svc, store, wp := newLedger(t)
	defer wp.Stop()
	u, g := seedGoal(store, "100.00", "90.00", false)

	got, err := svc.AddFunds(context.Background(), u.ID, g.ID, dec("25.00"))
	if err != nil {
		t.Fatalf("AddFunds: %v", err)
	}
	if !got.CurrentAmount.Equal(dec("115.00")) {
		t.Errorf("current = %s, want 115.00", got.CurrentAmount)
	}
	// add-funds bookkeeping: no ledger record, no completion recompute
	if store.TransactionCount(g.ID) != 0 {
		t.Error("add-funds must not create a transaction record")
	}
	if got.IsCompleted {
		t.Error("add-funds must not touch the completion flag")
	}
	if agg := store.Aggregate(u.ID); !agg.Balance.Equal(dec("25.00")) {
		t.Errorf("aggregate = %s, want 25.00", agg.Balance)
	}

	if _, err := svc.AddFunds(context.Background(), u.ID, g.ID, dec("5.00")); err != nil {
		t.Fatalf("AddFunds: %v", err)
	}
	if agg := store.Aggregate(u.ID); !agg.Balance.Equal(dec("30.00")) {
		t.Errorf("aggregate = %s, want running 30.00", agg.Balance)
	}
}

func TestAddFundsValidationAndOwnership(t *testing.T) {
	svc, store, wp := newLedger(t)
	defer wp.Stop()
	u, g := seedGoal(store, "100.00", "0.00", false)

	var errs validate.Errs
	if _, err := svc.AddFunds(context.Background(), u.ID, g.ID, dec("0")); !errors.As(err, &errs) {
		t.Errorf("zero amount: err = %v, want validation errors", err)
	}
	if _, err := svc.AddFunds(context.Background(), u.ID, "missing", dec("5")); !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("missing goal: err = %v, want ErrNotFound", err)
	}
}
