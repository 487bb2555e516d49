package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEvaluateCompletion(t *testing.T) {
	tests := []struct {
		name         string
		prev, amount string
		target       string
		txType       TransactionType
		wasCompleted bool
		want         bool
	}{
		{"deposit reaches target", "80.00", "30.00", "100.00", TxnDeposit, false, true},
		{"deposit hits target exactly", "80.00", "20.00", "100.00", TxnDeposit, false, true},
		{"deposit below target", "10.00", "5.00", "100.00", TxnDeposit, false, false},
		{"withdrawal keeps completed flag", "110.00", "50.00", "100.00", TxnWithdrawal, true, true},
		{"withdrawal keeps incomplete flag", "50.00", "10.00", "100.00", TxnWithdrawal, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EvaluateCompletion(dec(tc.prev), dec(tc.amount), dec(tc.target), tc.txType, tc.wasCompleted)
			if got != tc.want {
				t.Errorf("EvaluateCompletion() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDescribeTransaction(t *testing.T) {
	if got := DescribeTransaction(TxnDeposit, dec("30")); got != "Deposit of $30.00" {
		t.Errorf("deposit description = %q", got)
	}
	if got := DescribeTransaction(TxnWithdrawal, dec("50.5")); got != "Withdrawal of $50.50" {
		t.Errorf("withdrawal description = %q", got)
	}
}

func TestSignedEffect(t *testing.T) {
	if got := SignedEffect(TxnDeposit, dec("30.00")); !got.Equal(dec("30.00")) {
		t.Errorf("deposit effect = %s", got)
	}
	if got := SignedEffect(TxnWithdrawal, dec("30.00")); !got.Equal(dec("-30.00")) {
		t.Errorf("withdrawal effect = %s", got)
	}
}

func TestValidTransactionType(t *testing.T) {
	if !ValidTransactionType(TxnDeposit) || !ValidTransactionType(TxnWithdrawal) {
		t.Error("expected DEPOSIT and WITHDRAWAL to be valid")
	}
	if ValidTransactionType("TRANSFER") || ValidTransactionType("") {
		t.Error("expected unknown types to be invalid")
	}
}
