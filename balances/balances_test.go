package balances

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"tripsplit/money"
)

func TestCalculate_EvenThreeWayDinner(t *testing.T) {
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()
	members := []uuid.UUID{alice, bob, carol}

	expenses := []ExpenseLine{
		{
			PaidByID: alice,
			Total:    3600,
			Splits:   map[uuid.UUID]money.Cents{alice: 1200, bob: 1200, carol: 1200},
		},
	}

	bal := Calculate(members, expenses, nil)
	assert.Equal(t, money.Cents(2400), bal[alice])
	assert.Equal(t, money.Cents(-1200), bal[bob])
	assert.Equal(t, money.Cents(-1200), bal[carol])

	var sum money.Cents
	for _, v := range bal {
		sum += v
	}
	assert.Equal(t, money.Cents(0), sum)

	order := []uuid.UUID{alice, bob, carol}
	settlements := Plan(bal, order)
	assert.Len(t, settlements, 2)
	for _, s := range settlements {
		assert.Equal(t, alice, s.ToID)
		assert.Equal(t, money.Cents(1200), s.Amount)
	}
}

func TestCalculate_SettlementViaConfirmedPayment(t *testing.T) {
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()
	members := []uuid.UUID{alice, bob, carol}

	expenses := []ExpenseLine{
		{
			PaidByID: alice,
			Total:    3600,
			Splits:   map[uuid.UUID]money.Cents{alice: 1200, bob: 1200, carol: 1200},
		},
	}
	payments := []PaymentLine{
		{FromID: bob, ToID: alice, Amount: 1200, Confirmed: true},
	}

	bal := Calculate(members, expenses, payments)
	assert.Equal(t, money.Cents(1200), bal[alice])
	assert.Equal(t, money.Cents(0), bal[bob])
	assert.Equal(t, money.Cents(-1200), bal[carol])

	settlements := Plan(bal, members)
	assert.Len(t, settlements, 1)
	assert.Equal(t, carol, settlements[0].FromID)
	assert.Equal(t, alice, settlements[0].ToID)
	assert.Equal(t, money.Cents(1200), settlements[0].Amount)
}

func TestCalculate_PendingPaymentDoesNotMoveBalance(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	members := []uuid.UUID{alice, bob}

	payments := []PaymentLine{
		{FromID: bob, ToID: alice, Amount: 1200, Confirmed: false},
	}

	bal := Calculate(members, nil, payments)
	assert.Equal(t, money.Cents(0), bal[alice])
	assert.Equal(t, money.Cents(0), bal[bob])
}

func TestPlan_TransferCountBound(t *testing.T) {
	ids := make([]uuid.UUID, 6)
	for i := range ids {
		ids[i] = uuid.New()
	}
	bal := map[uuid.UUID]money.Cents{
		ids[0]: 500, ids[1]: 300, ids[2]: 200,
		ids[3]: -400, ids[4]: -350, ids[5]: -250,
	}
	settlements := Plan(bal, ids)
	nonZero := 0
	for _, v := range bal {
		if v.Abs() >= 1 {
			nonZero++
		}
	}
	assert.LessOrEqual(t, len(settlements), nonZero-1)

	applied := make(map[uuid.UUID]money.Cents, len(bal))
	for k, v := range bal {
		applied[k] = v
	}
	for _, s := range settlements {
		applied[s.FromID] += s.Amount
		applied[s.ToID] -= s.Amount
	}
	for _, v := range applied {
		assert.True(t, v.IsSettled())
	}
}

func TestPlan_EmptyWhenAlreadySettled(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	bal := map[uuid.UUID]money.Cents{a: 0, b: 0}
	assert.Empty(t, Plan(bal, []uuid.UUID{a, b}))
}
