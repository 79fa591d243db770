// Package balances implements the balance calculator and settlement
// planner. Both are pure functions over plain summary data — no GORM
// models, no database handle — so callers in trips, expenses, and
// payments can feed it whatever they have on hand without this package
// importing any of them back.
//
// The settlement planner's greedy creditor/debtor matching follows the
// same two-pointer shape as fadhlanhapp-sharetab-backend's
// settlement_service.go: sort both sides by magnitude, pair off the
// largest debtor against the largest creditor, and advance past
// whichever side clears first.
package balances

import (
	"sort"

	"github.com/google/uuid"
	"tripsplit/money"
)

// ExpenseLine is the minimal shape Calculate needs from one posted
// expense: who paid, the total, and each member's final share.
type ExpenseLine struct {
	PaidByID uuid.UUID
	Total    money.Cents
	Splits   map[uuid.UUID]money.Cents
}

// PaymentLine is the minimal shape Calculate needs from one payment.
// Only confirmed payments move balances; callers still pass pending
// and declined rows through with Confirmed=false so this package never
// has to special-case status strings.
type PaymentLine struct {
	FromID    uuid.UUID
	ToID      uuid.UUID
	Amount    money.Cents
	Confirmed bool
}

// Calculate folds a trip's expenses and confirmed payments into a
// signed per-member balance. Positive means the member is owed;
// negative means the member owes. Every member in members is present
// in the output, even at zero.
func Calculate(members []uuid.UUID, expenses []ExpenseLine, payments []PaymentLine) map[uuid.UUID]money.Cents {
	out := make(map[uuid.UUID]money.Cents, len(members))
	for _, m := range members {
		out[m] = 0
	}

	for _, e := range expenses {
		out[e.PaidByID] += e.Total
		for userID, share := range e.Splits {
			out[userID] -= share
		}
	}

	for _, p := range payments {
		if !p.Confirmed {
			continue
		}
		out[p.FromID] += p.Amount
		out[p.ToID] -= p.Amount
	}

	return out
}

// Settlement is one suggested transfer that would help clear balances.
type Settlement struct {
	FromID uuid.UUID   `json:"fromId"`
	ToID   uuid.UUID   `json:"toId"`
	Amount money.Cents `json:"amount"`
}

type party struct {
	id     uuid.UUID
	amount money.Cents // always positive: |balance|
	order  int
}

// Plan emits a minimal-ish set of transfers that drive every balance
// within a cent of zero. order fixes the iteration order for ties so
// the result is deterministic given the same input map. It does not
// guarantee the theoretical minimum transfer count (that's NP-hard in
// general) but never emits more than len(order)-1 transfers.
func Plan(balanceMap map[uuid.UUID]money.Cents, order []uuid.UUID) []Settlement {
	idx := make(map[uuid.UUID]int, len(order))
	for i, id := range order {
		idx[id] = i
	}

	var creditors, debtors []party
	for _, id := range order {
		bal, ok := balanceMap[id]
		if !ok {
			continue
		}
		switch {
		case bal >= 1:
			creditors = append(creditors, party{id: id, amount: bal, order: idx[id]})
		case bal <= -1:
			debtors = append(debtors, party{id: id, amount: -bal, order: idx[id]})
		}
	}

	sortByAmountDesc(creditors)
	sortByAmountDesc(debtors)

	var out []Settlement
	ci, di := 0, 0
	for ci < len(creditors) && di < len(debtors) {
		c := &creditors[ci]
		d := &debtors[di]

		amount := d.amount
		if c.amount < amount {
			amount = c.amount
		}
		if amount >= 1 {
			out = append(out, Settlement{FromID: d.id, ToID: c.id, Amount: amount})
		}

		c.amount -= amount
		d.amount -= amount

		if c.amount < 1 {
			ci++
		}
		if d.amount < 1 {
			di++
		}
	}

	return out
}

func sortByAmountDesc(ps []party) {
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].amount != ps[j].amount {
			return ps[i].amount > ps[j].amount
		}
		return ps[i].order < ps[j].order
	})
}
