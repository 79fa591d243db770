package receipt

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"tripsplit/money"
)

func TestParse_RoundTrip(t *testing.T) {
	raw := "Pizza  $10.99\nSoda  $2.50\nSubtotal  $13.49\nTax  $1.20\nTotal  $14.69\n"
	p := Parse(context.Background(), raw, nil)

	assert.Equal(t, money.Cents(1349), p.Subtotal)
	assert.Equal(t, money.Cents(120), p.Tax)
	assert.Equal(t, money.Cents(0), p.Tip)
	assert.Equal(t, money.Cents(1469), p.Total)
	assert.GreaterOrEqual(t, p.Confidence, 0.8)
	assert.Empty(t, p.Warnings)

	names := make([]string, 0, len(p.Items))
	for _, it := range p.Items {
		names = append(names, it.Name)
	}
	assert.Contains(t, names, "Pizza")
	assert.Contains(t, names, "Soda")
}

func TestParse_NeverErrorsOnGarbage(t *testing.T) {
	p := Parse(context.Background(), "asdkj $$$ 12\n\n???\n", nil)
	assert.NotNil(t, p)
	assert.GreaterOrEqual(t, p.Confidence, 0.0)
	assert.LessOrEqual(t, p.Confidence, 1.0)
}

func TestParse_EmptyInput(t *testing.T) {
	p := Parse(context.Background(), "", nil)
	assert.NotNil(t, p)
	assert.Equal(t, []Item{}, p.Items)
	assert.Contains(t, p.Warnings, "no items detected")
}

func TestParse_JunkLinesDropped(t *testing.T) {
	raw := "Coffee Shop\n123 Main St\nAnytown 94105\n(415) 555-0100\n" +
		"Latte  $4.50\nSubtotal  $4.50\nTotal  $4.50\n"
	p := Parse(context.Background(), raw, nil)
	assert.Equal(t, money.Cents(450), p.Subtotal)
	assert.Equal(t, money.Cents(450), p.Total)
}

func TestParse_DerivesSubtotalFromTotalMinusTaxTip(t *testing.T) {
	raw := "Cafe\nMuffin  $3.00\nTax  $0.30\nTip  $0.70\nTotal  $4.00\n"
	p := Parse(context.Background(), raw, nil)
	assert.Equal(t, money.Cents(300), p.Subtotal)
	assert.Equal(t, money.Cents(30), p.Tax)
	assert.Equal(t, money.Cents(70), p.Tip)
	assert.Equal(t, money.Cents(400), p.Total)
}

type fakeVerifier struct {
	result *Parsed
	err    error
}

func (f *fakeVerifier) Verify(ctx context.Context, rawText string, rulesResult *Parsed) (*Parsed, error) {
	return f.result, f.err
}

func TestParse_VerifierOverridesResult(t *testing.T) {
	raw := "Pizza  $10.99\nTotal  $10.99\n"
	override := &Parsed{
		MerchantName: "Pizza Place",
		Items:        []Item{{Name: "Pizza", Price: 1099}},
		Total:        1099,
		Warnings:     []string{},
		Confidence:   0.95,
	}
	p := Parse(context.Background(), raw, &fakeVerifier{result: override})
	assert.Equal(t, "Pizza Place", p.MerchantName)
	assert.Equal(t, SourceVerified, p.Source)
}

func TestParse_VerifierFailureFallsBackSilently(t *testing.T) {
	raw := "Pizza  $10.99\nTotal  $10.99\n"
	p := Parse(context.Background(), raw, &fakeVerifier{err: errors.New("upstream unavailable")})
	assert.Equal(t, SourceRules, p.Source)
	assert.Equal(t, money.Cents(1099), p.Total)
}

func TestParse_ExtractsTransactionDate(t *testing.T) {
	raw := "Coffee Shop\n03/14/2024\nLatte  $4.50\nTotal  $4.50\n"
	p := Parse(context.Background(), raw, nil)
	if assert.NotNil(t, p.TransactionDate) {
		assert.Equal(t, "2024-03-14", *p.TransactionDate)
	}
}

func TestParse_ExtractsTransactionDateFromMonthName(t *testing.T) {
	raw := "Cafe\nMar 14, 2024\nMuffin  $3.00\nTotal  $3.00\n"
	p := Parse(context.Background(), raw, nil)
	if assert.NotNil(t, p.TransactionDate) {
		assert.Equal(t, "2024-03-14", *p.TransactionDate)
	}
}

func TestParse_NoDateLeavesTransactionDateNil(t *testing.T) {
	raw := "Pizza  $10.99\nTotal  $10.99\n"
	p := Parse(context.Background(), raw, nil)
	assert.Nil(t, p.TransactionDate)
}

func TestExtractItems_SubsetSumBoundedCandidates(t *testing.T) {
	values := make([]money.Cents, 19)
	for i := range values {
		values[i] = money.Cents(i + 1)
	}
	_, ok := subsetSumMatch(values, 10)
	assert.False(t, ok)
}
