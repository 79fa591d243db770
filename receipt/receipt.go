// Package receipt turns raw OCR text from a scanned paper receipt into a
// best-effort structured summary: merchant, line items, subtotal/tax/tip/
// total, and a confidence score. It is a pure function over text — no
// database access, no side effects — except for an optional injectable
// verifier that may cross-check the result against a vision/LLM backend.
//
// There is nothing in tripsplit's dependency stack built for OCR text
// cleanup, so this package leans on the standard library's regexp and
// strings packages rather than reaching for a mismatched third-party
// library (see DESIGN.md).
package receipt

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"tripsplit/money"
)

// Source identifies where a parsed receipt came from, for callers that
// want to distinguish a rules-only parse from one a verifier touched.
const (
	SourceRules    = "rules"
	SourceVerified = "verified"
)

// Item is a single recognized line item.
type Item struct {
	Name  string      `json:"name"`
	Price money.Cents `json:"price"`
}

// Parsed is the output of Parse. All amounts are non-negative; every
// Item.Price is strictly positive.
type Parsed struct {
	MerchantName    string      `json:"merchantName"`
	TransactionDate *string     `json:"transactionDate,omitempty"`
	Items           []Item      `json:"items"`
	Subtotal        money.Cents `json:"subtotal"`
	Tax             money.Cents `json:"tax"`
	Tip             money.Cents `json:"tip"`
	Total           money.Cents `json:"total"`
	Warnings        []string    `json:"warnings"`
	Confidence      float64     `json:"confidence"`
	Source          string      `json:"source"`
}

// Verifier optionally cross-checks a rules-based parse against another
// recognizer (an on-device or hosted LLM/vision model). It must be
// injectable so tests can supply a fake. Any error it returns is treated
// as a transient transport failure: Parse swallows it and keeps the
// rules-only result.
type Verifier interface {
	Verify(ctx context.Context, rawText string, rulesResult *Parsed) (*Parsed, error)
}

// Parse runs the full pipeline over rawText. It never returns an error:
// malformed or sparse input degrades to a low-confidence result with
// warnings, never a failure. If verifier is non-nil, Parse calls it
// after the rules pass completes; a verifier error or a nil verifier
// both fall back to the rules result untouched.
func Parse(ctx context.Context, rawText string, verifier Verifier) *Parsed {
	lines := normalizeLines(rawText)
	lines = classifyAndDropJunk(lines)
	lines = repairScramble(lines)
	lines = mergeQuantities(lines)

	p := &Parsed{Items: []Item{}, Warnings: []string{}, Source: SourceRules}

	totalsIdx, totals := extractTotals(lines)
	p.Subtotal, p.Tax, p.Tip, p.Total = totals.subtotal, totals.tax, totals.tip, totals.total

	p.MerchantName = extractMerchant(lines, totalsIdx)
	if date, ok := extractDate(lines); ok {
		p.TransactionDate = &date
	}
	p.Items = extractItems(lines, totalsIdx, p.Subtotal, totals.subtotalKnown)

	applyDerivedSubtotal(p, &totals)
	p.Confidence, p.Warnings = scoreConfidence(p, totals)

	if verifier == nil {
		return p
	}
	verified, err := verifier.Verify(ctx, rawText, p)
	if err != nil || verified == nil {
		return p
	}
	verified.Source = SourceVerified
	return verified
}

// --- step 1: line normalization -------------------------------------------------

var (
	reWhitespace   = regexp.MustCompile(`\s+`)
	reLeadingSDash = regexp.MustCompile(`(^|\s)S(\d)`)
	reDollarOZero  = regexp.MustCompile(`\$([O]?\d?[O0-9]*\.[O0-9]{2})`)
	reSpacedCents  = regexp.MustCompile(`(\d+) (\d{2})\b`)
	reThousandsSep = regexp.MustCompile(`(\d),(\d{3})`)
	rePercentLine  = regexp.MustCompile(`%`)

	labelGarbles = map[string]*regexp.Regexp{
		"Tax": regexp.MustCompile(`(?i)\b(s?a?les?\s*)?(iiax|lax|tlax|ta[x2]{1,2})\b`),
	}
)

func normalizeLines(raw string) []string {
	rawLines := strings.Split(raw, "\n")
	out := make([]string, 0, len(rawLines))
	for _, l := range rawLines {
		l = reWhitespace.ReplaceAllString(strings.TrimSpace(l), " ")
		if l == "" {
			continue
		}
		l = reThousandsSep.ReplaceAllString(l, "$1$2")
		l = reLeadingSDash.ReplaceAllString(l, "$1$$$2")
		l = fixMoneyGlyphs(l)
		l = reSpacedCents.ReplaceAllStringFunc(l, func(m string) string {
			parts := reSpacedCents.FindStringSubmatch(m)
			return parts[1] + "." + parts[2]
		})
		l = applyLabelGarbles(l)
		out = append(out, l)
	}
	return out
}

// fixMoneyGlyphs repairs the "O" (letter oh) vs "0" (zero) confusion
// inside dollar-prefixed tokens, and expands 3-6 digit bare money runs
// into a decimal once they land in the plausible [0.50, 1000.00) range.
func fixMoneyGlyphs(line string) string {
	line = reDollarOZero.ReplaceAllStringFunc(line, func(m string) string {
		return strings.ReplaceAll(m, "O", "0")
	})

	tokens := strings.Fields(line)
	for i, tok := range tokens {
		// Only dollar-prefixed tokens are candidates: a bare digit run
		// elsewhere on the line is far more likely a zip code, phone
		// fragment, or item count than a decimal-less money value.
		if !strings.HasPrefix(tok, "$") {
			continue
		}
		bare := strings.TrimPrefix(tok, "$")
		if !isAllDigits(bare) || len(bare) < 3 || len(bare) > 6 {
			continue
		}
		whole, err := strconv.ParseFloat(bare[:len(bare)-2]+"."+bare[len(bare)-2:], 64)
		if err != nil {
			continue
		}
		if whole < 0.50 || whole >= 1000.00 {
			continue
		}
		tokens[i] = "$" + bare[:len(bare)-2] + "." + bare[len(bare)-2:]
	}
	return strings.Join(tokens, " ")
}

func applyLabelGarbles(line string) string {
	for canon, re := range labelGarbles {
		if re.MatchString(line) {
			line = re.ReplaceAllString(line, canon)
		}
	}
	return line
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// --- step 2: junk classification -------------------------------------------------

var (
	reMoneyToken  = regexp.MustCompile(`^\$?\d{1,3}(\.\d{2})?$`)
	rePhone       = regexp.MustCompile(`\(?\d{3}\)?[-.\s]\d{3}[-.\s]\d{4}`)
	reZip         = regexp.MustCompile(`\b\d{5}(-\d{4})?\b`)
	reStreet      = regexp.MustCompile(`(?i)\b(st|ave|avenue|rd|road|blvd|dr|drive|ln|lane|hwy|street|suite|ste)\b\.?`)
	reCardMeta    = regexp.MustCompile(`(?i)\b(visa|mastercard|amex|discover|chip|swipe|auth\s*code|approval|terminal|card\s*#|account\s*#|\*{4})\b`)
	rePromo       = regexp.MustCompile(`(?i)\b(survey|feedback|www\.|http|thank you|visit us|coupon|reward|download.*app)\b`)
	reLongNumeric = regexp.MustCompile(`^\d{8,}$`)
	reBareQty     = regexp.MustCompile(`^\d{1,2}$`)
	reMoneyLine   = regexp.MustCompile(`\$?\d{1,6}(\.\d{2})?`)
)

func classifyAndDropJunk(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if isJunkLine(l) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func isJunkLine(line string) bool {
	switch {
	case rePhone.MatchString(line):
		return true
	case reStreet.MatchString(line) || (reZip.MatchString(line) && len(strings.Fields(line)) <= 4):
		return true
	case reCardMeta.MatchString(line):
		return true
	case rePromo.MatchString(line):
		return true
	case reLongNumeric.MatchString(strings.TrimSpace(line)):
		return true
	}
	return false
}

func isPureQuantityLine(line string) bool {
	return reBareQty.MatchString(strings.TrimSpace(line))
}

// --- step 3: scramble repair -------------------------------------------------

func repairScramble(lines []string) []string {
	firstTotalsIdx := -1
	lastMoneyIdx := -1
	for i, l := range lines {
		if totalsLabel(l) != "" && firstTotalsIdx == -1 {
			firstTotalsIdx = i
		}
		if looksLikeMoneyLine(l) {
			lastMoneyIdx = i
		}
	}
	if firstTotalsIdx == -1 || lastMoneyIdx <= firstTotalsIdx {
		return lines
	}

	// Totals labels appear before the tail of money lines: pull every
	// totals-labeled line (and the bare money line immediately after
	// it, if any) to the end, preserving their relative order.
	var header, body, totals []string
	for i := 0; i < len(lines); i++ {
		if totalsLabel(lines[i]) != "" {
			totals = append(totals, lines[i])
			continue
		}
		if i < firstTotalsIdx {
			header = append(header, lines[i])
		} else {
			body = append(body, lines[i])
		}
	}
	out := make([]string, 0, len(lines))
	out = append(out, header...)
	out = append(out, body...)
	out = append(out, totals...)
	return out
}

// --- step 4: quantity merge -------------------------------------------------

func mergeQuantities(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		if isPureQuantityLine(lines[i]) && i+1 < len(lines) &&
			!looksLikeMoneyLine(lines[i+1]) && totalsLabel(lines[i+1]) == "" {
			out = append(out, lines[i]+" "+lines[i+1])
			i++
			continue
		}
		out = append(out, lines[i])
	}
	return out
}

// --- step 5: merchant extraction -------------------------------------------------

func extractMerchant(lines []string, totalsIdx int) string {
	window := len(lines)
	if totalsIdx > 0 && totalsIdx < window {
		window = totalsIdx
	}
	if window > 6 {
		window = 6
	}
	for i := 0; i < window && i < len(lines); i++ {
		l := lines[i]
		if looksLikeMoneyLine(l) || totalsLabel(l) != "" {
			continue
		}
		return l
	}
	return ""
}

// --- step 5b: date extraction -------------------------------------------------

var (
	reDateISO   = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	reDateSlash = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2,4})\b`)
	reDateMonth = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(\d{1,2}),?\s+(\d{4})\b`)
)

var monthNumber = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04", "may": "05", "jun": "06",
	"jul": "07", "aug": "08", "sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// extractDate scans every line for the first recognizable date and
// normalizes it to YYYY-MM-DD. Slash dates are read as US-style
// month/day/year, matching the receipt corpus this parser targets.
// Two-digit years are assumed to fall in the 2000s.
func extractDate(lines []string) (string, bool) {
	for _, l := range lines {
		if m := reDateISO.FindStringSubmatch(l); m != nil {
			return normalizeDate(m[1], m[2], m[3]), true
		}
		if m := reDateSlash.FindStringSubmatch(l); m != nil {
			year := m[3]
			if len(year) == 2 {
				year = "20" + year
			}
			return normalizeDate(year, m[1], m[2]), true
		}
		if m := reDateMonth.FindStringSubmatch(l); m != nil {
			month := monthNumber[strings.ToLower(m[1][:3])]
			return normalizeDate(m[3], month, m[2]), true
		}
	}
	return "", false
}

func normalizeDate(year, month, day string) string {
	if len(month) == 1 {
		month = "0" + month
	}
	if len(day) == 1 {
		day = "0" + day
	}
	return year + "-" + month + "-" + day
}

// --- step 6: totals extraction -------------------------------------------------

type totalsResult struct {
	subtotal, tax, tip, total                         money.Cents
	subtotalKnown, taxKnown, tipKnown, totalKnown      bool
}

func totalsLabel(line string) string {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "subtotal"):
		return "subtotal"
	case strings.Contains(lower, "tax"):
		return "tax"
	case strings.Contains(lower, "tip") || strings.Contains(lower, "gratuity"):
		return "tip"
	case strings.Contains(lower, "total") || strings.Contains(lower, "balance due"):
		return "total"
	}
	return ""
}

func looksLikeMoneyLine(line string) bool {
	if rePercentLine.MatchString(line) {
		return false
	}
	trimmed := strings.TrimSpace(line)
	return reMoneyToken.MatchString(trimmed)
}

func extractMoneyFromLine(line string) (money.Cents, bool) {
	if rePercentLine.MatchString(line) {
		return 0, false
	}
	matches := reMoneyLine.FindAllString(line, -1)
	if len(matches) == 0 {
		return 0, false
	}
	last := strings.TrimPrefix(matches[len(matches)-1], "$")
	f, err := strconv.ParseFloat(last, 64)
	if err != nil {
		return 0, false
	}
	return money.ToCents(f), true
}

func extractTotals(lines []string) (int, totalsResult) {
	var res totalsResult
	firstLabelIdx := -1

	find := func(label string) (money.Cents, bool, int) {
		for i, l := range lines {
			if totalsLabel(l) != label {
				continue
			}
			if firstLabelIdx == -1 || i < firstLabelIdx {
				if firstLabelIdx == -1 {
					firstLabelIdx = i
				}
			}
			if c, ok := extractMoneyFromLine(l); ok {
				return c, true, i
			}
			for j := i + 1; j < len(lines) && j <= i+8; j++ {
				if totalsLabel(lines[j]) != "" {
					break
				}
				if c, ok := extractMoneyFromLine(lines[j]); ok {
					return c, true, j
				}
			}
			return 0, false, i
		}
		return 0, false, -1
	}

	if c, ok, i := find("subtotal"); ok {
		res.subtotal, res.subtotalKnown = c, true
		markFirst(&firstLabelIdx, i)
	}
	if c, ok, i := find("tax"); ok {
		res.tax, res.taxKnown = c, true
		markFirst(&firstLabelIdx, i)
	}
	if c, ok, i := find("tip"); ok {
		res.tip, res.tipKnown = c, true
		markFirst(&firstLabelIdx, i)
	}
	if c, ok, i := find("total"); ok {
		res.total, res.totalKnown = c, true
		markFirst(&firstLabelIdx, i)
	}

	if !res.totalKnown {
		// Fall back to the largest money value in the tail of the
		// receipt (last third of the lines, at minimum the last 5).
		tailStart := len(lines) * 2 / 3
		if len(lines)-5 < tailStart {
			tailStart = len(lines) - 5
		}
		if tailStart < 0 {
			tailStart = 0
		}
		var max money.Cents
		found := false
		for _, l := range lines[tailStart:] {
			if c, ok := extractMoneyFromLine(l); ok && !rePercentLine.MatchString(l) {
				if !found || c > max {
					max, found = c, true
				}
			}
		}
		if found {
			res.total, res.totalKnown = max, true
		}
	}

	return firstLabelIdx, res
}

func markFirst(first *int, candidate int) {
	if candidate < 0 {
		return
	}
	if *first == -1 || candidate < *first {
		*first = candidate
	}
}

func applyDerivedSubtotal(p *Parsed, t *totalsResult) {
	if !t.subtotalKnown && t.totalKnown && (t.taxKnown || t.tipKnown) {
		derived := t.total - t.tax - t.tip
		if derived > 0 {
			p.Subtotal = derived
			t.subtotal, t.subtotalKnown = derived, true
		}
	}
}

// --- step 7: items extraction -------------------------------------------------

const maxSubsetSumCandidates = 18

func extractItems(lines []string, totalsIdx int, subtotal money.Cents, subtotalKnown bool) []Item {
	end := len(lines)
	if totalsIdx >= 0 {
		end = totalsIdx
	}

	type candidate struct {
		idx   int
		cents money.Cents
	}
	var candidates []candidate
	for i := 0; i < end; i++ {
		if totalsLabel(lines[i]) != "" {
			continue
		}
		if c, ok := extractMoneyFromLine(lines[i]); ok && c > 0 {
			candidates = append(candidates, candidate{idx: i, cents: c})
		}
	}
	if len(candidates) == 0 {
		return []Item{}
	}

	chosen := candidates
	if subtotalKnown && len(candidates) <= maxSubsetSumCandidates {
		values := make([]money.Cents, len(candidates))
		for i, c := range candidates {
			values[i] = c.cents
		}
		if idxSet, ok := subsetSumMatch(values, subtotal); ok {
			chosen = chosen[:0]
			for _, i := range idxSet {
				chosen = append(chosen, candidates[i])
			}
		}
	}

	used := make(map[int]bool)
	items := make([]Item, 0, len(chosen))
	for _, c := range chosen {
		name := findItemName(lines, c.idx, used)
		items = append(items, Item{Name: name, Price: c.cents})
	}
	return items
}

// subsetSumMatch finds a subset of values summing to target within ±1
// cent via bitset dynamic programming, bounded to maxSubsetSumCandidates
// entries to avoid the exponential blow-up a brute-force search would
// hit on a long, noisy receipt.
func subsetSumMatch(values []money.Cents, target money.Cents) ([]int, bool) {
	n := len(values)
	if n > maxSubsetSumCandidates {
		return nil, false
	}
	type state struct {
		sum  money.Cents
		mask uint32
	}
	reachable := map[money.Cents]uint32{0: 0}
	for i, v := range values {
		next := make(map[money.Cents]uint32, len(reachable))
		for sum, mask := range reachable {
			next[sum] = mask
			newSum := sum + v
			if _, exists := next[newSum]; !exists {
				next[newSum] = mask | (1 << uint(i))
			}
		}
		reachable = next
	}

	var bestMask uint32
	bestDiff := money.Cents(1 << 30)
	found := false
	for sum, mask := range reachable {
		if mask == 0 {
			continue
		}
		diff := sum - target
		if diff.Abs() <= 1 && diff.Abs() < bestDiff {
			bestDiff = diff.Abs()
			bestMask = mask
			found = true
		}
	}
	if !found {
		return nil, false
	}
	var idxs []int
	for i := 0; i < n; i++ {
		if bestMask&(1<<uint(i)) != 0 {
			idxs = append(idxs, i)
		}
	}
	return idxs, true
}

var reItemNameLike = regexp.MustCompile(`[A-Za-z]{2,}`)

// sameLineName handles the common case where OCR keeps an item's name
// and price on one line ("Pizza  $10.99"): strip the money token and
// use whatever text remains before falling back to scanning neighbors.
func sameLineName(line string) (string, bool) {
	cleaned := reMoneyLine.ReplaceAllString(line, "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned != "" && reItemNameLike.MatchString(cleaned) {
		return cleaned, true
	}
	return "", false
}

func findItemName(lines []string, moneyIdx int, used map[int]bool) string {
	if name, ok := sameLineName(lines[moneyIdx]); ok {
		return name
	}
	for i := moneyIdx - 1; i >= 0 && i >= moneyIdx-6; i-- {
		if used[i] || looksLikeMoneyLine(lines[i]) || totalsLabel(lines[i]) != "" {
			continue
		}
		if reItemNameLike.MatchString(lines[i]) {
			used[i] = true
			return stripTrailingMoney(lines[i])
		}
	}
	for i := moneyIdx + 1; i < len(lines) && i <= moneyIdx+2; i++ {
		if used[i] || looksLikeMoneyLine(lines[i]) || totalsLabel(lines[i]) != "" {
			continue
		}
		if reItemNameLike.MatchString(lines[i]) {
			used[i] = true
			return stripTrailingMoney(lines[i])
		}
	}
	return "Item"
}

func stripTrailingMoney(line string) string {
	cleaned := reMoneyLine.ReplaceAllString(line, "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "Item"
	}
	return cleaned
}

// --- step 8: confidence -------------------------------------------------

func scoreConfidence(p *Parsed, t totalsResult) (float64, []string) {
	var warnings []string
	var score float64

	weights := map[string]float64{
		"merchant": 0.10,
		"date":     0.10,
		"total":    0.20,
		"subtotal": 0.15,
		"tax":      0.10,
		"items":    0.15,
		"agree":    0.20,
	}

	if p.MerchantName != "" {
		score += weights["merchant"]
	}
	if p.TransactionDate != nil {
		score += weights["date"]
	}
	if t.totalKnown {
		score += weights["total"]
	}
	if t.subtotalKnown {
		score += weights["subtotal"]
	}
	if t.taxKnown || t.tipKnown {
		score += weights["tax"]
	}
	if len(p.Items) > 0 {
		score += weights["items"]
	} else {
		warnings = append(warnings, "no items detected")
	}

	var itemSum money.Cents
	for _, it := range p.Items {
		itemSum += it.Price
	}

	if t.subtotalKnown && len(p.Items) > 0 {
		diff := itemSum - p.Subtotal
		if diff.Abs() <= 5 {
			score += weights["agree"]
		} else {
			warnings = append(warnings, "item sum disagrees with subtotal by more than 5 cents")
		}
	}

	if t.totalKnown && t.subtotalKnown {
		expected := p.Subtotal + p.Tax + p.Tip
		if (expected - p.Total).Abs() > 5 {
			warnings = append(warnings, "subtotal + tax + tip disagrees with total by more than 5 cents")
		}
	}

	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	sort.Strings(warnings)
	return score, warnings
}
