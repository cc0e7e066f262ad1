package billing

import "github.com/shopspring/decimal"

// CategoryRatios maps a token category to the premium multiplier applied
// to its count relative to the category's base rate. A missing entry
// means ratio 1, i.e. no premium.
type CategoryRatios map[TokenCategory]float64

// CategoryTokens is one classified slice of an event's token volume.
// Extra is the premium token count ceil(raw*(ratio-1)); Billable is the
// count the aggregator actually prices for this category.
type CategoryTokens struct {
	Key      TokenCategory `json:"key"`
	Raw      int64         `json:"raw"`
	Ratio    float64       `json:"ratio"`
	Extra    int64         `json:"extra"`
	Billable int64         `json:"billable"`
	Side     CategorySide  `json:"-"`
	Cache    bool          `json:"-"`
}

// TokenClassification is the classifier output consumed by the aggregator.
type TokenClassification struct {
	TotalInputTokens  int64
	TotalOutputTokens int64
	Categories        []CategoryTokens
}

// ClassifyTokens splits an event's raw counts into priced categories and
// computes the premium ("extra") token count per category.
//
// Fractional premium tokens always round up: the requester owes the whole
// premium token once any fraction of it is consumed.
//
// When the event carries an aggregate InputTokens override, the granular
// cache write/read figures are suppressed entirely and the override
// becomes the billable input volume; other input-side categories then
// contribute only their premium extras on top. Categories outside the
// static table are dropped, never fatal, so a new provider-side category
// cannot break billing for the rest of the event.
func ClassifyTokens(event *UsageEvent, ratios CategoryRatios) (*TokenClassification, error) {
	cls := &TokenClassification{}
	hasOverride := event.InputTokens > 0

	if hasOverride {
		cls.Categories = append(cls.Categories, CategoryTokens{
			Key:      CategoryInputTokens,
			Raw:      event.InputTokens,
			Ratio:    1,
			Billable: event.InputTokens,
			Side:     SideInput,
		})
		cls.TotalInputTokens = event.InputTokens
	}

	for _, key := range orderedCategories {
		raw := event.Count(key)
		if raw <= 0 {
			continue
		}
		if hasOverride && (key == CategoryCachedWriteTokens || key == CategoryCachedReadTokens) {
			// Aggregate figure already includes these; counting the
			// granular breakdown again would double charge.
			continue
		}
		side, ok := SideOf(key)
		if !ok {
			continue
		}

		ratio := 1.0
		if r, present := ratios[key]; present {
			ratio = r
		}
		ratioDec, err := ratioFromFloat(ratio)
		if err != nil {
			return nil, err
		}

		ct := CategoryTokens{
			Key:   key,
			Raw:   raw,
			Ratio: ratio,
			Side:  side,
			Cache: IsCacheCategory(key),
		}
		if ratioDec.GreaterThan(decimalOne) {
			extra := decimal.NewFromInt(raw).Mul(ratioDec.Sub(decimalOne)).Ceil()
			ct.Extra = extra.IntPart()
		}

		if hasOverride && side == SideInput {
			// Raw volume is folded into the aggregate override; only the
			// premium portion bills separately.
			ct.Billable = ct.Extra
		} else {
			ct.Billable = raw + ct.Extra
		}

		switch side {
		case SideInput:
			cls.TotalInputTokens += ct.Billable
		case SideOutput:
			cls.TotalOutputTokens += ct.Billable
		}
		cls.Categories = append(cls.Categories, ct)
	}

	return cls, nil
}
