package billing

// ScheduleEntry is one row of the externally maintained price schedule,
// keyed by model identifier. Ratios compose multiplicatively: the
// effective input rate is ModelRatio*InputRatio per million tokens, the
// effective output rate ModelRatio*OutputRatio.
type ScheduleEntry struct {
	ModelRatio      float64                   `json:"model_ratio"`
	InputRatio      float64                   `json:"input_ratio"`
	OutputRatio     float64                   `json:"output_ratio"`
	CacheInputRatio float64                   `json:"cache_input_ratio"`
	FlatRate        float64                   `json:"flat_rate"`
	ChannelType     int                       `json:"channel_type"`
	BillingType     string                    `json:"billing_type"`
	CategoryRatios  map[TokenCategory]float64 `json:"category_ratios,omitempty"`
}

// ScheduleSource supplies price schedules. Schedule mutation and
// versioning live behind this interface and are not this package's
// concern.
type ScheduleSource interface {
	Lookup(modelName string) (ScheduleEntry, bool)
}

// GroupDiscountSource supplies the per-user-group multiplier. Typically
// in [0,1]; values above 1 are valid surcharge groups. Zero is the
// "discount unknown" sentinel, never "free".
type GroupDiscountSource interface {
	GroupRatio(group string) (float64, bool)
}

// PriceData is everything the aggregator needs for one charge
// computation. Immutable for the lifetime of that computation.
type PriceData struct {
	InputRate           float64
	OutputRate          float64
	FlatRate            float64
	CacheRateMultiplier float64
	GroupDiscount       float64
	Mode                BillingMode
	Ratios              CategoryRatios
}

// ResolvePrice looks up the applicable rates for a model and group.
// Its only internal responsibility is defaulting: unknown model or
// missing rate resolves to 1 rate-unit, missing discount to 1, missing
// billing mode to tokens. Values already resolved into the event
// metadata at charge time win over the schedule, so an audit surface
// replaying a logged event reproduces the charge even after the live
// schedule changed.
func ResolvePrice(event *UsageEvent, schedules ScheduleSource, groups GroupDiscountSource) PriceData {
	price := PriceData{
		InputRate:           1,
		OutputRate:          1,
		FlatRate:            1,
		CacheRateMultiplier: 1,
		GroupDiscount:       1,
		Mode:                BillingModeTokens,
	}

	if schedules != nil {
		if entry, ok := schedules.Lookup(event.ModelName); ok {
			modelRatio := defaultRatio(entry.ModelRatio)
			price.InputRate = modelRatio * defaultRatio(entry.InputRatio)
			price.OutputRate = modelRatio * defaultRatio(entry.OutputRatio)
			if entry.CacheInputRatio > 0 {
				price.CacheRateMultiplier = entry.CacheInputRatio
			}
			if entry.FlatRate > 0 {
				price.FlatRate = entry.FlatRate
			}
			if entry.BillingType == string(BillingModeTimes) {
				price.Mode = BillingModeTimes
			}
			if len(entry.CategoryRatios) > 0 {
				price.Ratios = CategoryRatios{}
				for k, v := range entry.CategoryRatios {
					price.Ratios[k] = v
				}
			}
		}
	}

	if groups != nil {
		if ratio, ok := groups.GroupRatio(event.Group); ok {
			price.GroupDiscount = ratio
		}
	}

	// Event metadata overrides: whatever was pinned at charge time.
	price.InputRate = MetaFloat(event.Metadata, "input_rate", price.InputRate)
	price.OutputRate = MetaFloat(event.Metadata, "output_rate", price.OutputRate)
	price.FlatRate = MetaFloat(event.Metadata, "flat_rate", price.FlatRate)
	price.CacheRateMultiplier = MetaFloat(event.Metadata, "cache_rate", price.CacheRateMultiplier)
	price.GroupDiscount = MetaFloat(event.Metadata, "group_discount", price.GroupDiscount)
	if mode := MetaString(event.Metadata, "billing_mode", ""); mode != "" {
		if mode == string(BillingModeTimes) {
			price.Mode = BillingModeTimes
		} else {
			price.Mode = BillingModeTokens
		}
	}
	if event.Mode != "" {
		price.Mode = event.Mode
	}

	return price
}

func defaultRatio(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}
