package billing

// TokenCategory is one priced slice of a usage event's token volume.
type TokenCategory string

const (
	CategoryInputText         TokenCategory = "input_text"
	CategoryOutputText        TokenCategory = "output_text"
	CategoryInputAudio        TokenCategory = "input_audio"
	CategoryOutputAudio       TokenCategory = "output_audio"
	CategoryCachedTokens      TokenCategory = "cached_tokens"
	CategoryCachedWriteTokens TokenCategory = "cached_write_tokens"
	CategoryCachedReadTokens  TokenCategory = "cached_read_tokens"
	CategoryReasoningTokens   TokenCategory = "reasoning_tokens"
	CategoryInputImage        TokenCategory = "input_image"
	CategoryOutputImage       TokenCategory = "output_image"

	// CategoryInputTokens is the aggregate prompt-token figure some
	// upstreams report instead of a granular breakdown. It only ever
	// appears in breakdowns, never in ratio maps.
	CategoryInputTokens TokenCategory = "input_tokens"
)

// CategorySide tells which base rate a category is billed against.
type CategorySide int

const (
	SideInput CategorySide = iota
	SideOutput
)

// categorySides is the authoritative category table. New provider-side
// categories get added here and nowhere else; anything absent from this
// table is dropped by the classifier instead of failing the computation.
// output_text is billed input-side, a legacy convention kept for
// compatibility with historical consume logs.
var categorySides = map[TokenCategory]CategorySide{
	CategoryInputText:         SideInput,
	CategoryOutputText:        SideInput,
	CategoryInputAudio:        SideInput,
	CategoryCachedTokens:      SideInput,
	CategoryCachedWriteTokens: SideInput,
	CategoryCachedReadTokens:  SideInput,
	CategoryInputImage:        SideInput,
	CategoryOutputAudio:       SideOutput,
	CategoryReasoningTokens:   SideOutput,
	CategoryOutputImage:       SideOutput,
}

var cacheCategories = map[TokenCategory]bool{
	CategoryCachedTokens:      true,
	CategoryCachedWriteTokens: true,
	CategoryCachedReadTokens:  true,
}

// SideOf reports the billing side of a category. ok is false for
// categories outside the static table.
func SideOf(c TokenCategory) (CategorySide, bool) {
	side, ok := categorySides[c]
	return side, ok
}

// IsCacheCategory reports whether a category is priced at the cache rate.
func IsCacheCategory(c TokenCategory) bool {
	return cacheCategories[c]
}

// orderedCategories fixes the iteration order so that a breakdown is
// byte-identical across invocations.
var orderedCategories = []TokenCategory{
	CategoryInputText,
	CategoryOutputText,
	CategoryInputAudio,
	CategoryCachedTokens,
	CategoryCachedWriteTokens,
	CategoryCachedReadTokens,
	CategoryInputImage,
	CategoryOutputAudio,
	CategoryReasoningTokens,
	CategoryOutputImage,
}
