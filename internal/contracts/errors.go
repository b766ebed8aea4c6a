package contracts

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedIndicatorValue     = errors.New("malformed indicator value")
	ErrUnknownIndicatorPolarity    = errors.New("unknown indicator polarity")
	ErrMissingIndicatorForCurrency = errors.New("missing indicator for currency")
	ErrUnknownPair                 = errors.New("unknown pair")
)

// MalformedValueError reports a scraped row that could not be turned into a record
type MalformedValueError struct {
	Country   Country
	Currency  Currency
	Indicator Indicator
	Field     string // "last", "previous" or "conflict"
	Value     string
	Err       error
}

func (e *MalformedValueError) Error() string {
	if e.Field == "conflict" {
		return fmt.Sprintf("%s: %s %q has conflicting values (%s)",
			ErrMalformedIndicatorValue, e.Currency, string(e.Indicator), e.Value)
	}
	return fmt.Sprintf("%s: %s %q %s=%q", ErrMalformedIndicatorValue,
		e.Currency, string(e.Indicator), e.Field, e.Value)
}

func (e *MalformedValueError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedIndicatorValue}
	}
	return []error{ErrMalformedIndicatorValue, e.Err}
}

// MissingIndicatorError names the currency and indicator that blocked a score
type MissingIndicatorError struct {
	Currency  Currency
	Indicator Indicator
}

func (e *MissingIndicatorError) Error() string {
	return fmt.Sprintf("%s: %s has no %q record", ErrMissingIndicatorForCurrency,
		e.Currency, string(e.Indicator))
}

func (e *MissingIndicatorError) Unwrap() error {
	return ErrMissingIndicatorForCurrency
}

// PairError attributes a scoring failure to a pair
type PairError struct {
	Pair Pair
	Err  error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("pair %s: %v", e.Pair, e.Err)
}

func (e *PairError) Unwrap() error {
	return e.Err
}
