package networth

import (
	"context"
	"fmt"
	"sort"

	"InvestTracker/internal/client"
	"InvestTracker/internal/date"
	"InvestTracker/internal/model"

	"github.com/shopspring/decimal"
)

// AccountSummary is the latest value of an account's holdings.
type AccountSummary struct {
	AccountID int64           `json:"account_id"`
	Name      string          `json:"name"`
	Owned     decimal.Decimal `json:"owned"`
	Unvested  decimal.Decimal `json:"unvested"`
	Positions int             `json:"positions"`
	AsOf      date.Date       `json:"as_of"`
}

// PropertySummary is the latest valuation and mortgage balance of a property.
type PropertySummary struct {
	PropertyID int64           `json:"property_id"`
	Name       string          `json:"name"`
	Valuation  decimal.Decimal `json:"valuation"`
	Mortgage   decimal.Decimal `json:"mortgage"`
	Equity     decimal.Decimal `json:"equity"`
	ValuedOn   date.Date       `json:"valued_on"`
}

// Summary aggregates investments and real estate.
type Summary struct {
	Accounts    []AccountSummary  `json:"accounts"`
	Properties  []PropertySummary `json:"properties"`
	Investments decimal.Decimal   `json:"investments"` // owned holdings only
	Unvested    decimal.Decimal   `json:"unvested"`
	Equity      decimal.Decimal   `json:"equity"`      // real-estate equity
	Total       decimal.Decimal   `json:"total"`       // Investments + Equity
}

// Input gathers the backend collections a Summary is built from.
type Input struct {
	Accounts   []model.Account
	Holdings   []model.AccountHolding
	Properties []model.Property
	Values     []model.PropertyValue
	Mortgages  []model.PropertyMortgage
}

// Load fetches every collection needed for a Summary.
func Load(ctx context.Context, c *client.Client) (Input, error) {
	var in Input
	var err error
	if in.Accounts, err = c.Accounts.List(ctx); err != nil {
		return in, fmt.Errorf("list accounts: %w", err)
	}
	if in.Holdings, err = c.Holdings.List(ctx); err != nil {
		return in, fmt.Errorf("list holdings: %w", err)
	}
	if in.Properties, err = c.Properties.List(ctx); err != nil {
		return in, fmt.Errorf("list properties: %w", err)
	}
	if in.Values, err = c.PropertyValues.List(ctx); err != nil {
		return in, fmt.Errorf("list property values: %w", err)
	}
	if in.Mortgages, err = c.PropertyMortgages.List(ctx); err != nil {
		return in, fmt.Errorf("list property mortgages: %w", err)
	}
	return in, nil
}

type positionKey struct {
	account int64
	symbol  string
}

// Summarize keeps the most recent holding per (account, symbol) and the most
// recent valuation and mortgage per property. On equal dates the record listed
// last wins.
func Summarize(in Input) Summary {
	latest := map[positionKey]model.AccountHolding{}
	for _, h := range in.Holdings {
		k := positionKey{h.AccountID, h.TickerSymbol}
		if cur, ok := latest[k]; !ok || !h.Date.Before(cur.Date) {
			latest[k] = h
		}
	}

	accounts := map[int64]*AccountSummary{}
	for _, a := range in.Accounts {
		accounts[a.AccountID] = &AccountSummary{AccountID: a.AccountID, Name: a.AccountName}
	}
	for _, h := range latest {
		as, ok := accounts[h.AccountID]
		if !ok {
			as = &AccountSummary{AccountID: h.AccountID, Name: fmt.Sprintf("account %d", h.AccountID)}
			accounts[h.AccountID] = as
		}
		v := decimal.NewFromFloat(h.Value)
		switch h.Ownership {
		case model.Owned:
			as.Owned = as.Owned.Add(v)
		case model.Unvested:
			as.Unvested = as.Unvested.Add(v)
		default:
			continue
		}
		as.Positions++
		if h.Date.After(as.AsOf) {
			as.AsOf = h.Date
		}
	}

	var s Summary
	for _, as := range accounts {
		s.Accounts = append(s.Accounts, *as)
		s.Investments = s.Investments.Add(as.Owned)
		s.Unvested = s.Unvested.Add(as.Unvested)
	}
	sort.Slice(s.Accounts, func(i, j int) bool { return s.Accounts[i].AccountID < s.Accounts[j].AccountID })

	values := map[int64]model.PropertyValue{}
	for _, v := range in.Values {
		if cur, ok := values[v.PropertyID]; !ok || !v.Date.Before(cur.Date) {
			values[v.PropertyID] = v
		}
	}
	mortgages := map[int64]model.PropertyMortgage{}
	for _, m := range in.Mortgages {
		if cur, ok := mortgages[m.PropertyID]; !ok || !m.Date.Before(cur.Date) {
			mortgages[m.PropertyID] = m
		}
	}
	for _, p := range in.Properties {
		ps := PropertySummary{PropertyID: p.PropertyID, Name: p.Name}
		if v, ok := values[p.PropertyID]; ok {
			ps.Valuation = decimal.NewFromFloat(v.Valuation)
			ps.ValuedOn = v.Date
		}
		if m, ok := mortgages[p.PropertyID]; ok {
			ps.Mortgage = decimal.NewFromFloat(m.Mortgage)
		}
		ps.Equity = ps.Valuation.Sub(ps.Mortgage)
		s.Properties = append(s.Properties, ps)
		s.Equity = s.Equity.Add(ps.Equity)
	}
	sort.Slice(s.Properties, func(i, j int) bool { return s.Properties[i].PropertyID < s.Properties[j].PropertyID })

	s.Total = s.Investments.Add(s.Equity)
	return s
}

// Fetch loads the backend collections and summarizes them.
func Fetch(ctx context.Context, c *client.Client) (Summary, error) {
	in, err := Load(ctx, c)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(in), nil
}
