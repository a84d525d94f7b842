//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package analytics

import (
	"cmp"
	"slices"

	"github.com/pgEdge/pgedge-salesreport/internal/sales"
)

// CategoryTotals groups valid records by category. NetSale is the sum of
// total_sale and OrderCount the number of records in each group.
func CategoryTotals(records []sales.Record) map[string]CategoryTotal {
	totals := make(map[string]CategoryTotal)
	for _, r := range sales.Valid(records) {
		cat := r.CategoryName()
		t := totals[cat]
		t.NetSale = t.NetSale.Add(r.Total())
		t.OrderCount++
		totals[cat] = t
	}
	return totals
}

// UniqueCustomersPerCategory counts distinct customer IDs per category.
// Records without a customer ID still make their category appear, with the
// count unaffected.
func UniqueCustomersPerCategory(records []sales.Record) map[string]int {
	seen := make(map[string]map[int64]struct{})
	for _, r := range sales.Valid(records) {
		cat := r.CategoryName()
		ids, ok := seen[cat]
		if !ok {
			ids = make(map[int64]struct{})
			seen[cat] = ids
		}
		if r.CustomerID != nil {
			ids[*r.CustomerID] = struct{}{}
		}
	}

	counts := make(map[string]int, len(seen))
	for cat, ids := range seen {
		counts[cat] = len(ids)
	}
	return counts
}

// TransactionsByGender counts transactions per (category, gender), ordered
// by category and then gender.
func TransactionsByGender(records []sales.Record) []GenderCategoryCount {
	type key struct{ category, gender string }
	counts := make(map[key]int)
	for _, r := range sales.Valid(records) {
		counts[key{r.CategoryName(), r.GenderName()}]++
	}

	out := make([]GenderCategoryCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, GenderCategoryCount{Category: k.category, Gender: k.gender, Orders: n})
	}
	slices.SortFunc(out, func(a, b GenderCategoryCount) int {
		if c := cmp.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		return cmp.Compare(a.Gender, b.Gender)
	})
	return out
}

// SortedCategories returns the keys of a category-keyed map in ascending
// order.
func SortedCategories[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
