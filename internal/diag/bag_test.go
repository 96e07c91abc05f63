package diag_test

import (
	"testing"

	"stcheck/internal/diag"
	"stcheck/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

func TestBagSortIsPositionalWithRuleTieBreak(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.NewWarning(diag.RulePointerNaming, span(40, 45), "later"))
	bag.Add(diag.NewWarning(diag.RuleClassNaming, span(10, 15), "first"))
	// same span, two rules: ClassNaming sorts before PointerNaming by name
	bag.Add(diag.NewWarning(diag.RulePointerNaming, span(10, 15), "tie b"))

	bag.Sort()
	items := bag.Items()
	if items[0].Code != diag.RuleClassNaming {
		t.Fatalf("first item = %s", items[0].Code)
	}
	if items[1].Code != diag.RulePointerNaming || items[1].Message != "tie b" {
		t.Fatalf("second item = %s %q", items[1].Code, items[1].Message)
	}
	if items[2].Message != "later" {
		t.Fatalf("third item = %q", items[2].Message)
	}
}

func TestBagSortDeterministicUnderInsertionOrder(t *testing.T) {
	build := func(order []int) []diag.Diagnostic {
		entries := []diag.Diagnostic{
			diag.NewError(diag.SynUnexpectedToken, span(5, 6), "a"),
			diag.NewWarning(diag.RuleClassNaming, span(5, 6), "b"),
			diag.NewInfo(diag.RulePreferGuardClause, span(30, 31), "c"),
		}
		bag := diag.NewBag(10)
		for _, i := range order {
			bag.Add(entries[i])
		}
		bag.Sort()
		return bag.Items()
	}

	first := build([]int{0, 1, 2})
	second := build([]int{2, 1, 0})
	if len(first) != len(second) {
		t.Fatal("length mismatch")
	}
	for i := range first {
		if first[i].Code != second[i].Code || first[i].Message != second[i].Message {
			t.Fatalf("order differs at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestBagDedup(t *testing.T) {
	bag := diag.NewBag(10)
	d := diag.NewWarning(diag.RuleClassNaming, span(10, 15), "same")
	bag.Add(d)
	bag.Add(d)
	bag.Add(diag.NewWarning(diag.RuleClassNaming, span(10, 15), "different message"))
	bag.Add(diag.NewWarning(diag.RuleClassNaming, span(20, 25), "same"))

	bag.Dedup()
	if bag.Len() != 3 {
		t.Fatalf("after dedup len = %d, want 3", bag.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.NewInfo(diag.RulePreferGuardClause, span(0, 1), "info"))
	bag.Add(diag.NewWarning(diag.RuleClassNaming, span(0, 1), "warn"))
	if bag.HasErrors() {
		t.Fatal("no errors yet")
	}
	bag.Add(diag.NewError(diag.SynUnexpectedToken, span(0, 1), "err"))
	if !bag.HasErrors() {
		t.Fatal("error added")
	}
}

func TestBagLimit(t *testing.T) {
	bag := diag.NewBag(2)
	if !bag.Add(diag.NewInfo(diag.RulePreferGuardClause, span(0, 1), "1")) {
		t.Fatal("first add should succeed")
	}
	if !bag.Add(diag.NewInfo(diag.RulePreferGuardClause, span(0, 1), "2")) {
		t.Fatal("second add should succeed")
	}
	if bag.Add(diag.NewInfo(diag.RulePreferGuardClause, span(0, 1), "3")) {
		t.Fatal("third add should hit the limit")
	}
	if bag.Len() != 2 {
		t.Fatalf("len = %d", bag.Len())
	}
}

func TestBagMerge(t *testing.T) {
	a := diag.NewBag(1)
	a.Add(diag.NewWarning(diag.RuleClassNaming, span(0, 1), "a"))
	b := diag.NewBag(1)
	b.Add(diag.NewError(diag.SynUnexpectedToken, span(2, 3), "b"))

	// merging grows past either bag's own limit
	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("merged len = %d, want 2", a.Len())
	}
	if !a.HasErrors() {
		t.Fatal("merged bag lost the error")
	}
}

func TestBagReporterCarriesNotesAndFixes(t *testing.T) {
	bag := diag.NewBag(10)
	rep := diag.BagReporter{Bag: bag}
	rep.Report(diag.RuleClassNaming, diag.SevWarning, span(6, 14), "msg",
		[]diag.Note{{Span: span(20, 25), Msg: "declared here"}},
		[]diag.Fix{{Title: "rename", Edits: []diag.FixEdit{{Span: span(6, 14), NewText: "Cylinder"}}}})

	d := bag.Items()[0]
	if len(d.Notes) != 1 || d.Notes[0].Msg != "declared here" {
		t.Fatalf("notes = %+v", d.Notes)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != "Cylinder" {
		t.Fatalf("fixes = %+v", d.Fixes)
	}
}

func TestDedupReporterSuppressesDuplicates(t *testing.T) {
	bag := diag.NewBag(10)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	rep.Report(diag.SynUnexpectedToken, diag.SevError, span(1, 2), "msg", nil, nil)
	rep.Report(diag.SynUnexpectedToken, diag.SevError, span(1, 2), "msg", nil, nil)
	rep.Report(diag.SynUnexpectedToken, diag.SevError, span(1, 2), "other", nil, nil)
	if bag.Len() != 2 {
		t.Fatalf("len = %d, want 2", bag.Len())
	}
}

func TestCodeNamesAndIDs(t *testing.T) {
	if diag.RuleClassNaming.String() != "ClassNaming" {
		t.Errorf("name = %s", diag.RuleClassNaming.String())
	}
	if diag.RuleClassNaming.ID() != "STC3001" {
		t.Errorf("id = %s", diag.RuleClassNaming.ID())
	}
	if diag.LexUnknownChar.ID() != "LEX1001" {
		t.Errorf("id = %s", diag.LexUnknownChar.ID())
	}
	if diag.SynUnexpectedToken.ID() != "SYN2001" {
		t.Errorf("id = %s", diag.SynUnexpectedToken.ID())
	}
	code, ok := diag.CodeByName("PointerNaming")
	if !ok || code != diag.RulePointerNaming {
		t.Errorf("CodeByName = %v %t", code, ok)
	}
}
