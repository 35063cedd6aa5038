package models

import "testing"

func TestTableNames(t *testing.T) {
	if got := (ProfessionalSubcategory{}).TableName(); got != "professional_subcategories" {
		t.Fatalf("unexpected ProfessionalSubcategory table name: %s", got)
	}
	if got := (City{}).TableName(); got != "cities" {
		t.Fatalf("unexpected City table name: %s", got)
	}
}

func TestAllListsEveryModel(t *testing.T) {
	if got := len(All()); got != 9 {
		t.Fatalf("expected 9 models, got %d", got)
	}
}
