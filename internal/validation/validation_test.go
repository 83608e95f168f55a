package validation

import "testing"

func TestAddItemRequest_Valid(t *testing.T) {
	v := New()

	req := AddItemRequest{ProductID: "FR002", Quantity: 2}
	if err := v.Struct(req); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
}

func TestAddItemRequest_OmittedQuantityIsValid(t *testing.T) {
	v := New()

	// quantity defaults to 1 in the handler; zero must pass validation
	req := AddItemRequest{ProductID: "FR002"}
	if err := v.Struct(req); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
}

func TestAddItemRequest_MissingProductID(t *testing.T) {
	v := New()

	req := AddItemRequest{Quantity: 1}
	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for missing product_id, got nil")
	}
}

func TestAddItemRequest_NegativeQuantityRejected(t *testing.T) {
	v := New()

	req := AddItemRequest{ProductID: "FR002", Quantity: -1}
	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for negative quantity, got nil")
	}
}

func TestUpdateQuantityRequest_ZeroIsValid(t *testing.T) {
	v := New()

	// zero means "remove the line"; it must not be rejected
	req := UpdateQuantityRequest{Quantity: 0}
	if err := v.Struct(req); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
}
