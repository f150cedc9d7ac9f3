package metadata

import (
	"strings"
	"testing"

	"financecontroll/internal/models"
)

func strp(s string) *string { return &s }

func TestValidate(t *testing.T) {
	t.Run("nil_payload_is_valid", func(t *testing.T) {
		got, err := Validate(models.AssetTypeCrypto, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := got.(*Crypto); !ok {
			t.Errorf("expected *Crypto, got %T", got)
		}
	})

	t.Run("nil_payload_unknown_type", func(t *testing.T) {
		got, err := Validate("mystery", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := got.(*Other); !ok {
			t.Errorf("expected *Other fallback, got %T", got)
		}
	})

	t.Run("malformed_json", func(t *testing.T) {
		_, err := Validate(models.AssetTypeCrypto, strp("{not json"))
		if err == nil {
			t.Fatal("expected error for malformed JSON")
		}
		if err.Message != "Invalid JSON" {
			t.Errorf("expected message %q, got %q", "Invalid JSON", err.Message)
		}
	})

	t.Run("unknown_type_with_payload", func(t *testing.T) {
		_, err := Validate("mystery", strp("{}"))
		if err == nil {
			t.Fatal("expected error for unknown asset type")
		}
		if err.Message != "Unknown asset type: mystery" {
			t.Errorf("unexpected message: %q", err.Message)
		}
	})

	t.Run("unknown_field_rejected", func(t *testing.T) {
		_, err := Validate(models.AssetTypeCrypto, strp(`{"walletAddress":"0xabc","favoriteColor":"red"}`))
		if err == nil {
			t.Fatal("expected error for unknown field")
		}
		if !strings.Contains(err.Message, "favoriteColor") {
			t.Errorf("expected message to name the unknown field, got %q", err.Message)
		}
	})

	t.Run("valid_startup_equity", func(t *testing.T) {
		got, err := Validate(models.AssetTypeStartupEquity,
			strp(`{"sharesOutstanding":1000000,"shareClass":"B"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		se := got.(*StartupEquity)
		if se.SharesOutstanding == nil || *se.SharesOutstanding != 1000000 {
			t.Errorf("sharesOutstanding not decoded: %+v", se)
		}
	})

	t.Run("negative_shares_rejected", func(t *testing.T) {
		_, err := Validate(models.AssetTypeStartupEquity, strp(`{"sharesOutstanding":-5}`))
		if err == nil {
			t.Fatal("expected error for non-positive shares")
		}
		if err.Code != "VALIDATION_ERROR" {
			t.Errorf("expected code VALIDATION_ERROR, got %s", err.Code)
		}
	})

	t.Run("management_fee_over_100_rejected", func(t *testing.T) {
		_, err := Validate(models.AssetTypeFund, strp(`{"managementFee":101}`))
		if err == nil {
			t.Fatal("expected error for fee above 100")
		}
	})

	t.Run("vintage_year_bounds", func(t *testing.T) {
		if _, err := Validate(models.AssetTypeFund, strp(`{"vintageYear":2020}`)); err != nil {
			t.Errorf("expected 2020 to be a valid vintage year, got %v", err)
		}
		if _, err := Validate(models.AssetTypeFund, strp(`{"vintageYear":1850}`)); err == nil {
			t.Error("expected 1850 to be rejected")
		}
	})

	t.Run("other_accepts_custom_fields", func(t *testing.T) {
		got, err := Validate(models.AssetTypeOther, strp(`{"customFields":{"color":"green","count":3}}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		other := got.(*Other)
		if other.CustomFields["color"] != "green" {
			t.Errorf("customFields not decoded: %+v", other)
		}
	})

	t.Run("empty_object_valid_for_every_type", func(t *testing.T) {
		for _, assetType := range models.AssetTypes {
			if _, err := Validate(assetType, strp("{}")); err != nil {
				t.Errorf("empty object rejected for %s: %v", assetType, err)
			}
		}
	})
}

func TestSerialize(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		payload := `{"exchange":"OSE","isin":"NO0010096985"}`
		obj, err := Validate(models.AssetTypePublicEquity, strp(payload))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out, serr := Serialize(obj)
		if serr != nil {
			t.Fatalf("unexpected error: %v", serr)
		}

		if _, err := Validate(models.AssetTypePublicEquity, &out); err != nil {
			t.Errorf("serialized form failed validation: %v", err)
		}
	})
}
