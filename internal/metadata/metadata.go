// Package metadata validates the free-form attribute bag carried by an asset
// against the closed schema for its asset type. Assets never persist metadata
// that has not passed Validate.
package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"

	apperrors "financecontroll/internal/errors"
	"financecontroll/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// StartupEquity is the metadata schema for startup_equity assets.
type StartupEquity struct {
	SharesOutstanding *float64 `json:"sharesOutstanding,omitempty" validate:"omitempty,gt=0"`
	ShareClass        *string  `json:"shareClass,omitempty"`
	VestingSchedule   *string  `json:"vestingSchedule,omitempty"`
	ExercisePrice     *float64 `json:"exercisePrice,omitempty" validate:"omitempty,gt=0"`
}

// Fund is the metadata schema for fund assets. ManagementFee is a percentage.
type Fund struct {
	CommitmentAmount *float64 `json:"commitmentAmount,omitempty" validate:"omitempty,gt=0"`
	CalledCapital    *float64 `json:"calledCapital,omitempty" validate:"omitempty,gt=0"`
	ManagementFee    *float64 `json:"managementFee,omitempty" validate:"omitempty,gte=0,lte=100"`
	VintageYear      *int     `json:"vintageYear,omitempty" validate:"omitempty,gte=1900,lte=2100"`
}

// StateObligation is the metadata schema for state_obligation assets.
// MaturityDate is an ISO date string.
type StateObligation struct {
	BondType     *string  `json:"bondType,omitempty"`
	MaturityDate *string  `json:"maturityDate,omitempty"`
	CouponRate   *float64 `json:"couponRate,omitempty" validate:"omitempty,gte=0"`
	FaceValue    *float64 `json:"faceValue,omitempty" validate:"omitempty,gt=0"`
}

// Crypto is the metadata schema for crypto assets.
type Crypto struct {
	WalletAddress *string `json:"walletAddress,omitempty"`
	Network       *string `json:"network,omitempty"`
	StakingInfo   *string `json:"stakingInfo,omitempty"`
}

// PublicEquity is the metadata schema for public_equity assets.
type PublicEquity struct {
	Exchange *string `json:"exchange,omitempty"`
	Sector   *string `json:"sector,omitempty"`
	ISIN     *string `json:"isin,omitempty"`
}

// Other is the metadata schema for assets outside the specific categories.
type Other struct {
	CustomFields map[string]any `json:"customFields,omitempty"`
}

// emptyFor returns a zero-valued schema struct for the given asset type, or
// nil when the type is unknown.
func emptyFor(assetType models.AssetType) any {
	switch assetType {
	case models.AssetTypeStartupEquity:
		return &StartupEquity{}
	case models.AssetTypeFund:
		return &Fund{}
	case models.AssetTypeStateObligation:
		return &StateObligation{}
	case models.AssetTypeCrypto:
		return &Crypto{}
	case models.AssetTypePublicEquity:
		return &PublicEquity{}
	case models.AssetTypeOther:
		return &Other{}
	}
	return nil
}

// Validate checks payload against the schema for assetType and returns the
// normalized metadata object. A nil payload is always valid and normalizes to
// an empty object. Unrecognized fields are rejected, not dropped.
func Validate(assetType models.AssetType, payload *string) (any, *apperrors.AppError) {
	if payload == nil {
		if m := emptyFor(assetType); m != nil {
			return m, nil
		}
		return &Other{}, nil
	}

	// Syntax check first so malformed input reports as such regardless of type.
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(*payload), &raw); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Invalid JSON")
	}

	target := emptyFor(assetType)
	if target == nil {
		return nil, apperrors.WithMessage(apperrors.ErrValidation,
			fmt.Sprintf("Unknown asset type: %s", assetType))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, err.Error())
	}

	if err := validate.Struct(target); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, err.Error())
	}

	return target, nil
}

// Serialize is the inverse of Validate: it renders a metadata object back to
// its persisted string form. The output round-trips through Validate.
func Serialize(data any) (string, *apperrors.AppError) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrValidation, err)
	}
	return string(b), nil
}
