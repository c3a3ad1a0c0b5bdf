package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	"github.com/sritek/scoops-fees/internal/domain/enum"
	"github.com/sritek/scoops-fees/pkg/apperror"
)

var hundred = decimal.NewFromInt(100)

// toCents converts a decimal amount from the API boundary into integer cents.
// Going through decimal avoids float truncation (10.1*100 is 1009.99... as a
// float64).
func toCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(hundred).Round(0).IntPart()
}

// ScholarshipApplication is the resolved contribution of one scholarship
// assignment to the total discount.
type ScholarshipApplication struct {
	ScholarshipID uuid.UUID `json:"scholarship_id"`
	Name          string    `json:"name"`
	Amount        float64   `json:"amount"`
}

// resolveDiscount applies the student's scholarship assignments, in
// assignment order, against the structure's component snapshots.
//
// A remaining amount is tracked per component so discounts never double-count:
// a component-based discount draws down that component's remaining amount,
// while a whole-gross discount draws down every component proportionally.
// A later waiver therefore only waives what is left of its component.
//
// The returned discount is in cents and capped at the gross amount.
func resolveDiscount(components []entity.FeeStructureComponent, assignments []entity.StudentScholarship) (int64, []ScholarshipApplication, error) {
	remaining := make(map[uuid.UUID]decimal.Decimal, len(components))
	var gross int64
	for _, c := range components {
		remaining[c.ComponentID] = decimal.NewFromInt(c.Amount)
		gross += c.Amount
	}

	total := decimal.Zero
	applications := make([]ScholarshipApplication, 0, len(assignments))

	for _, a := range assignments {
		s := a.Scholarship

		var basisRemaining decimal.Decimal
		if s.BasisComponentID != nil {
			rem, ok := remaining[*s.BasisComponentID]
			if !ok {
				return 0, nil, apperror.NewAppError(422,
					fmt.Sprintf("Scholarship %q references a component not present in the fee structure", s.Name))
			}
			basisRemaining = rem
		}

		var applied decimal.Decimal
		switch s.DiscountType {
		case enum.DiscountTypePercentage:
			if s.BasisComponentID != nil {
				applied = basisRemaining.Mul(s.DiscountValue).Div(hundred)
				remaining[*s.BasisComponentID] = basisRemaining.Sub(applied)
			} else {
				whole := sumRemaining(remaining)
				applied = whole.Mul(s.DiscountValue).Div(hundred)
				scaleRemaining(remaining, whole, applied)
			}

		case enum.DiscountTypeFixedAmount:
			// Fixed discount values are currency amounts; convert to cents.
			value := s.DiscountValue.Mul(hundred)
			if s.BasisComponentID != nil {
				applied = decimal.Min(value, basisRemaining)
				remaining[*s.BasisComponentID] = basisRemaining.Sub(applied)
			} else {
				whole := sumRemaining(remaining)
				applied = decimal.Min(value, whole)
				scaleRemaining(remaining, whole, applied)
			}

		case enum.DiscountTypeComponentWaiver:
			if s.BasisComponentID == nil {
				return 0, nil, apperror.NewAppError(422,
					fmt.Sprintf("Scholarship %q is a component waiver without a basis component", s.Name))
			}
			applied = basisRemaining
			remaining[*s.BasisComponentID] = decimal.Zero
		}

		total = total.Add(applied)
		applications = append(applications, ScholarshipApplication{
			ScholarshipID: s.ID,
			Name:          s.Name,
			Amount:        applied.Div(hundred).InexactFloat64(),
		})
	}

	discount := total.Round(0).IntPart()
	if discount > gross {
		discount = gross
	}
	if discount < 0 {
		discount = 0
	}
	return discount, applications, nil
}

func sumRemaining(remaining map[uuid.UUID]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, rem := range remaining {
		total = total.Add(rem)
	}
	return total
}

// scaleRemaining reduces every component's remaining amount proportionally
// after a whole-gross discount, keeping per-component caps meaningful for any
// later component-based scholarship.
func scaleRemaining(remaining map[uuid.UUID]decimal.Decimal, whole, applied decimal.Decimal) {
	if whole.IsZero() {
		return
	}
	factor := whole.Sub(applied).Div(whole)
	for id, rem := range remaining {
		remaining[id] = rem.Mul(factor)
	}
}
