package coupon

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidCouponCode      = errors.New("invalid coupon code format")
	ErrInvalidDiscountType    = errors.New("invalid discount type")
	ErrInvalidDiscountAmount  = errors.New("discount amount cannot be negative")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

type Discount struct {
	kind  DiscountType
	value float64
}

func NewDiscount(kind string, value float64) (Discount, error) {
	switch DiscountType(kind) {
	case DiscountFixed:
		if value < 0 {
			return Discount{}, ErrInvalidDiscountAmount
		}
	case DiscountPercentage:
		if value < 0 || value > 100 {
			return Discount{}, ErrInvalidDiscountPercent
		}
	default:
		return Discount{}, ErrInvalidDiscountType
	}
	return Discount{kind: DiscountType(kind), value: value}, nil
}

func (t DiscountType) String() string { return string(t) }

func (d Discount) Type() DiscountType { return d.kind }
func (d Discount) Value() float64     { return d.value }

func (d Discount) Apply(basePrice float64) float64 {
	var result float64
	if d.kind == DiscountPercentage {
		result = basePrice * (1 - d.value/100.0)
	} else {
		result = basePrice - d.value
	}
	if result < 0 {
		return 0
	}
	return result
}
