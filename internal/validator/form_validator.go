package validator

import (
	"errors"
	"strings"

	"warehouse/internal/domain/model"

	playground "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// 入力が不正
var ErrInvalidInput = errors.New("invalid input")

// echo.Validator として使う（e.Validator = validator.New()）
type FormValidator struct {
	v *playground.Validate
}

func New() *FormValidator {
	v := playground.New()

	// 金額・単価は文字列で受けて decimal で読む
	_ = v.RegisterValidation("decimal_gt0", func(fl playground.FieldLevel) bool {
		d, ok := parseAmount(fl.Field().String())
		return ok && d.IsPositive()
	})
	// 販売単価は0も可
	_ = v.RegisterValidation("decimal_gte0", func(fl playground.FieldLevel) bool {
		d, ok := parseAmount(fl.Field().String())
		return ok && !d.IsNegative()
	})

	return &FormValidator{v: v}
}

// 数値として読めて、DBの桁（小数4桁）に収まるか
func parseAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, model.FitsAmountScale(d)
}

// フォーム構造体を検証
func (fv *FormValidator) Validate(i interface{}) error {
	if err := fv.v.Struct(i); err != nil {
		return errors.Join(ErrInvalidInput, err)
	}
	return nil
}

// ログ用にフィールド名→タグへ
func FieldErrors(err error) map[string]string {
	fields := map[string]string{}
	var ve playground.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Tag()
		}
	}
	return fields
}
