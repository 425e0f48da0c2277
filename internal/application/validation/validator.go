// Package validation valida los DTO de entrada con go-playground/validator y traduce
// los errores a domain.ValidationError con rutas estilo JSON (items.0.cod).
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/meustock-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	// decimal.Decimal se valida como número (gt, gte...).
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	if err := v.RegisterValidation("money", validateMoney); err != nil {
		panic(err)
	}
	return v
}

// maxMoney límite exclusivo de NUMERIC(12,2).
var maxMoney = decimal.New(1, 10)

// validateMoney exige como máximo 2 decimales y |valor| < 1e10. Lee el decimal original del
// struct padre porque el custom type func ya lo convirtió a float64.
func validateMoney(fl validator.FieldLevel) bool {
	parent := fl.Parent()
	for parent.Kind() == reflect.Ptr {
		if parent.IsNil() {
			return true
		}
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return false
	}
	field := parent.FieldByName(fl.StructFieldName())
	for field.IsValid() && field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	if !field.IsValid() {
		return false
	}
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.Equal(d.Round(2)) && d.Abs().LessThan(maxMoney)
}

// Normalizer lo implementan los DTO que limpian su entrada antes de validarse.
type Normalizer interface {
	Normalize()
}

// ID rechaza identificadores que no son UUID: no pueden corresponder a ningún registro.
func ID(id string) error {
	if uuid.Validate(id) != nil {
		return domain.ErrNotFound
	}
	return nil
}

// Struct valida s y devuelve *domain.ValidationError si hay campos inválidos.
// Si s es un puntero a un Normalizer, se normaliza primero.
func Struct(s any) error {
	if n, ok := s.(Normalizer); ok {
		n.Normalize()
	}
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validación: %w", err)
	}
	out := &domain.ValidationError{}
	for _, fe := range verrs {
		out.Add(fieldPath(fe.Namespace()), message(fe))
	}
	return out
}

// fieldPath convierte "CreateSaleRequest.items[0].cod" en "items.0.cod".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	ns = strings.ReplaceAll(ns, "[", ".")
	return strings.ReplaceAll(ns, "]", "")
}

var labels = map[string]string{
	"name":           "Nome",
	"store_name":     "Nome da loja",
	"email":          "E-mail",
	"password":       "A senha",
	"code":           "Código",
	"cod":            "Código do produto",
	"description":    "Descrição",
	"price":          "Preço",
	"quantity":       "Quantidade",
	"url_image":      "URL da imagem",
	"order":          "Ordem",
	"name_product":   "Nome do produto",
	"unit_value":     "Valor unitário",
	"total":          "Total",
	"sub_total":      "Subtotal",
	"discounts":      "Descontos",
	"payment_method": "Método de pagamento",
}

func label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	if field == "items" {
		return "A venda deve conter pelo menos um item"
	}
	l := label(field)
	switch fe.Tag() {
	case "required":
		return l + " é obrigatório"
	case "min":
		return fmt.Sprintf("%s deve ter no mínimo %s caracteres", l, fe.Param())
	case "max":
		return fmt.Sprintf("%s pode ter no máximo %s caracteres", l, fe.Param())
	case "len":
		return fmt.Sprintf("%s deve ter exatamente %s caracteres", l, fe.Param())
	case "email":
		return "E-mail inválido"
	case "url":
		return "URL da imagem inválida"
	case "gt":
		return l + " deve ser positivo"
	case "gte":
		if fe.Param() == "0" {
			return l + " não pode ser negativo"
		}
		return fmt.Sprintf("%s mínima é %s", l, fe.Param())
	case "lte":
		return fmt.Sprintf("%s deve ser no máximo %s", l, fe.Param())
	case "money":
		return l + " deve ter no máximo 2 casas decimais e ser menor que 10.000.000.000"
	case "oneof":
		return l + " inválido"
	}
	return l + " inválido"
}
