package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/magazzino-api/internal/domain"
	"github.com/shopspring/decimal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// decimal.Decimal como numérico para que min/gt funcionen.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	// Los errores usan el nombre JSON del campo.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// bindAndValidate decodifica el cuerpo de forma estricta (campos desconocidos rechazados)
// y aplica las reglas de los tags validate. Devuelve un *domain.RuleError con los campos inválidos.
func bindAndValidate(c *fiber.Ctx, out any) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return domain.Invalid("body", "cuerpo vacío")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return domain.NewRuleError(domain.ErrInvalidInput, "cuerpo inválido: "+err.Error(), nil)
	}
	if dec.More() {
		return domain.NewRuleError(domain.ErrInvalidInput, "cuerpo inválido: contenido extra tras el objeto JSON", nil)
	}
	if err := validate.Struct(out); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return domain.NewRuleError(domain.ErrInvalidInput, err.Error(), nil)
		}
		fields := make(map[string]string, len(verrs))
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			path := fieldPath(fe)
			fields[path] = ruleText(fe)
			msgs = append(msgs, path+": "+fields[path])
		}
		return domain.NewRuleError(domain.ErrInvalidInput, "datos inválidos: "+strings.Join(msgs, "; "),
			map[string]any{"fields": fields})
	}
	return nil
}

// fieldPath quita el nombre del struct raíz: "CreateOrderRequest.lines[0].sku" -> "lines[0].sku".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func ruleText(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "requerido"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "min":
		return "mínimo " + fe.Param()
	case "max":
		return "máximo " + fe.Param()
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "url":
		return "debe ser una URL"
	case "eq":
		return "debe ser " + fe.Param()
	}
	return fmt.Sprintf("no cumple %s", fe.Tag())
}
