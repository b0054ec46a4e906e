package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"negociolisto-core/internal/models"
)

// Orders carry the payment method as free text typed by the business owner,
// in Spanish or English, with whatever casing and accents they used. Sales
// carry the closed enumeration, so the lookup folds case and diacritics.
// Unrecognized values fall back to CASH rather than failing the sale.
var paymentAliases = map[string]models.PaymentMethod{
	"efectivo": models.PaymentCash,
	"cash":     models.PaymentCash,
	"contado":  models.PaymentCash,

	"tarjeta":  models.PaymentCard,
	"card":     models.PaymentCard,
	"datafono": models.PaymentCard,
	"debito":   models.PaymentCard,

	"transferencia": models.PaymentTransfer,
	"transfer":      models.PaymentTransfer,
	"nequi":         models.PaymentTransfer,
	"daviplata":     models.PaymentTransfer,
	"consignacion":  models.PaymentTransfer,

	"credito": models.PaymentCredit,
	"credit":  models.PaymentCredit,
	"fiado":   models.PaymentCredit,

	"otro":  models.PaymentOther,
	"other": models.PaymentOther,
}

var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizePaymentMethod maps the free-text payment method of an order onto
// the closed PaymentMethod enumeration.
func NormalizePaymentMethod(raw string) models.PaymentMethod {
	key := strings.ToLower(strings.TrimSpace(raw))
	if folded, _, err := transform.String(foldAccents, key); err == nil {
		key = folded
	}
	if m, ok := paymentAliases[key]; ok {
		return m
	}
	return models.PaymentCash
}
