package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// TemplateData holds the values substituted into a reminder template.
type TemplateData struct {
	Name        string
	AmountCents int64
	DueDate     *time.Time
	Description string
}

// RenderTemplate replaces the supported placeholders in a reminder template:
// {nombre}, {monto}, {fecha_vencimiento} and {descripcion}.
func RenderTemplate(template string, data TemplateData) string {
	amount := fmt.Sprintf("%.2f", float64(data.AmountCents)/100)

	dueDate := ""
	if data.DueDate != nil {
		dueDate = data.DueDate.Format("02/01/2006")
	}

	replacer := strings.NewReplacer(
		"{nombre}", data.Name,
		"{monto}", amount,
		"{fecha_vencimiento}", dueDate,
		"{descripcion}", data.Description,
	)

	return replacer.Replace(template)
}

// NormalizePhone strips every non-digit character from a phone number.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DeepLink builds a wa.me link that opens a chat with the message prefilled.
func DeepLink(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", NormalizePhone(phone), url.QueryEscape(message))
}
