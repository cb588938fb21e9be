package whatsapp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		template string
		data     TemplateData
		want     string
	}{
		{
			name:     "all placeholders",
			template: "Hola {nombre}, tenes un pago pendiente de ${monto} con vencimiento el {fecha_vencimiento}. Detalle: {descripcion}",
			data: TemplateData{
				Name:        "Juan Perez",
				AmountCents: 150050,
				DueDate:     &due,
				Description: "Factura 001",
			},
			want: "Hola Juan Perez, tenes un pago pendiente de $1500.50 con vencimiento el 15/03/2026. Detalle: Factura 001",
		},
		{
			name:     "nil due date renders empty",
			template: "Vence: {fecha_vencimiento}",
			data:     TemplateData{},
			want:     "Vence: ",
		},
		{
			name:     "placeholder repeated",
			template: "{nombre} {nombre}",
			data:     TemplateData{Name: "Ana"},
			want:     "Ana Ana",
		},
		{
			name:     "no placeholders untouched",
			template: "Mensaje fijo",
			data:     TemplateData{Name: "Ana", AmountCents: 100},
			want:     "Mensaje fijo",
		},
		{
			name:     "whole amount keeps two decimals",
			template: "{monto}",
			data:     TemplateData{AmountCents: 200000},
			want:     "2000.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderTemplate(tt.template, tt.data))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5491155551234", NormalizePhone("+54 9 11 5555-1234"))
	assert.Equal(t, "1155551234", NormalizePhone("(11) 5555.1234"))
	assert.Equal(t, "", NormalizePhone("sin numero"))
}

func TestDeepLink(t *testing.T) {
	link := DeepLink("+54 9 11 5555-1234", "Hola Juan, saldo $100.00")
	assert.Equal(t, "https://wa.me/5491155551234?text=Hola+Juan%2C+saldo+%24100.00", link)
}
