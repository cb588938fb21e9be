package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ventapos/ventapos-api/internal/domain/repository"
	"github.com/ventapos/ventapos-api/pkg/apperror"
)

// ExportFormat selects the output encoding of a data export.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatJSON ExportFormat = "json"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ParseExportFormat validates a raw format string.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case ExportFormatCSV, ExportFormatJSON, ExportFormatXLSX:
		return ExportFormat(s), nil
	case "":
		return ExportFormatCSV, nil
	}
	return "", apperror.NewBadRequestError("Unsupported export format: " + s)
}

// ExportResult carries an encoded export ready to stream to the client.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService encodes catalog and transaction data as CSV, JSON or XLSX
type ExportService struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	paymentRepo  repository.PaymentRepository
}

// NewExportService creates a new export service
func NewExportService(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
) *ExportService {
	return &ExportService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		paymentRepo:  paymentRepo,
	}
}

// dataset is a tabular view plus the raw records for JSON output.
type dataset struct {
	name    string
	headers []string
	rows    [][]string
	records any
}

// Export produces the named dataset in the requested format.
func (s *ExportService) Export(ctx context.Context, name string, format ExportFormat) (*ExportResult, error) {
	var (
		ds  dataset
		err error
	)

	switch name {
	case "products":
		ds, err = s.productsDataset(ctx)
	case "customers":
		ds, err = s.customersDataset(ctx)
	case "sales":
		ds, err = s.salesDataset(ctx)
	case "payments":
		ds, err = s.paymentsDataset(ctx)
	default:
		return nil, apperror.NewBadRequestError("Unknown export dataset: " + name)
	}
	if err != nil {
		return nil, err
	}

	stamp := time.Now().Format("20060102")

	switch format {
	case ExportFormatJSON:
		data, err := json.MarshalIndent(ds.records, "", "  ")
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("%s_%s.json", ds.name, stamp),
			ContentType: "application/json",
			Data:        data,
		}, nil

	case ExportFormatXLSX:
		data, err := encodeXLSX(ds)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("%s_%s.xlsx", ds.name, stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil

	default:
		data, err := encodeCSV(ds)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("%s_%s.csv", ds.name, stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	}
}

func encodeCSV(ds dataset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ds.headers); err != nil {
		return nil, err
	}
	for _, row := range ds.rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeXLSX(ds dataset) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for col, header := range ds.headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range ds.rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ExportService) productsDataset(ctx context.Context) (dataset, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return dataset{}, err
	}

	rows := make([][]string, 0, len(products))
	for i := range products {
		p := &products[i]
		rows = append(rows, []string{
			p.Barcode,
			p.Name,
			p.Category,
			centsToDecimal(p.Price),
			strconv.Itoa(p.Quantity),
			strconv.Itoa(p.MinStock),
			strconv.FormatBool(p.IsActive),
		})
	}

	return dataset{
		name:    "products",
		headers: []string{"barcode", "name", "category", "price", "quantity", "min_stock", "active"},
		rows:    rows,
		records: products,
	}, nil
}

func (s *ExportService) customersDataset(ctx context.Context) (dataset, error) {
	customers, err := s.customerRepo.ListAll(ctx)
	if err != nil {
		return dataset{}, err
	}

	rows := make([][]string, 0, len(customers))
	for i := range customers {
		c := &customers[i]
		rows = append(rows, []string{
			c.CustomerCode,
			c.FullName(),
			deref(c.Email),
			deref(c.Phone),
			string(c.CustomerType),
			centsToDecimal(c.TotalDebt),
			strconv.FormatBool(c.IsActive),
		})
	}

	return dataset{
		name:    "customers",
		headers: []string{"code", "name", "email", "phone", "type", "total_debt", "active"},
		rows:    rows,
		records: customers,
	}, nil
}

func (s *ExportService) salesDataset(ctx context.Context) (dataset, error) {
	sales, err := s.saleRepo.ListAll(ctx)
	if err != nil {
		return dataset{}, err
	}

	rows := make([][]string, 0, len(sales))
	for i := range sales {
		sale := &sales[i]
		rows = append(rows, []string{
			sale.SaleNumber,
			sale.SaleDate.Format(time.RFC3339),
			deref(sale.CustomerName),
			centsToDecimal(sale.Subtotal),
			centsToDecimal(sale.TaxAmount),
			centsToDecimal(sale.DiscountAmount),
			centsToDecimal(sale.TotalAmount),
			string(sale.PaymentMethod),
			string(sale.PaymentStatus),
			string(sale.SaleStatus),
		})
	}

	return dataset{
		name:    "sales",
		headers: []string{"sale_number", "date", "customer", "subtotal", "tax", "discount", "total", "payment_method", "payment_status", "status"},
		rows:    rows,
		records: sales,
	}, nil
}

func (s *ExportService) paymentsDataset(ctx context.Context) (dataset, error) {
	payments, err := s.paymentRepo.ListAll(ctx)
	if err != nil {
		return dataset{}, err
	}

	rows := make([][]string, 0, len(payments))
	for i := range payments {
		p := &payments[i]
		due := ""
		if p.DueDate != nil {
			due = p.DueDate.Format("2006-01-02")
		}
		paid := ""
		if p.PaidDate != nil {
			paid = p.PaidDate.Format("2006-01-02")
		}
		rows = append(rows, []string{
			p.CustomerName,
			centsToDecimal(p.Amount),
			string(p.PaymentMethod),
			string(p.Status),
			due,
			paid,
			deref(p.Description),
		})
	}

	return dataset{
		name:    "payments",
		headers: []string{"customer", "amount", "method", "status", "due_date", "paid_date", "description"},
		rows:    rows,
		records: payments,
	}, nil
}

func centsToDecimal(cents int64) string {
	return strconv.FormatFloat(float64(cents)/100, 'f', 2, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
