// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/google/uuid"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/cart"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateReceipt generates a PDF receipt for the current cart, including
// the per-currency totals table
func (s *Service) GenerateReceipt(cartResponse *cart.CartResponse) (*bytes.Buffer, error) {
	// Prepare template data
	data := ReceiptData{
		ReceiptNumber: fmt.Sprintf("RCP-%s", uuid.New().String()[:8]),
		ReceiptDate:   time.Now().Format("January 2, 2006 15:04"),
		Cart:          cartResponse,
		Store: StoreInfo{
			Name:  s.config.App.StoreName,
			Phone: s.config.App.StorePhone,
			TaxID: s.config.App.StoreTaxID,
		},
	}

	// Generate HTML from template
	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	// Convert HTML to PDF
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	// Set PDF options
	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(true)

	// Add page from HTML content
	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	// Create PDF
	err = pdfg.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data ReceiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	ReceiptNumber string             `json:"receipt_number"`
	ReceiptDate   string             `json:"receipt_date"`
	Cart          *cart.CartResponse `json:"cart"`
	Store         StoreInfo          `json:"store"`
}

// StoreInfo represents store information printed on the receipt header
type StoreInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	TaxID string `json:"tax_id"`
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            text-align: center;
            margin-bottom: 20px;
            border-bottom: 2px solid #eee;
            padding-bottom: 10px;
        }
        .header h1 { margin: 0; font-size: 18px; }
        .header p { margin: 2px 0; font-size: 11px; }
        table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 20px;
            font-size: 12px;
        }
        th, td {
            text-align: left;
            padding: 6px 4px;
            border-bottom: 1px solid #eee;
        }
        th { border-bottom: 2px solid #333; }
        .amount { text-align: right; }
        .totals { margin-top: 10px; }
        .totals td { font-weight: bold; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Store.Name}}</h1>
        {{if .Store.TaxID}}<p>Tax ID: {{.Store.TaxID}}</p>{{end}}
        {{if .Store.Phone}}<p>{{.Store.Phone}}</p>{{end}}
        <p>Receipt {{.ReceiptNumber}} — {{.ReceiptDate}}</p>
    </div>

    <table>
        <thead>
            <tr>
                <th>Item</th>
                <th>Unit</th>
                <th class="amount">Qty</th>
                <th class="amount">Price (USD)</th>
                <th class="amount">Subtotal (USD)</th>
            </tr>
        </thead>
        <tbody>
            {{range .Cart.Items}}
            <tr>
                <td>{{.Name}}{{if .SerialNumber}} (SN {{.SerialNumber}}){{end}}</td>
                <td>{{.UnitName}}</td>
                <td class="amount">{{.Quantity}}</td>
                <td class="amount">{{.UnitPriceUSD}}</td>
                <td class="amount">{{.SubtotalUSD}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <table class="totals">
        <tr>
            <td>Total (USD)</td>
            <td class="amount">{{.Cart.Totals.USD}}</td>
        </tr>
        {{range $code, $total := .Cart.Totals.ByCurrency}}
        <tr>
            <td>Total ({{$code}})</td>
            <td class="amount">{{$total}}</td>
        </tr>
        {{end}}
    </table>
</body>
</html>
`
